package types

// TypeContext interns compound type values so that equal shapes resolve to
// the same Type value: type equality is pointer/ID equality. It lives for
// the whole compilation.
type TypeContext struct {
	pointers     map[string]*PointerType
	arrays       map[string]*ArrayType
	tuples       map[string]*TupleType
	functionPtrs map[string]*FunctionPtrType
	structs      map[string]*StructType
	completed    map[string]bool
	lvalues      map[string]*LValueType
}

// NewContext creates an empty TypeContext.
func NewContext() *TypeContext {
	return &TypeContext{
		pointers:     make(map[string]*PointerType),
		arrays:       make(map[string]*ArrayType),
		tuples:       make(map[string]*TupleType),
		functionPtrs: make(map[string]*FunctionPtrType),
		structs:      make(map[string]*StructType),
		completed:    make(map[string]bool),
		lvalues:      make(map[string]*LValueType),
	}
}

// Pointer interns Pointer(elem).
func (c *TypeContext) Pointer(elem Type) *PointerType {
	key := "*" + elem.String()
	if t, ok := c.pointers[key]; ok {
		return t
	}
	t := &PointerType{Elem: elem}
	c.pointers[key] = t
	return t
}

// Array interns Array(elem, size).
func (c *TypeContext) Array(elem Type, size int64) *ArrayType {
	t := &ArrayType{Elem: elem, Size: size}
	key := t.String()
	if existing, ok := c.arrays[key]; ok {
		return existing
	}
	c.arrays[key] = t
	return t
}

// Tuple interns Tuple(elems…).
func (c *TypeContext) Tuple(elems []Type) *TupleType {
	t := &TupleType{Elems: elems}
	key := t.String()
	if existing, ok := c.tuples[key]; ok {
		return existing
	}
	c.tuples[key] = t
	return t
}

// FunctionPtr interns FunctionPtr(params, ret).
func (c *TypeContext) FunctionPtr(params []Type, ret Type) *FunctionPtrType {
	t := &FunctionPtrType{Params: params, Return: ret}
	key := t.String()
	if existing, ok := c.functionPtrs[key]; ok {
		return existing
	}
	c.functionPtrs[key] = t
	return t
}

// LValue interns the synthetic LValue(elem, mutable) sentinel.
func (c *TypeContext) LValue(elem Type, mutable bool) *LValueType {
	t := &LValueType{Elem: elem, Mutable: mutable}
	key := t.String()
	if existing, ok := c.lvalues[key]; ok {
		return existing
	}
	c.lvalues[key] = t
	return t
}

// DeclareIncomplete registers name as Incomplete, the first step of the
// struct pre-pass: insert each struct name with an Incomplete placeholder
// before resolving any field. The *StructType allocated here is the one every later
// reference to name resolves to — PopulateStruct fills its Fields in
// place rather than replacing it, so a forward reference taken before
// population (e.g. a `*Self` field, or another struct's field type
// looked up before this struct's own declaration line) still observes
// the fields once they exist.
func (c *TypeContext) DeclareIncomplete(name string) {
	c.structs[name] = &StructType{Name: name}
}

// IsDeclared reports whether name has been registered by DeclareIncomplete.
func (c *TypeContext) IsDeclared(name string) bool {
	_, ok := c.structs[name]
	return ok
}

// IsComplete reports whether name has been populated by PopulateStruct.
func (c *TypeContext) IsComplete(name string) bool {
	return c.completed[name]
}

// PopulateStruct lays out name's fields in place on the StructType
// allocated by DeclareIncomplete, completing it.
func (c *TypeContext) PopulateStruct(name string, fields []StructField) *StructType {
	t := c.structs[name]
	if t == nil {
		t = &StructType{Name: name}
		c.structs[name] = t
	}
	t.Fields = fields
	c.completed[name] = true
	return t
}

// LookupStruct returns the StructType for name, or nil if undeclared.
// The returned pointer is stable: if name is still incomplete, its
// Fields become visible in place once PopulateStruct runs.
func (c *TypeContext) LookupStruct(name string) *StructType {
	return c.structs[name]
}
