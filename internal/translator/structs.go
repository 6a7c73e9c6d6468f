package translator

import (
	"strings"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/types"
)

// declareStructs is the pre-pass's first step: insert every struct name
// as Incomplete so forward references resolve regardless of source
// order.
func (t *Translator) declareStructs(prog *ast.Program) {
	for _, decl := range prog.Decls {
		sd, ok := decl.(*ast.StructDecl)
		if !ok {
			continue
		}
		if t.typeCtx.IsDeclared(sd.Name) {
			t.errorf(DuplicateDeclaration, sd.Span(), "duplicate struct declaration %q", sd.Name)
			continue
		}
		t.typeCtx.DeclareIncomplete(sd.Name)
	}
}

// structEdge is one "contains by value" dependency, used only to detect
// RecursiveValueType cycles after every struct has been laid out.
type structEdge struct {
	from, to string
}

// populateStructs is the pre-pass's second half: lay out each struct's
// fields in declaration order, then reject any value-typed (non-pointer)
// field cycle; the named cycle chain in the diagnostic is a supplemented
// feature grounded on javalette's cyclic-type diagnostics in
// original_source/.
func (t *Translator) populateStructs(prog *ast.Program) {
	spans := make(map[string]ast.Node)
	var edges []structEdge

	for _, decl := range prog.Decls {
		sd, ok := decl.(*ast.StructDecl)
		if !ok {
			continue
		}
		if _, seen := spans[sd.Name]; seen {
			continue // already reported as a DuplicateDeclaration
		}
		spans[sd.Name] = sd

		seenFields := make(map[string]bool)
		var fields []types.StructField
		for _, f := range sd.Fields {
			if seenFields[f.Name] {
				t.errorf(DuplicateField, f.Span(), "duplicate field %q in struct %q", f.Name, sd.Name)
				continue
			}
			seenFields[f.Name] = true

			ft := t.resolveType(f.Type)
			if _, incomplete := ft.(*types.IncompleteType); incomplete {
				t.errorf(UnknownType, f.Span(), "unknown type for field %q of struct %q", f.Name, sd.Name)
			}
			fields = append(fields, types.StructField{Name: f.Name, Type: ft})
			if st, ok := ft.(*types.StructType); ok {
				edges = append(edges, structEdge{from: sd.Name, to: st.Name})
			}
		}
		t.typeCtx.PopulateStruct(sd.Name, fields)
	}

	t.reportValueCycles(edges, spans)
}

// reportValueCycles runs cycle detection over the value-containment graph
// and emits one RecursiveValueType error per distinct cycle found, naming
// the full chain (e.g. "A -> B -> A").
func (t *Translator) reportValueCycles(edges []structEdge, spans map[string]ast.Node) {
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.from] = append(adj[e.from], e.to)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	reported := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		color[name] = gray
		stack = append(stack, name)
		for _, next := range adj[name] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				chain := cycleChain(stack, next)
				key := strings.Join(chain, ",")
				if !reported[key] {
					reported[key] = true
					t.errorf(RecursiveValueType, spans[name].Span(),
						"recursive value-typed struct chain: %s", strings.Join(chain, " -> "))
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
	}

	for name := range adj {
		if color[name] == white {
			visit(name)
		}
	}
}

// cycleChain extracts the suffix of stack starting at the first
// occurrence of target, with target appended again to show the closure.
func cycleChain(stack []string, target string) []string {
	start := 0
	for i, n := range stack {
		if n == target {
			start = i
			break
		}
	}
	chain := append([]string{}, stack[start:]...)
	return append(chain, target)
}
