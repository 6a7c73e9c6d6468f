// Package ast defines the abstract syntax tree node types produced by
// the parser.
//
// The AST is a plain, visitor-free tree of structs: Programs contain
// Decls (Struct, ExternFunction, Function); function bodies contain Stmts
// (Empty, Block, Let, If, While, For, Return, Expression, Break, Continue);
// statements and expressions carry a source Span. Types are parsed
// structurally (TypeExpr) and resolved against the type table later, by
// the IR translator — the AST itself never resolves a name.
package ast
