// Package unit provides the zero-size annotation payload used to
// instantiate the AST fresh off the parser, before any semantic
// information has been attached.
package unit

// Unit stands in for "()" — the annotation every AST node carries
// immediately after parsing, before the shallow or deep checker has
// run. It carries no information by design.
type Unit struct{}
