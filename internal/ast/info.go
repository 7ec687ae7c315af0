package ast

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// CheckInfo is the annotation payload attached to every node by the deep
// checker: the inference cell standing for the node's type, plus the
// scope visible at that point. The validator and the printer's `-c` dump
// read only Var; neither consults Scope. It lives here rather than in
// package infer or package scope because it depends on both, and neither
// of those packages may import ast.
type CheckInfo struct {
	Var   infer.Var
	Scope *scope.Scope
}

// Concrete is the annotation payload attached to every node once the
// validator has frozen its inference cell to a concrete type.
type Concrete struct {
	Type types.Type
}

// Untyped, Checked, and Validated name the AST at each pipeline stage
// (SPEC_FULL.md §3.3): the parser produces Untyped, the deep checker
// consumes Untyped and produces Checked, the validator consumes Checked
// and produces Validated.
type (
	Untyped   = Program[unit.Unit]
	Checked   = Program[CheckInfo]
	Validated = Program[Concrete]
)
