// Package expr defines the immutable expression AST consumed by the
// evaluator: field references, constants, and function calls (§3 of
// SPEC_FULL.md). Expression is a closed sum type implemented by exactly the
// three node kinds below, following the teacher's Node-interface pattern
// generalized from CST nodes to expression nodes. Nodes are value objects;
// a FunctionCall's arguments may be freely shared between multiple parent
// nodes, forming a DAG rather than a strict tree.
package expr

import (
	"strings"

	"github.com/aledsdavies/docpipe/internal/value"
)

// Expression is implemented only by Field, Constant, and FunctionCall.
// The unexported marker method seals the interface to this package.
type Expression interface {
	isExpression()
	String() string
}

// Field is a dotted field-path reference, resolved against the current
// document's field map with __name__ and __update_time__ intercepted
// before map navigation (§4.2).
type Field struct {
	Path string
}

func (Field) isExpression() {}

// Segments splits the dotted path into its component keys.
func (f Field) Segments() []string {
	if f.Path == "" {
		return nil
	}
	return strings.Split(f.Path, ".")
}

func (f Field) String() string { return f.Path }

// Constant wraps a literal value.
type Constant struct {
	Value value.Value
}

func (Constant) isExpression() {}

func (c Constant) String() string { return c.Value.String() }

// FunctionCall invokes a named builtin with the given arguments. Arguments
// are shared-ownership: the same Expression value may appear as an
// argument to more than one FunctionCall.
type FunctionCall struct {
	Name string
	Args []Expression
}

func (FunctionCall) isExpression() {}

func (c FunctionCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// FieldOf builds a Field expression for the given dotted path.
func FieldOf(path string) Expression { return Field{Path: path} }

// ConstantOf builds a Constant expression wrapping v.
func ConstantOf(v value.Value) Expression { return Constant{Value: v} }

// Call builds a FunctionCall expression.
func Call(name string, args ...Expression) Expression {
	return FunctionCall{Name: name, Args: args}
}

