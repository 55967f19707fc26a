package eval

import (
	"fmt"
	"sync"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
)

// Func evaluates a FunctionCall's arguments against ctx/doc and returns a
// Result. Implementations receive the raw, unevaluated argument
// expressions (not pre-evaluated results) plus the Evaluator itself, so
// that functions exempt from universal propagation (cond, and, or, xor,
// is_error, exists, logical_maximum/minimum) can control evaluation
// themselves;
// functions that want universal propagation call e.evalArgs to get a
// []Result up front.
type Func func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result

// Registry holds the builtin function table, following the "register once,
// look up by name" shape of a database/sql driver registry: builtins
// register themselves into a package-level registry at init time and the
// evaluator looks functions up by name at evaluation time.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a function under name, panicking on duplicate registration
// — a duplicate is a programming error caught at init time, not a runtime
// condition.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		panic(fmt.Sprintf("eval: function %q already registered", name))
	}
	r.funcs[name] = fn
}

// Lookup retrieves a function by name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Default is the package-level registry populated by init() in the
// arithmetic.go/comparison.go/array.go/logical.go/string.go/timestamp.go
// files of this package — mirroring the teacher's global decorator
// registry (core/decorator/registry.go).
var Default = NewRegistry()

func register(name string, fn Func) { Default.Register(name, fn) }
