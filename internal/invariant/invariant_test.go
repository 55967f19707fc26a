package invariant_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aledsdavies/docpipe/internal/invariant"
)

func TestPreconditionPass(t *testing.T) {
	invariant.Precondition(true, "this should pass")
	invariant.Precondition(1 == 1, "math works")
}

func TestPreconditionFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for false precondition")
		}
		msg := fmt.Sprintf("%v", r)
		if !strings.Contains(msg, "PRECONDITION VIOLATION") {
			t.Errorf("expected PRECONDITION VIOLATION, got: %s", msg)
		}
		if !strings.Contains(msg, "document must have a key") {
			t.Errorf("expected custom message, got: %s", msg)
		}
	}()

	invariant.Precondition(false, "document must have a key")
}

func TestNotNilTypedNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for typed nil pointer")
		}
	}()

	var p *int
	invariant.NotNil(p, "p")
}

func TestInRange(t *testing.T) {
	invariant.InRange(5, 0, 10, "x")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range value")
		}
	}()
	invariant.InRange(-1, 0, 10, "x")
}

func TestExpectNoError(t *testing.T) {
	invariant.ExpectNoError(nil, "should not fail")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-nil error")
		}
	}()
	invariant.ExpectNoError(fmt.Errorf("boom"), "rewrite")
}
