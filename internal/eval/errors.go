package eval

import "fmt"

// errUnsetArgument is the diagnostic wrapped into the Error outcome
// produced when universal propagation sees an Unset argument (§4.2 rule 3:
// "unset is never silent").
var errUnsetArgument = fmt.Errorf("eval: unset value used as function argument")

func unknownFunctionError(name string) error {
	return fmt.Errorf("eval: unknown function %q", name)
}

func typeError(format string, args ...interface{}) error {
	return fmt.Errorf("eval: "+format, args...)
}
