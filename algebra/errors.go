package algebra

import "errors"

// ErrUnsupported is the error that every UnsupportedError matches with
// errors.Is.
var ErrUnsupported = errors.New("unsupported")

// UnsupportedError reports an input shape outside what a symbolic operation
// handles, e.g. a product of two functions of the variable of integration.
type UnsupportedError struct {
	// Op names the operation.
	Op string
	// Expr is the subexpression that could not be handled.
	Expr Expr
}

func (err *UnsupportedError) Error() string {
	return "cannot " + err.Op + " " + err.Expr.String()
}

// Is makes UnsupportedError match ErrUnsupported.
func (err *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func unsupported(op string, e Expr) error {
	return &UnsupportedError{Op: op, Expr: e}
}
