package numeric

// DomainError is an error returned when an operation is undefined for its
// operands, e.g. division by zero or the logarithm of zero.
type DomainError struct {
	// Func names the operation.
	Func string
	// Reason describes the failure.
	Reason string
}

func (err *DomainError) Error() string {
	if err.Func == "" {
		return "math error: " + err.Reason
	}
	return "math error in " + err.Func + ": " + err.Reason
}

func divByZero(f string) error {
	return &DomainError{Func: f, Reason: "division by zero"}
}

func overflow(f string) error {
	return &DomainError{Func: f, Reason: "result is too large"}
}

// finite returns v, or a DomainError if a component of v overflowed.
func finite(f string, v Value) (Value, error) {
	switch v := v.(type) {
	case Real:
		if v.val().IsInf() {
			return nil, overflow(f)
		}
	case Complex:
		re, im := v.parts()
		if re.IsInf() || im.IsInf() {
			return nil, overflow(f)
		}
	}
	return v, nil
}
