package convert

// OperationError wraps any failure from the storage layer or a malformed
// request. Handlers fold it into a FAILED response at the boundary instead
// of returning an error to the runtime.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

func opError(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}

func missingField(name string) *OperationError {
	return &OperationError{Op: "missing required field " + name}
}
