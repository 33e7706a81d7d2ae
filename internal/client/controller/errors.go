package controller

// Op names a controller operation that talks to the server.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OperationError is the only failure the controller reports. Transport
// errors and non-success statuses both end up here; Err keeps the cause.
type OperationError struct {
	Op     Op
	Phrase string
	Err    error
}

func (e *OperationError) Error() string { return e.Phrase }

func (e *OperationError) Unwrap() error { return e.Err }
