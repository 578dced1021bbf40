package usecase

// Wire error codes of the callable command endpoints.
const (
	CodePermissionDenied   = "permission-denied"
	CodeInvalidArgument    = "invalid-argument"
	CodeFailedPrecondition = "failed-precondition"
	CodeInternal           = "internal"
)

// CallError is the structured failure a callable command returns to its
// client. Collaborator failures are logged in full server-side and
// re-signaled as CodeInternal so no detail leaks over the wire.
type CallError struct {
	Code    string
	Message string
}

func (e *CallError) Error() string {
	return e.Code + ": " + e.Message
}

func NewCallError(code, message string) *CallError {
	return &CallError{Code: code, Message: message}
}
