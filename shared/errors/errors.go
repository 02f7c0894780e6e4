package errors

import "errors"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Business outcomes of the mutation engine. Handlers answer them with 200
// and a plain-text body instead of an error status.
var (
	ErrThreadNotFound    = errors.New("thread not found")
	ErrReplyNotFound     = errors.New("reply not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// IsBusinessOutcome is true for errors that are not failures of the system.
func IsBusinessOutcome(err error) bool {
	return errors.Is(err, ErrThreadNotFound) ||
		errors.Is(err, ErrReplyNotFound) ||
		errors.Is(err, ErrIncorrectPassword)
}
