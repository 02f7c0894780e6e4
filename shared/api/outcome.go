package api

// Plain-text bodies of the mutation endpoints. Callers tell outcomes apart
// by body, all of them are sent with 200 OK.
const (
	OutcomeSuccess           = "success"
	OutcomeReported          = "reported"
	OutcomeIncorrectPassword = "incorrect password"
	OutcomeThreadNotFound    = "thread not found"
	OutcomeReplyNotFound     = "reply not found"
)
