package api

import "github.com/itchan-dev/msgboard/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Text           string `json:"text" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

// DeleteThreadRequest leaves delete_password optional: an empty password
// is a mismatch, not a malformed request.
type DeleteThreadRequest struct {
	ThreadId       string `json:"thread_id" validate:"required"`
	DeletePassword string `json:"delete_password"`
}

type ReportThreadRequest struct {
	ThreadId string `json:"thread_id" validate:"required"`
}

// Response DTOs

// ThreadResponse wraps a redacted thread
// Embed domain.ThreadView so password and report flag can't leak
type ThreadResponse struct {
	domain.ThreadView
}

func NewThreadListResponse(views []domain.ThreadView) []ThreadResponse {
	resp := make([]ThreadResponse, len(views))
	for i, v := range views {
		resp[i] = ThreadResponse{v}
	}
	return resp
}
