package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/itchan-dev/msgboard/backend/internal/service"
	"github.com/itchan-dev/msgboard/backend/internal/templates"
	"github.com/itchan-dev/msgboard/shared/api"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
	"github.com/itchan-dev/msgboard/shared/utils"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// TextRenderer turns post text into safe HTML for the pages.
type TextRenderer interface {
	Render(text string) string
}

type Handler struct {
	thread service.ThreadService
	reply  service.ReplyService
	health HealthChecker
	text   TextRenderer
	pages  *templates.Pages
}

func New(thread service.ThreadService, reply service.ReplyService, health HealthChecker, text TextRenderer) (*Handler, error) {
	pages, err := templates.Parse()
	if err != nil {
		return nil, err
	}
	return &Handler{
		thread: thread,
		reply:  reply,
		health: health,
		text:   text,
		pages:  pages,
	}, nil
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

// writeOutcome answers a mutation. Business outcomes are 200 with a plain
// text body, anything else goes through the usual error path.
func writeOutcome(w http.ResponseWriter, r *http.Request, operation string, err error, success string) {
	outcome, ok := outcomeText(err, success)
	if !ok {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	metrics.RecordOutcome(operation, outcome)
	utils.WriteText(w, outcome)
}

func outcomeText(err error, success string) (string, bool) {
	switch {
	case err == nil:
		return success, true
	case errors.Is(err, internal_errors.ErrIncorrectPassword):
		return api.OutcomeIncorrectPassword, true
	case errors.Is(err, internal_errors.ErrReplyNotFound):
		return api.OutcomeReplyNotFound, true
	case errors.Is(err, internal_errors.ErrThreadNotFound):
		return api.OutcomeThreadNotFound, true
	}
	return "", false
}

func boardPath(board string) string {
	return "/b/" + url.PathEscape(board) + "/"
}

func threadPath(board, threadId string) string {
	return boardPath(board) + url.PathEscape(threadId) + "/"
}
