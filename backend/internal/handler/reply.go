package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/api"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
	"github.com/itchan-dev/msgboard/shared/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	var body api.CreateReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	_, err := h.reply.Create(r.Context(), domain.ReplyCreationData{
		ThreadId:       body.ThreadId,
		Text:           body.Text,
		DeletePassword: body.DeletePassword,
	})
	if err != nil {
		writeOutcome(w, r, "create_reply", err, "")
		return
	}

	metrics.RecordOutcome("create_reply", api.OutcomeSuccess)
	http.Redirect(w, r, threadPath(board, body.ThreadId), http.StatusFound)
}

// GetThread returns one thread with all its replies.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId := r.URL.Query().Get("thread_id")
	if threadId == "" {
		utils.WriteErrorAndStatusCode(w, r, &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest})
		return
	}

	thread, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrThreadNotFound) {
			utils.WriteText(w, api.OutcomeThreadNotFound)
			return
		}
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	utils.WriteJSON(w, api.ThreadResponse{ThreadView: thread})
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	err := h.reply.Delete(r.Context(), body.ThreadId, body.ReplyId, body.DeletePassword)
	writeOutcome(w, r, "delete_reply", err, api.OutcomeSuccess)
}

func (h *Handler) ReportReply(w http.ResponseWriter, r *http.Request) {
	var body api.ReportReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	err := h.reply.Report(r.Context(), body.ThreadId, body.ReplyId)
	writeOutcome(w, r, "report_reply", err, api.OutcomeReported)
}
