package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/api"
	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
	"github.com/itchan-dev/msgboard/shared/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	var body api.CreateThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	_, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Board:          board,
		Text:           body.Text,
		DeletePassword: body.DeletePassword,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	metrics.RecordOutcome("create_thread", api.OutcomeSuccess)
	http.Redirect(w, r, boardPath(board), http.StatusFound)
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	threads, err := h.thread.List(r.Context(), board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	utils.WriteJSON(w, api.NewThreadListResponse(threads))
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	err := h.thread.Delete(r.Context(), body.ThreadId, body.DeletePassword)
	writeOutcome(w, r, "delete_thread", err, api.OutcomeSuccess)
}

func (h *Handler) ReportThread(w http.ResponseWriter, r *http.Request) {
	var body api.ReportThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	err := h.thread.Report(r.Context(), body.ThreadId)
	writeOutcome(w, r, "report_thread", err, api.OutcomeReported)
}
