package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/backend/internal/templates"
	"github.com/itchan-dev/msgboard/shared/api"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
	"github.com/itchan-dev/msgboard/shared/utils"
)

func (h *Handler) BoardPage(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	threads, err := h.thread.List(r.Context(), board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	page := templates.BoardPage{Title: "/" + board + "/", Board: board, Threads: make([]templates.Thread, len(threads))}
	for i, thread := range threads {
		page.Threads[i] = h.renderThread(thread)
	}
	h.writePage(w, r, func(buf *bytes.Buffer) error { return h.pages.Board(buf, page) })
}

func (h *Handler) ThreadPage(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	threadId := chi.URLParam(r, "thread")

	thread, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrThreadNotFound) {
			http.Error(w, api.OutcomeThreadNotFound, http.StatusNotFound)
			return
		}
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	page := templates.ThreadPage{Title: "/" + board + "/ " + thread.Id, Thread: h.renderThread(thread)}
	h.writePage(w, r, func(buf *bytes.Buffer) error { return h.pages.Thread(buf, page) })
}

// writePage renders into a buffer first so a template error never leaves a
// half-written page behind.
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, render func(buf *bytes.Buffer) error) {
	buf := new(bytes.Buffer)
	if err := render(buf); err != nil {
		logger.Log.Error("error executing template", "path", r.URL.Path, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderThread(thread domain.ThreadView) templates.Thread {
	out := templates.Thread{
		Id:        thread.Id,
		Board:     thread.Board,
		HTML:      template.HTML(h.text.Render(thread.Text)),
		CreatedOn: thread.CreatedOn,
		BumpedOn:  thread.BumpedOn,
		Replies:   make([]templates.Reply, len(thread.Replies)),
	}
	for i, reply := range thread.Replies {
		out.Replies[i] = templates.Reply{
			Id:        reply.Id,
			HTML:      template.HTML(h.text.Render(reply.Text)),
			CreatedOn: reply.CreatedOn,
		}
	}
	return out
}
