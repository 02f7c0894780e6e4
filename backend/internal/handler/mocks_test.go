package handler

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockThreadService struct {
	MockCreate func(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	MockList   func(ctx context.Context, board domain.BoardName) ([]domain.ThreadView, error)
	MockGet    func(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error)
	MockDelete func(ctx context.Context, id domain.ThreadId, password domain.Password) error
	MockReport func(ctx context.Context, id domain.ThreadId) error
}

func (m *MockThreadService) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return "", nil
}

func (m *MockThreadService) List(ctx context.Context, board domain.BoardName) ([]domain.ThreadView, error) {
	if m.MockList != nil {
		return m.MockList(ctx, board)
	}
	return []domain.ThreadView{}, nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.ThreadView{}, nil
}

func (m *MockThreadService) Delete(ctx context.Context, id domain.ThreadId, password domain.Password) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, password)
	}
	return nil
}

func (m *MockThreadService) Report(ctx context.Context, id domain.ThreadId) error {
	if m.MockReport != nil {
		return m.MockReport(ctx, id)
	}
	return nil
}

type MockReplyService struct {
	MockCreate func(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error)
	MockDelete func(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error
	MockReport func(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error
}

func (m *MockReplyService) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return "", nil
}

func (m *MockReplyService) Delete(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, threadId, replyId, password)
	}
	return nil
}

func (m *MockReplyService) Report(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	if m.MockReport != nil {
		return m.MockReport(ctx, threadId, replyId)
	}
	return nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

// escapeRenderer stands in for the markdown processor.
type escapeRenderer struct{}

func (escapeRenderer) Render(text string) string {
	return "<p>" + html.EscapeString(text) + "</p>"
}

// --- Helpers ---

func newTestHandler(t *testing.T, thread *MockThreadService, reply *MockReplyService) *Handler {
	t.Helper()
	if thread == nil {
		thread = &MockThreadService{}
	}
	if reply == nil {
		reply = &MockReplyService{}
	}
	h, err := New(thread, reply, &MockHealthChecker{}, escapeRenderer{})
	require.NoError(t, err)
	return h
}

// testRouter mounts the handler like the real router does, without middleware.
func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Post("/", h.CreateThread)
		r.Get("/", h.ListThreads)
		r.Delete("/", h.DeleteThread)
		r.Put("/", h.ReportThread)
	})
	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Post("/", h.CreateReply)
		r.Get("/", h.GetThread)
		r.Delete("/", h.DeleteReply)
		r.Put("/", h.ReportReply)
	})
	r.Get("/b/{board}/", h.BoardPage)
	r.Get("/b/{board}/{thread}/", h.ThreadPage)
	r.NotFound(h.NotFound)
	return r
}

func serve(h http.Handler, method, url, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const (
	jsonType = "application/json"
	formType = "application/x-www-form-urlencoded"
)
