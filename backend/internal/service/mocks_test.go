package service

import (
	"context"
	"sync"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
)

// --- Mocks ---

// MockStorage mocks both ThreadStorage and ReplyStorage.
type MockStorage struct {
	createThreadFunc   func(ctx context.Context, thread domain.Thread) error
	getThreadFunc      func(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	listThreadsFunc    func(ctx context.Context, board domain.BoardName, limit int) ([]domain.Thread, error)
	deleteThreadFunc   func(ctx context.Context, id domain.ThreadId) error
	reportThreadFunc   func(ctx context.Context, id domain.ThreadId) error
	appendReplyFunc    func(ctx context.Context, threadId domain.ThreadId, reply domain.Reply, bumpedOn time.Time) error
	tombstoneReplyFunc func(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error
	reportReplyFunc    func(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error

	mu                   sync.Mutex
	createThreadCalled   bool
	deleteThreadCalled   bool
	appendReplyCalled    bool
	tombstoneReplyCalled bool
	reportThreadCalled   bool
	reportReplyCalled    bool
	lastCreatedThread    domain.Thread
	lastAppendedReply    domain.Reply
	lastBumpedOn         time.Time
}

func (m *MockStorage) CreateThread(ctx context.Context, thread domain.Thread) error {
	m.mu.Lock()
	m.createThreadCalled = true
	m.lastCreatedThread = thread
	m.mu.Unlock()
	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, thread)
	}
	return nil
}

func (m *MockStorage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(ctx, id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockStorage) ListThreads(ctx context.Context, board domain.BoardName, limit int) ([]domain.Thread, error) {
	if m.listThreadsFunc != nil {
		return m.listThreadsFunc(ctx, board, limit)
	}
	return nil, nil
}

func (m *MockStorage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	m.mu.Lock()
	m.deleteThreadCalled = true
	m.mu.Unlock()
	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) ReportThread(ctx context.Context, id domain.ThreadId) error {
	m.mu.Lock()
	m.reportThreadCalled = true
	m.mu.Unlock()
	if m.reportThreadFunc != nil {
		return m.reportThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) AppendReply(ctx context.Context, threadId domain.ThreadId, reply domain.Reply, bumpedOn time.Time) error {
	m.mu.Lock()
	m.appendReplyCalled = true
	m.lastAppendedReply = reply
	m.lastBumpedOn = bumpedOn
	m.mu.Unlock()
	if m.appendReplyFunc != nil {
		return m.appendReplyFunc(ctx, threadId, reply, bumpedOn)
	}
	return nil
}

func (m *MockStorage) TombstoneReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	m.mu.Lock()
	m.tombstoneReplyCalled = true
	m.mu.Unlock()
	if m.tombstoneReplyFunc != nil {
		return m.tombstoneReplyFunc(ctx, threadId, replyId)
	}
	return nil
}

func (m *MockStorage) ReportReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	m.mu.Lock()
	m.reportReplyCalled = true
	m.mu.Unlock()
	if m.reportReplyFunc != nil {
		return m.reportReplyFunc(ctx, threadId, replyId)
	}
	return nil
}

// MockValidator mocks BoardValidator and TextValidator.
type MockValidator struct {
	nameFunc func(name domain.BoardName) error
	textFunc func(text string) error
}

func (m *MockValidator) Name(name domain.BoardName) error {
	if m.nameFunc != nil {
		return m.nameFunc(name)
	}
	return nil
}

func (m *MockValidator) Text(text string) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}

// --- Helpers ---

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIds(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

const (
	threadId1 = "0b0f6f4e-6a43-4c8e-9a57-8f0b1d8c0a01"
	threadId2 = "0b0f6f4e-6a43-4c8e-9a57-8f0b1d8c0a02"
	replyId1  = "7d9c4f2a-1c1e-4a55-8d8e-3c2b1a0f9e01"
	replyId2  = "7d9c4f2a-1c1e-4a55-8d8e-3c2b1a0f9e02"
	replyId3  = "7d9c4f2a-1c1e-4a55-8d8e-3c2b1a0f9e03"
)
