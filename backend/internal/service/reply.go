package service

import (
	"context"
	"time"

	"github.com/itchan-dev/msgboard/backend/internal/utils"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
)

type ReplyService interface {
	Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error)
	Delete(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error
	Report(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error
}

// ReplyStorage returns internal_errors.ErrThreadNotFound and
// internal_errors.ErrReplyNotFound for unknown ids.
type ReplyStorage interface {
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	// AppendReply adds reply to the end of the thread and sets its bumped_on, atomically.
	AppendReply(ctx context.Context, threadId domain.ThreadId, reply domain.Reply, bumpedOn time.Time) error
	// TombstoneReply replaces the reply text with domain.DeletedReplyText.
	TombstoneReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error
	ReportReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error
}

type Reply struct {
	storage       ReplyStorage
	textValidator TextValidator
	passwords     PasswordHasher
	now           func() time.Time
	newId         func() string
}

func NewReply(storage ReplyStorage, textValidator TextValidator, passwords PasswordHasher) *Reply {
	return &Reply{
		storage:       storage,
		textValidator: textValidator,
		passwords:     passwords,
		now:           time.Now,
		newId:         utils.NewId,
	}
}

// Create appends a reply and bumps its thread.
func (s *Reply) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.ReplyId, error) {
	if !utils.IsId(creationData.ThreadId) {
		return "", internal_errors.ErrThreadNotFound
	}
	thread, err := s.storage.GetThread(ctx, creationData.ThreadId)
	if err != nil {
		return "", err
	}
	if err := s.textValidator.Text(creationData.Text); err != nil {
		return "", err
	}
	stored, err := s.passwords.Hash(creationData.DeletePassword)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	reply := domain.Reply{
		Id:             s.newId(),
		Text:           creationData.Text,
		CreatedOn:      now,
		Reported:       false,
		DeletePassword: stored,
	}
	// bumped_on never goes below created_on, even if the clock does
	bumpedOn := now
	if bumpedOn.Before(thread.CreatedOn) {
		bumpedOn = thread.CreatedOn
	}
	if err := s.storage.AppendReply(ctx, thread.Id, reply, bumpedOn); err != nil {
		return "", err
	}
	return reply.Id, nil
}

// Delete tombstones the reply if password is the reply's own password.
// The thread password has no power over replies.
func (s *Reply) Delete(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error {
	reply, err := s.find(ctx, threadId, replyId)
	if err != nil {
		return err
	}
	if !s.passwords.Matches(reply.DeletePassword, password) {
		return internal_errors.ErrIncorrectPassword
	}
	if reply.IsDeleted() {
		return nil
	}
	return s.storage.TombstoneReply(ctx, threadId, replyId)
}

// Report flags the reply. Reporting twice is not an error.
func (s *Reply) Report(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	if _, err := s.find(ctx, threadId, replyId); err != nil {
		return err
	}
	return s.storage.ReportReply(ctx, threadId, replyId)
}

func (s *Reply) find(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) (domain.Reply, error) {
	if !utils.IsId(threadId) {
		return domain.Reply{}, internal_errors.ErrThreadNotFound
	}
	thread, err := s.storage.GetThread(ctx, threadId)
	if err != nil {
		return domain.Reply{}, err
	}
	idx := thread.FindReply(replyId)
	if idx < 0 {
		return domain.Reply{}, internal_errors.ErrReplyNotFound
	}
	return thread.Replies[idx], nil
}
