package service

import (
	"context"
	"time"

	"github.com/itchan-dev/msgboard/backend/internal/utils"
	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
)

type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	List(ctx context.Context, board domain.BoardName) ([]domain.ThreadView, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error)
	Delete(ctx context.Context, id domain.ThreadId, password domain.Password) error
	Report(ctx context.Context, id domain.ThreadId) error
}

// ThreadStorage returns internal_errors.ErrThreadNotFound for unknown ids.
type ThreadStorage interface {
	CreateThread(ctx context.Context, thread domain.Thread) error
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	// ListThreads returns at most limit threads of board, most recently bumped first.
	ListThreads(ctx context.Context, board domain.BoardName, limit int) ([]domain.Thread, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	ReportThread(ctx context.Context, id domain.ThreadId) error
}

type BoardValidator interface {
	Name(name domain.BoardName) error
}

type TextValidator interface {
	Text(text string) error
}

type Thread struct {
	storage        ThreadStorage
	boardValidator BoardValidator
	textValidator  TextValidator
	passwords      PasswordHasher
	cfg            config.Public
	now            func() time.Time
	newId          func() string
}

func NewThread(storage ThreadStorage, boardValidator BoardValidator, textValidator TextValidator, passwords PasswordHasher, cfg config.Public) *Thread {
	return &Thread{
		storage:        storage,
		boardValidator: boardValidator,
		textValidator:  textValidator,
		passwords:      passwords,
		cfg:            cfg,
		now:            time.Now,
		newId:          utils.NewId,
	}
}

func (s *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	if err := s.boardValidator.Name(creationData.Board); err != nil {
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
	thread := domain.Thread{
		Id:             s.newId(),
		Board:          creationData.Board,
		Text:           creationData.Text,
		CreatedOn:      now,
		BumpedOn:       now,
		Reported:       false,
		DeletePassword: stored,
		Replies:        []domain.Reply{},
	}
	if err := s.storage.CreateThread(ctx, thread); err != nil {
		return "", err
	}
	return thread.Id, nil
}

// List returns the board listing: the most recently bumped threads with
// their last few replies.
func (s *Thread) List(ctx context.Context, board domain.BoardName) ([]domain.ThreadView, error) {
	threads, err := s.storage.ListThreads(ctx, board, s.cfg.ListThreadLimit)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ThreadView, 0, len(threads))
	for _, thread := range threads {
		if len(views) == s.cfg.ListThreadLimit {
			break
		}
		views = append(views, RedactThread(thread, s.cfg.ListReplyLimit))
	}
	return views, nil
}

// Get returns the whole thread with every reply.
func (s *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	if !utils.IsId(id) {
		return domain.ThreadView{}, internal_errors.ErrThreadNotFound
	}
	thread, err := s.storage.GetThread(ctx, id)
	if err != nil {
		return domain.ThreadView{}, err
	}
	return RedactThread(thread, AllReplies), nil
}

func (s *Thread) Delete(ctx context.Context, id domain.ThreadId, password domain.Password) error {
	if !utils.IsId(id) {
		return internal_errors.ErrThreadNotFound
	}
	thread, err := s.storage.GetThread(ctx, id)
	if err != nil {
		return err
	}
	if !s.passwords.Matches(thread.DeletePassword, password) {
		return internal_errors.ErrIncorrectPassword
	}
	return s.storage.DeleteThread(ctx, id)
}

// Report flags the thread. Reporting twice is not an error.
func (s *Thread) Report(ctx context.Context, id domain.ThreadId) error {
	if !utils.IsId(id) {
		return internal_errors.ErrThreadNotFound
	}
	return s.storage.ReportThread(ctx, id)
}
