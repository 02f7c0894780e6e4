package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	sharedpg "github.com/itchan-dev/msgboard/shared/storage/pg"
)

// AppendReply inserts the reply and bumps its thread in one transaction.
func (s *Storage) AppendReply(ctx context.Context, threadId domain.ThreadId, reply domain.Reply, bumpedOn time.Time) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE threads SET bumped_on = $2 WHERE id = $1`, threadId, bumpedOn)
		if err != nil {
			if sharedpg.IsInvalidText(err) {
				return internal_errors.ErrThreadNotFound
			}
			return fmt.Errorf("failed to bump thread: %w", err)
		}
		if err := expectAffected(result, internal_errors.ErrThreadNotFound); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO replies (id, thread_id, text, created_on, reported, delete_password)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, reply.Id, threadId, reply.Text, reply.CreatedOn, reply.Reported, reply.DeletePassword)
		if err != nil {
			return fmt.Errorf("failed to insert reply: %w", err)
		}
		return nil
	})
}

// TombstoneReply keeps the reply in place and replaces its text.
func (s *Storage) TombstoneReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	return s.updateReply(ctx, threadId, replyId, `UPDATE replies SET text = $3 WHERE thread_id = $1 AND id = $2`, domain.DeletedReplyText)
}

func (s *Storage) ReportReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	return s.updateReply(ctx, threadId, replyId, `UPDATE replies SET reported = TRUE WHERE thread_id = $1 AND id = $2`)
}

func (s *Storage) updateReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, append([]any{threadId, replyId}, args...)...)
	if err != nil {
		if sharedpg.IsInvalidText(err) {
			return s.missingReply(ctx, threadId)
		}
		return fmt.Errorf("failed to update reply: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return s.missingReply(ctx, threadId)
	}
	return nil
}

// missingReply tells apart a missing thread from a missing reply.
func (s *Storage) missingReply(ctx context.Context, threadId domain.ThreadId) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM threads WHERE id = $1)`, threadId).Scan(&exists)
	if err != nil {
		if sharedpg.IsInvalidText(err) {
			return internal_errors.ErrThreadNotFound
		}
		return fmt.Errorf("failed to check thread: %w", err)
	}
	if !exists {
		return internal_errors.ErrThreadNotFound
	}
	return internal_errors.ErrReplyNotFound
}
