package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	sharedpg "github.com/itchan-dev/msgboard/shared/storage/pg"
	"github.com/lib/pq"
)

func (s *Storage) CreateThread(ctx context.Context, thread domain.Thread) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO threads (id, board, text, created_on, bumped_on, reported, delete_password)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, thread.Id, thread.Board, thread.Text, thread.CreatedOn, thread.BumpedOn, thread.Reported, thread.DeletePassword)
	if err != nil {
		return fmt.Errorf("failed to insert thread: %w", err)
	}
	return nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	return getThread(ctx, s.db, id)
}

func getThread(ctx context.Context, q sharedpg.Querier, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := q.QueryRowContext(ctx, `
        SELECT id, board, text, created_on, bumped_on, reported, delete_password
        FROM threads
        WHERE id = $1
    `, id).Scan(
		&thread.Id, &thread.Board, &thread.Text, &thread.CreatedOn,
		&thread.BumpedOn, &thread.Reported, &thread.DeletePassword,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || sharedpg.IsInvalidText(err) {
			return domain.Thread{}, internal_errors.ErrThreadNotFound
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	normalizeThreadTimes(&thread)

	replies, err := getReplies(ctx, q, []domain.ThreadId{id})
	if err != nil {
		return domain.Thread{}, err
	}
	thread.Replies = replies[id]
	if thread.Replies == nil {
		thread.Replies = []domain.Reply{}
	}
	return thread, nil
}

func (s *Storage) ListThreads(ctx context.Context, board domain.BoardName, limit int) ([]domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, board, text, created_on, bumped_on, reported, delete_password
        FROM threads
        WHERE board = $1
        ORDER BY bumped_on DESC, created_on DESC
        LIMIT $2
    `, board, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	var ids []domain.ThreadId
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(
			&thread.Id, &thread.Board, &thread.Text, &thread.CreatedOn,
			&thread.BumpedOn, &thread.Reported, &thread.DeletePassword,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		normalizeThreadTimes(&thread)
		threads = append(threads, thread)
		ids = append(ids, thread.Id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	if len(threads) == 0 {
		return threads, nil
	}

	replies, err := getReplies(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range threads {
		threads[i].Replies = replies[threads[i].Id]
		if threads[i].Replies == nil {
			threads[i].Replies = []domain.Reply{}
		}
	}
	return threads, nil
}

// DeleteThread removes the thread. Its replies go with it by cascade.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = $1`, id)
	if err != nil {
		if sharedpg.IsInvalidText(err) {
			return internal_errors.ErrThreadNotFound
		}
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	return expectAffected(result, internal_errors.ErrThreadNotFound)
}

func (s *Storage) ReportThread(ctx context.Context, id domain.ThreadId) error {
	result, err := s.db.ExecContext(ctx, `UPDATE threads SET reported = TRUE WHERE id = $1`, id)
	if err != nil {
		if sharedpg.IsInvalidText(err) {
			return internal_errors.ErrThreadNotFound
		}
		return fmt.Errorf("failed to report thread: %w", err)
	}
	return expectAffected(result, internal_errors.ErrThreadNotFound)
}

// getReplies loads the replies of the given threads keyed by thread id,
// each list in insertion order.
func getReplies(ctx context.Context, q sharedpg.Querier, threadIds []domain.ThreadId) (map[domain.ThreadId][]domain.Reply, error) {
	rows, err := q.QueryContext(ctx, `
        SELECT thread_id, id, text, created_on, reported, delete_password
        FROM replies
        WHERE thread_id = ANY($1::uuid[])
        ORDER BY position
    `, pq.Array(threadIds))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replies: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.ThreadId][]domain.Reply, len(threadIds))
	for rows.Next() {
		var threadId domain.ThreadId
		var reply domain.Reply
		if err := rows.Scan(&threadId, &reply.Id, &reply.Text, &reply.CreatedOn, &reply.Reported, &reply.DeletePassword); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		reply.CreatedOn = reply.CreatedOn.UTC()
		result[threadId] = append(result[threadId], reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return result, nil
}

func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func normalizeThreadTimes(thread *domain.Thread) {
	thread.CreatedOn = thread.CreatedOn.UTC()
	thread.BumpedOn = thread.BumpedOn.UTC()
}
