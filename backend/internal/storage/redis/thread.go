package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/logger"
	"github.com/redis/go-redis/v9"
)

func (s *Storage) CreateThread(ctx context.Context, thread domain.Thread) error {
	doc := toDocument(thread)
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal thread: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, threadKey(doc.Id), encoded, 0)
		pipe.ZAdd(ctx, boardKey(doc.Board), redis.Z{Score: bumpScore(doc.BumpedOn), Member: doc.Id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("create thread: %w", err)
	}
	return nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	doc, err := get(ctx, s.client, id)
	if err != nil {
		return domain.Thread{}, err
	}
	return doc.toDomain(), nil
}

// ListThreads pages through the board index until limit live threads are
// found. Index entries whose document is gone are skipped and pruned.
func (s *Storage) ListThreads(ctx context.Context, board domain.BoardName, limit int) ([]domain.Thread, error) {
	threads := []domain.Thread{}
	if limit <= 0 {
		return threads, nil
	}

	index := boardKey(board)
	seen := make(map[string]bool, limit)
	var dangling []any
	for start := int64(0); len(threads) < limit; {
		want := int64(limit - len(threads))
		ids, err := s.client.ZRevRange(ctx, index, start, start+want-1).Result()
		if err != nil {
			return nil, fmt.Errorf("list threads: %w", err)
		}
		if len(ids) == 0 {
			break
		}
		start += int64(len(ids))

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = threadKey(id)
		}
		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("load threads: %w", err)
		}
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				dangling = append(dangling, ids[i])
				continue
			}
			// a bump between two pages can move a thread into the next one
			if seen[ids[i]] {
				continue
			}
			seen[ids[i]] = true
			doc, err := decode(raw)
			if err != nil {
				return nil, err
			}
			threads = append(threads, doc.toDomain())
		}
		if int64(len(ids)) < want {
			break
		}
	}

	if len(dangling) > 0 {
		if err := s.client.ZRem(ctx, index, dangling...).Err(); err != nil {
			logger.Log.Warn("failed to prune board index", "board", board, "error", err)
		}
	}
	return threads, nil
}

// DeleteThread removes the thread document and its board index entry.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	key := threadKey(id)
	txf := func(tx *redis.Tx) error {
		doc, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, boardKey(doc.Board), doc.Id)
			return nil
		})
		return err
	}

	return s.watch(ctx, key, "delete thread", txf)
}

func (s *Storage) ReportThread(ctx context.Context, id domain.ThreadId) error {
	return s.update(ctx, id, func(doc *document) error {
		doc.Reported = true
		return nil
	})
}
