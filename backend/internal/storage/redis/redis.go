// Package redis stores each thread as one JSON document, with a per-board
// sorted set ordering threads by bump time.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
	"github.com/redis/go-redis/v9"
)

// maxTxAttempts bounds optimistic retries when a watched thread changes
// under a read-modify-write.
const maxTxAttempts = 5

var errConflict = errors.New("thread was modified concurrently")

type Storage struct {
	client *redis.Client
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.Private.Redis.Url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	logger.Log.Info("connecting to redis", "addr", opts.Addr)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Log.Info("successfully connected to redis")
	return &Storage{client: client}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) Cleanup() error {
	return s.client.Close()
}

func threadKey(id domain.ThreadId) string {
	return "thread:" + id
}

func boardKey(board domain.BoardName) string {
	return "board:" + board + ":threads"
}

// bumpScore orders threads inside a board set. Millisecond precision keeps
// the score exact in a float64.
func bumpScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// document is the stored JSON form of a thread, secrets included.
type document struct {
	Id             string          `json:"_id"`
	Board          string          `json:"board"`
	Text           string          `json:"text"`
	CreatedOn      time.Time       `json:"created_on"`
	BumpedOn       time.Time       `json:"bumped_on"`
	Reported       bool            `json:"reported"`
	DeletePassword string          `json:"delete_password"`
	Replies        []replyDocument `json:"replies"`
}

type replyDocument struct {
	Id             string    `json:"_id"`
	Text           string    `json:"text"`
	CreatedOn      time.Time `json:"created_on"`
	Reported       bool      `json:"reported"`
	DeletePassword string    `json:"delete_password"`
}

func toDocument(thread domain.Thread) document {
	doc := document{
		Id:             thread.Id,
		Board:          thread.Board,
		Text:           thread.Text,
		CreatedOn:      thread.CreatedOn.UTC(),
		BumpedOn:       thread.BumpedOn.UTC(),
		Reported:       thread.Reported,
		DeletePassword: thread.DeletePassword,
		Replies:        make([]replyDocument, len(thread.Replies)),
	}
	for i, r := range thread.Replies {
		doc.Replies[i] = toReplyDocument(r)
	}
	return doc
}

func toReplyDocument(reply domain.Reply) replyDocument {
	return replyDocument{
		Id:             reply.Id,
		Text:           reply.Text,
		CreatedOn:      reply.CreatedOn.UTC(),
		Reported:       reply.Reported,
		DeletePassword: reply.DeletePassword,
	}
}

func (d document) toDomain() domain.Thread {
	thread := domain.Thread{
		Id:             d.Id,
		Board:          d.Board,
		Text:           d.Text,
		CreatedOn:      d.CreatedOn,
		BumpedOn:       d.BumpedOn,
		Reported:       d.Reported,
		DeletePassword: d.DeletePassword,
		Replies:        make([]domain.Reply, len(d.Replies)),
	}
	for i, r := range d.Replies {
		thread.Replies[i] = domain.Reply{
			Id:             r.Id,
			Text:           r.Text,
			CreatedOn:      r.CreatedOn,
			Reported:       r.Reported,
			DeletePassword: r.DeletePassword,
		}
	}
	return thread
}

func decode(raw string) (document, error) {
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return document{}, fmt.Errorf("unmarshal thread: %w", err)
	}
	return doc, nil
}

func get(ctx context.Context, c redis.Cmdable, id domain.ThreadId) (document, error) {
	raw, err := c.Get(ctx, threadKey(id)).Result()
	if err == redis.Nil {
		return document{}, internal_errors.ErrThreadNotFound
	}
	if err != nil {
		return document{}, fmt.Errorf("get thread: %w", err)
	}
	return decode(raw)
}

// update runs fn on the current document of thread id and writes the result
// back, retrying if the thread changes in between.
func (s *Storage) update(ctx context.Context, id domain.ThreadId, fn func(doc *document) error) error {
	key := threadKey(id)
	txf := func(tx *redis.Tx) error {
		doc, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&doc); err != nil {
			return err
		}
		encoded, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal thread: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.ZAdd(ctx, boardKey(doc.Board), redis.Z{Score: bumpScore(doc.BumpedOn), Member: doc.Id})
			return nil
		})
		return err
	}

	return s.watch(ctx, key, "update thread", txf)
}

// watch runs txf as an optimistic transaction on key. Business outcomes
// from txf are returned as is.
func (s *Storage) watch(ctx context.Context, key, action string, txf func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !internal_errors.IsBusinessOutcome(err) {
			return fmt.Errorf("%s: %w", action, err)
		}
		return err
	}
	return fmt.Errorf("%s: %w", action, errConflict)
}
