package redis

import (
	"context"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
)

func (s *Storage) AppendReply(ctx context.Context, threadId domain.ThreadId, reply domain.Reply, bumpedOn time.Time) error {
	return s.update(ctx, threadId, func(doc *document) error {
		doc.Replies = append(doc.Replies, toReplyDocument(reply))
		doc.BumpedOn = bumpedOn.UTC()
		return nil
	})
}

func (s *Storage) TombstoneReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	return s.updateReply(ctx, threadId, replyId, func(reply *replyDocument) {
		reply.Text = domain.DeletedReplyText
	})
}

func (s *Storage) ReportReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId) error {
	return s.updateReply(ctx, threadId, replyId, func(reply *replyDocument) {
		reply.Reported = true
	})
}

func (s *Storage) updateReply(ctx context.Context, threadId domain.ThreadId, replyId domain.ReplyId, fn func(reply *replyDocument)) error {
	return s.update(ctx, threadId, func(doc *document) error {
		for i := range doc.Replies {
			if doc.Replies[i].Id == replyId {
				fn(&doc.Replies[i])
				return nil
			}
		}
		return internal_errors.ErrReplyNotFound
	})
}
