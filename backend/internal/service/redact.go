package service

import "github.com/itchan-dev/msgboard/shared/domain"

// AllReplies disables reply truncation in RedactThread.
const AllReplies = -1

// RedactThread projects a stored thread to its public view. Only the last
// replyLimit replies are kept (oldest of them first), AllReplies keeps every
// reply. Passwords and report flags are dropped.
func RedactThread(thread domain.Thread, replyLimit int) domain.ThreadView {
	replies := thread.Replies
	if replyLimit >= 0 && len(replies) > replyLimit {
		replies = replies[len(replies)-replyLimit:]
	}

	view := domain.ThreadView{
		Id:        thread.Id,
		Board:     thread.Board,
		Text:      thread.Text,
		CreatedOn: thread.CreatedOn,
		BumpedOn:  thread.BumpedOn,
		Replies:   make([]domain.ReplyView, len(replies)),
	}
	for i := range replies {
		view.Replies[i] = RedactReply(replies[i])
	}
	return view
}

func RedactReply(reply domain.Reply) domain.ReplyView {
	return domain.ReplyView{
		Id:        reply.Id,
		Text:      reply.Text,
		CreatedOn: reply.CreatedOn,
	}
}
