package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactThread(t *testing.T) {
	thread := makeThread(threadId1, fixedNow, 5)

	t.Run("Keeps the last replies in order", func(t *testing.T) {
		view := RedactThread(thread, 3)
		require.Len(t, view.Replies, 3)
		assert.Equal(t, []string{"R2", "R3", "R4"}, []string{view.Replies[0].Text, view.Replies[1].Text, view.Replies[2].Text})
	})

	t.Run("All replies", func(t *testing.T) {
		view := RedactThread(thread, AllReplies)
		assert.Len(t, view.Replies, 5)
	})

	t.Run("Limit above reply count", func(t *testing.T) {
		view := RedactThread(thread, 10)
		assert.Len(t, view.Replies, 5)
	})

	t.Run("Zero limit gives empty list", func(t *testing.T) {
		view := RedactThread(thread, 0)
		assert.NotNil(t, view.Replies)
		assert.Empty(t, view.Replies)
	})

	t.Run("No replies encodes as empty array", func(t *testing.T) {
		view := RedactThread(domain.Thread{Id: threadId2, Board: "b", Text: "x"}, 3)
		raw, err := json.Marshal(view)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, []any{}, decoded["replies"])
	})

	t.Run("Secrets never reach the wire", func(t *testing.T) {
		raw, err := json.Marshal(RedactThread(thread, AllReplies))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.ElementsMatch(t, []string{"_id", "board", "text", "created_on", "bumped_on", "replies"}, keys(decoded))
		for _, r := range decoded["replies"].([]any) {
			assert.ElementsMatch(t, []string{"_id", "text", "created_on"}, keys(r.(map[string]any)))
		}
		assert.NotContains(t, string(raw), "secret")
	})

	t.Run("Does not alias stored replies", func(t *testing.T) {
		stored := makeThread(threadId1, fixedNow, 2)
		view := RedactThread(stored, AllReplies)
		view.Replies[0].Text = "changed"
		assert.Equal(t, "R0", stored.Replies[0].Text)
	})
}

func TestRedactReply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	view := RedactReply(domain.Reply{Id: replyId1, Text: domain.DeletedReplyText, CreatedOn: created, Reported: true, DeletePassword: "q"})

	assert.Equal(t, domain.ReplyView{Id: replyId1, Text: "[deleted]", CreatedOn: created}, view)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
