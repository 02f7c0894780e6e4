package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Board          BoardName
	Text           string
	DeletePassword Password
}

// Thread is the stored aggregate. It owns its replies and carries
// write-side fields that must never leave the backend.
type Thread struct {
	Id             ThreadId
	Board          BoardName
	Text           string
	CreatedOn      time.Time
	BumpedOn       time.Time
	Reported       bool
	DeletePassword Password
	Replies        []Reply
}

// FindReply returns the index of the reply with the given id, or -1.
func (t *Thread) FindReply(id ReplyId) int {
	for i := range t.Replies {
		if t.Replies[i].Id == id {
			return i
		}
	}
	return -1
}

// ThreadView is the externally visible shape of a thread.
type ThreadView struct {
	Id        ThreadId    `json:"_id"`
	Board     BoardName   `json:"board"`
	Text      string      `json:"text"`
	CreatedOn time.Time   `json:"created_on"`
	BumpedOn  time.Time   `json:"bumped_on"`
	Replies   []ReplyView `json:"replies"`
}
