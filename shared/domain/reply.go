package domain

import "time"

type ReplyCreationData struct {
	ThreadId       ThreadId
	Text           string
	DeletePassword Password
}

type Reply struct {
	Id             ReplyId
	Text           string
	CreatedOn      time.Time
	Reported       bool
	DeletePassword Password
}

// IsDeleted reports whether the reply was tombstoned.
func (r *Reply) IsDeleted() bool {
	return r.Text == DeletedReplyText
}

type ReplyView struct {
	Id        ReplyId   `json:"_id"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}
