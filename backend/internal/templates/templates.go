// Package templates holds the embedded HTML of the board and thread pages.
package templates

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed *.html
var files embed.FS

// Thread is a redacted thread with its text already rendered to safe HTML.
type Thread struct {
	Id        string
	Board     string
	HTML      template.HTML
	CreatedOn time.Time
	BumpedOn  time.Time
	Replies   []Reply
}

type Reply struct {
	Id        string
	HTML      template.HTML
	CreatedOn time.Time
}

type BoardPage struct {
	Title   string
	Board   string
	Threads []Thread
}

type ThreadPage struct {
	Title  string
	Thread Thread
}

// replyData is what the "reply" partial needs to build its forms.
type replyData struct {
	Board    string
	ThreadId string
	Reply    Reply
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04:05 UTC")
	},
	"replyData": func(thread Thread, reply Reply) replyData {
		return replyData{Board: thread.Board, ThreadId: thread.Id, Reply: reply}
	},
}

type Pages struct {
	tmpl *template.Template
}

func Parse() (*Pages, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(files, "*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{tmpl: tmpl}, nil
}

func (p *Pages) Board(w io.Writer, page BoardPage) error {
	return p.tmpl.ExecuteTemplate(w, "board", page)
}

func (p *Pages) Thread(w io.Writer, page ThreadPage) error {
	return p.tmpl.ExecuteTemplate(w, "thread", page)
}
