package utils

import (
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/itchan-dev/msgboard/shared/errors"
)

const maxBoardNameLength = 100

// BoardNameValidator accepts any board a URL path segment can carry.
type BoardNameValidator struct{}

func (v *BoardNameValidator) Name(name string) error {
	if name == "" {
		return &errors.ErrorWithStatusCode{Message: "Board name is required", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(name) > maxBoardNameLength {
		return &errors.ErrorWithStatusCode{Message: "Board name is too long", StatusCode: http.StatusBadRequest}
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) {
			return &errors.ErrorWithStatusCode{Message: "Board name can't contain '/' or control characters", StatusCode: http.StatusBadRequest}
		}
	}
	return nil
}

// TextValidator checks thread and reply bodies. Whitespace is text.
type TextValidator struct {
	MaxLength int // in runes
}

func (v *TextValidator) Text(text string) error {
	if text == "" {
		return &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(text) > v.MaxLength {
		return &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// NewId returns a fresh opaque identifier for threads and replies.
func NewId() string {
	return uuid.NewString()
}

// IsId reports whether s could have been produced by NewId.
func IsId(s string) bool {
	return uuid.Validate(s) == nil
}
