package service

import (
	"errors"
	"fmt"
	"net/http"

	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns delete passwords into their stored form and checks
// supplied passwords against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, supplied string) bool
}

// PlainPasswords stores passwords as given and compares them with exact,
// case-sensitive equality.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswords) Matches(stored, supplied string) bool {
	return stored == supplied
}

// BcryptPasswords stores bcrypt hashes. A supplied password matches only
// if it is exactly the one given at creation, same as PlainPasswords.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Password is too long", StatusCode: http.StatusBadRequest}
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}
