package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/repositories"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrFreetNotFound      = errors.New("freet not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the session user does not own the resource
	ErrForbidden = errors.New("forbidden")
)

// notFoundAs rewraps a repository miss (or a malformed ID) as the domain
// error target. Other errors pass through.
func notFoundAs(err error, target error) error {
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return fmt.Errorf("%v: %w", err, target)
	}
	return err
}
