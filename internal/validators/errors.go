package validators

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel validation errors. Callers match against them with [errors.Is];
// the HTTP boundary maps all of them to 400 Bad Request.
var (
	ErrMissingFirstName = errors.New("missing first name")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrPasswordTooWeak  = errors.New("password is too weak")
)

// WeakPasswordError carries the structured feedback produced when a
// password is rejected: a warning plus ranked suggestions. It matches
// [ErrPasswordTooWeak] under [errors.Is].
type WeakPasswordError struct {
	Warning     string
	Suggestions []string
}

func (e *WeakPasswordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrPasswordTooWeak.Error(), e.Warning)
	for _, s := range e.Suggestions {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

func (e *WeakPasswordError) Is(target error) bool {
	return target == ErrPasswordTooWeak
}
