// Package fault separates expected, user-facing failures from internal ones.
// A UserError carries a reason meant to be shown verbatim in the channel;
// anything else aborts the surrounding transaction and is logged instead.
package fault

import (
	"errors"
	"fmt"
)

type UserError string

func (e UserError) Error() string { return string(e) }

// User builds a user-facing failure.
func User(format string, args ...interface{}) error {
	return UserError(fmt.Sprintf(format, args...))
}

// IsUser reports whether err (or anything it wraps) is user-facing.
func IsUser(err error) bool {
	var ue UserError
	return errors.As(err, &ue)
}

// Collapse turns a (message, error) pair into a single line for the channel:
// the success message, the user-facing reason, or a generic fallback.
func Collapse(msg string, err error, fallback string) string {
	if err == nil {
		return msg
	}
	if IsUser(err) {
		return err.Error()
	}
	return fallback
}
