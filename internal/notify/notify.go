// Package notify decides which messages reach the operator and formats them.
package notify

import (
	"errors"
	"fmt"
)

// ShouldSend reports whether candidate differs from the last message sent.
func ShouldSend(candidate, last string) bool {
	return candidate != last
}

type stabler interface {
	Stable() string
}

// FormatFailure formats a cycle failure for the operator.
// Errors that carry a stable summary are reported by it alone, so the text
// stays identical while the underlying condition does.
func FormatFailure(err error) string {
	var s stabler
	if errors.As(err, &s) {
		return fmt.Sprintf("Program failure: %s", s.Stable())
	}
	return fmt.Sprintf("Program failure: %v", err)
}
