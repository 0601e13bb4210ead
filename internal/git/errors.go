package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitMissing means the git executable could not be found on PATH.
var ErrGitMissing = errors.New("git executable not found in PATH")

// NotARepositoryError is returned when branch listing exits non-zero,
// most commonly because the working directory is not inside a work tree.
// Stderr holds git's own diagnostic verbatim.
type NotARepositoryError struct {
	Stderr string
}

func (e *NotARepositoryError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "git branch listing failed"
	}
	return msg
}

// ParseError is returned when a listing line cannot be turned into a
// branch record. Git's output format is stable, so hitting this means
// something unexpected is between us and git.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable branch listing line: %q", e.Line)
}

// CheckoutError is returned when the checkout subprocess exits non-zero,
// e.g. uncommitted changes blocking the switch.
type CheckoutError struct {
	Branch string
	Stderr string
}

func (e *CheckoutError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("checkout of %s failed", e.Branch)
	}
	return fmt.Sprintf("checkout of %s failed: %s", e.Branch, msg)
}
