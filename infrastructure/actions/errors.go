package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrEmptySelectOption is returned by Select when an option descriptor
// carries no value, label or index.
var ErrEmptySelectOption = errors.New("select option has no value, label or index")

// ErrUnknownWaitState is returned for a WaitState outside the four known states
var ErrUnknownWaitState = errors.New("unknown wait state")

// ActionError is an interaction that could not complete: the element was
// missing, not actionable, detached, or the operation timed out.
type ActionError struct {
	Op     string
	Target string
	Err    error
}

func newActionError(op string, target playwright.Locator, err error) *ActionError {
	return &ActionError{Op: op, Target: describe(target), Err: err}
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was a playwright timeout.
func (e *ActionError) Timeout() bool {
	return errors.Is(e.Err, playwright.ErrTimeout)
}

// WaitError is a page-level condition that did not hold within Limit.
type WaitError struct {
	Condition string
	Limit     time.Duration
	Err       error
}

func (e *WaitError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("wait for %s (%s): %v", e.Condition, e.Limit, e.Err)
	}
	return fmt.Sprintf("wait for %s: %v", e.Condition, e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the wait ran out of time.
func (e *WaitError) Timeout() bool {
	return errors.Is(e.Err, playwright.ErrTimeout) || errors.Is(e.Err, context.DeadlineExceeded)
}

// CountMismatchError is returned when an element count assertion fails.
// It is never retried.
type CountMismatchError struct {
	Target   string
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d elements, but found %d (%s)", e.Expected, e.Actual, e.Target)
}
