package actions

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
)

// ms converts a duration to the millisecond float playwright expects
func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// describe - returns a printable name for a locator
func describe(l playwright.Locator) string {
	if l == nil {
		return "<nil locator>"
	}
	if s, ok := l.(fmt.Stringer); ok {
		return s.String()
	}
	return "locator"
}

func selectorState(s entities.WaitState) *playwright.WaitForSelectorState {
	switch s {
	case entities.WaitStateHidden:
		return playwright.WaitForSelectorStateHidden
	case entities.WaitStateAttached:
		return playwright.WaitForSelectorStateAttached
	case entities.WaitStateDetached:
		return playwright.WaitForSelectorStateDetached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

func orStandardLogger(logger *logrus.Logger) *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}
