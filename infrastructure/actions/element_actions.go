package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

const (
	clickRetryAttempts = 3
	clickRetryDelay    = time.Second
	defaultTypeDelay   = 100 * time.Millisecond
)

// ClickOptions tunes ElementActions.Click
type ClickOptions struct {
	Force   bool
	Timeout time.Duration
	// Retry allows up to three attempts, one second apart.
	Retry bool
}

// FillOptions tunes ElementActions.Fill
type FillOptions struct {
	Clear   bool
	Timeout time.Duration
}

// ElementActions performs single user-facing interactions against a
// locator. Locators are passed per call and never cached.
type ElementActions struct {
	page     interfaces.Page
	timeouts entities.Timeouts
	logger   *logrus.Logger
}

// NewElementActions - creates element actions bound to a page
func NewElementActions(page interfaces.Page, timeouts entities.Timeouts, logger *logrus.Logger) *ElementActions {
	return &ElementActions{
		page:     page,
		timeouts: timeouts.WithDefaults(),
		logger:   orStandardLogger(logger),
	}
}

// Click - clicks an element, optionally retrying. The error of the final
// attempt is the one returned.
func (a *ElementActions) Click(ctx context.Context, locator playwright.Locator, opts ...ClickOptions) error {
	var o ClickOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	timeout := entities.Pick(a.timeouts.Medium, o.Timeout)

	attempts := 1
	if o.Retry {
		attempts = clickRetryAttempts
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = locator.Click(playwright.LocatorClickOptions{
			Force:   playwright.Bool(o.Force),
			Timeout: ms(timeout),
		})
		if err == nil {
			return nil
		}
		if attempt == attempts || ctx.Err() != nil {
			break
		}

		a.logger.WithFields(logrus.Fields{
			"target":  describe(locator),
			"attempt": attempt,
		}).Debugf("click failed, retrying in %s: %v", clickRetryDelay, err)
		a.page.WaitForTimeout(float64(clickRetryDelay.Milliseconds()))
	}

	return newActionError("click", locator, err)
}

// DoubleClick - double clicks an element
func (a *ElementActions) DoubleClick(locator playwright.Locator) error {
	if err := locator.Dblclick(playwright.LocatorDblclickOptions{Timeout: ms(a.timeouts.Medium)}); err != nil {
		return newActionError("double click", locator, err)
	}
	return nil
}

// Fill - sets the value of an input, clearing it first when asked
func (a *ElementActions) Fill(locator playwright.Locator, value string, opts ...FillOptions) error {
	var o FillOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	if o.Clear {
		if err := locator.Clear(); err != nil {
			return newActionError("clear", locator, err)
		}
	}

	err := locator.Fill(value, playwright.LocatorFillOptions{
		Timeout: ms(entities.Pick(a.timeouts.Medium, o.Timeout)),
	})
	if err != nil {
		return newActionError("fill", locator, err)
	}
	return nil
}

// Type - focuses the element and types text key by key
func (a *ElementActions) Type(locator playwright.Locator, text string, delay ...time.Duration) error {
	if err := locator.Click(); err != nil {
		return newActionError("focus for typing", locator, err)
	}

	err := locator.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: ms(entities.Pick(defaultTypeDelay, delay...)),
	})
	if err != nil {
		return newActionError("type", locator, err)
	}
	return nil
}

// Clear - empties an input
func (a *ElementActions) Clear(locator playwright.Locator) error {
	if err := locator.Clear(); err != nil {
		return newActionError("clear", locator, err)
	}
	return nil
}

// Select - picks dropdown options
func (a *ElementActions) Select(locator playwright.Locator, value entities.SelectValue) error {
	values, err := selectOptionValues(value)
	if err != nil {
		return newActionError("select", locator, err)
	}
	if _, err := locator.SelectOption(values); err != nil {
		return newActionError("select", locator, err)
	}
	return nil
}

// selectOptionValues resolves the tagged union; in option form value
// takes precedence over label, label over index.
func selectOptionValues(v entities.SelectValue) (playwright.SelectOptionValues, error) {
	switch v.Kind {
	case entities.SelectByValue, entities.SelectByValues:
		if len(v.Values) == 0 {
			return playwright.SelectOptionValues{}, ErrEmptySelectOption
		}
		values := append([]string(nil), v.Values...)
		return playwright.SelectOptionValues{ValuesOrLabels: &values}, nil

	case entities.SelectByOption:
		o := v.Option
		switch {
		case o.Value != "":
			return playwright.SelectOptionValues{Values: &[]string{o.Value}}, nil
		case o.Label != "":
			return playwright.SelectOptionValues{Labels: &[]string{o.Label}}, nil
		case o.Index != nil:
			return playwright.SelectOptionValues{Indexes: &[]int{*o.Index}}, nil
		}
		return playwright.SelectOptionValues{}, ErrEmptySelectOption
	}

	return playwright.SelectOptionValues{}, fmt.Errorf("unknown select kind %d", v.Kind)
}

// Check - checks a checkbox or radio unless it already is
func (a *ElementActions) Check(locator playwright.Locator) error {
	return a.setChecked(locator, true)
}

// Uncheck - unchecks a checkbox unless it already is
func (a *ElementActions) Uncheck(locator playwright.Locator) error {
	return a.setChecked(locator, false)
}

func (a *ElementActions) setChecked(locator playwright.Locator, want bool) error {
	checked, err := locator.IsChecked()
	if err != nil {
		return newActionError("read checked state", locator, err)
	}
	if checked == want {
		return nil
	}

	if want {
		err = locator.Check()
	} else {
		err = locator.Uncheck()
	}
	if err != nil {
		op := "uncheck"
		if want {
			op = "check"
		}
		return newActionError(op, locator, err)
	}
	return nil
}

// Hover - moves the pointer over an element
func (a *ElementActions) Hover(locator playwright.Locator) error {
	if err := locator.Hover(playwright.LocatorHoverOptions{Timeout: ms(a.timeouts.Medium)}); err != nil {
		return newActionError("hover", locator, err)
	}
	return nil
}

// Focus - focuses an element
func (a *ElementActions) Focus(locator playwright.Locator) error {
	if err := locator.Focus(); err != nil {
		return newActionError("focus", locator, err)
	}
	return nil
}

// Press - presses a key on the page keyboard
func (a *ElementActions) Press(key string) error {
	if err := a.page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("press %q: %w", key, err)
	}
	return nil
}

// GetText - returns the element's text content, "" when it has none
func (a *ElementActions) GetText(locator playwright.Locator) (string, error) {
	text, err := locator.TextContent()
	if err != nil {
		return "", newActionError("get text", locator, err)
	}
	return text, nil
}

// GetInnerText - returns the rendered text of an element
func (a *ElementActions) GetInnerText(locator playwright.Locator) (string, error) {
	text, err := locator.InnerText()
	if err != nil {
		return "", newActionError("get inner text", locator, err)
	}
	return text, nil
}

// GetValue - returns the value of an input
func (a *ElementActions) GetValue(locator playwright.Locator) (string, error) {
	value, err := locator.InputValue()
	if err != nil {
		return "", newActionError("get value", locator, err)
	}
	return value, nil
}

// GetAttribute - returns an attribute value, "" when absent
func (a *ElementActions) GetAttribute(locator playwright.Locator, name string) (string, error) {
	value, err := locator.GetAttribute(name)
	if err != nil {
		return "", newActionError("get attribute "+name, locator, err)
	}
	return value, nil
}

// IsVisible reports whether the element becomes visible within the
// short tier. It never fails: any error reads as not visible.
func (a *ElementActions) IsVisible(locator playwright.Locator) bool {
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(a.timeouts.Short),
	})
	return err == nil
}

// IsEnabled - reports whether an element is enabled
func (a *ElementActions) IsEnabled(locator playwright.Locator) (bool, error) {
	enabled, err := locator.IsEnabled()
	if err != nil {
		return false, newActionError("read enabled state", locator, err)
	}
	return enabled, nil
}

// IsChecked - reports whether a checkbox is checked
func (a *ElementActions) IsChecked(locator playwright.Locator) (bool, error) {
	checked, err := locator.IsChecked()
	if err != nil {
		return false, newActionError("read checked state", locator, err)
	}
	return checked, nil
}

// WaitForVisible - waits until the element is visible
func (a *ElementActions) WaitForVisible(locator playwright.Locator, timeout ...time.Duration) error {
	return a.waitFor(locator, entities.WaitStateVisible, entities.Pick(a.timeouts.Medium, timeout...))
}

// WaitForHidden - waits until the element is hidden or gone
func (a *ElementActions) WaitForHidden(locator playwright.Locator, timeout ...time.Duration) error {
	return a.waitFor(locator, entities.WaitStateHidden, entities.Pick(a.timeouts.Medium, timeout...))
}

func (a *ElementActions) waitFor(locator playwright.Locator, state entities.WaitState, timeout time.Duration) error {
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   selectorState(state),
		Timeout: ms(timeout),
	})
	if err != nil {
		return newActionError("wait for "+string(state), locator, err)
	}
	return nil
}

// ScrollIntoView - scrolls the element into the viewport if needed
func (a *ElementActions) ScrollIntoView(locator playwright.Locator) error {
	if err := locator.ScrollIntoViewIfNeeded(); err != nil {
		return newActionError("scroll into view", locator, err)
	}
	return nil
}

// UploadFile - sets the files of a file input
func (a *ElementActions) UploadFile(locator playwright.Locator, paths ...string) error {
	if len(paths) == 0 {
		return newActionError("upload", locator, fmt.Errorf("no files given"))
	}
	if err := locator.SetInputFiles(paths); err != nil {
		return newActionError("upload", locator, err)
	}
	return nil
}

// DragAndDrop - drags source onto target
func (a *ElementActions) DragAndDrop(source, target playwright.Locator) error {
	if err := source.DragTo(target); err != nil {
		return newActionError("drag to "+describe(target), source, err)
	}
	return nil
}
