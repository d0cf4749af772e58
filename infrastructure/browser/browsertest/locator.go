// Package browsertest provides in-memory stand-ins for playwright pages
// and locators. Methods that are not overridden panic through the nil
// embedded interface, so a test touching them fails loudly.
package browsertest

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// TimeoutError - builds an error matching playwright.ErrTimeout
func TimeoutError(what string) error {
	return fmt.Errorf("%w: %s", playwright.ErrTimeout, what)
}

// WaitHook decides the result of a WaitFor call for one state
type WaitHook func(timeout float64) error

// pwLocator lets Locator embed playwright.Locator without the embedded
// field name shadowing the interface's Locator method.
type pwLocator = playwright.Locator

// Locator is a scripted playwright.Locator
type Locator struct {
	pwLocator

	mu sync.Mutex

	Name    string
	Visible bool
	Checked bool
	Enabled bool
	Value   string
	Text    string
	Inner   string
	Matches int
	Attrs   map[string]string
	Texts   []string

	// ClickErrs scripts consecutive click results; the last entry repeats.
	ClickErrs []error
	// Errs makes the named operation fail, e.g. "fill" or "check".
	Errs map[string]error
	// WaitHooks override WaitFor per state.
	WaitHooks map[playwright.WaitForSelectorState]WaitHook

	Calls     []string
	Clicks    []playwright.LocatorClickOptions
	Filled    []string
	Typed     []string
	TypeDelay float64
	Selected  []playwright.SelectOptionValues
	Files     interface{}
	DroppedOn playwright.Locator
	Waits     []playwright.WaitForSelectorState
	// WaitLimits holds the timeout of each WaitFor call, in ms.
	WaitLimits []float64
	Children   []*Locator
}

// NewLocator - creates a visible, enabled locator
func NewLocator(name string) *Locator {
	return &Locator{Name: name, Visible: true, Enabled: true, Matches: 1}
}

func (l *Locator) String() string {
	return l.Name
}

func (l *Locator) record(op string) error {
	l.Calls = append(l.Calls, op)
	if l.Errs != nil {
		return l.Errs[op]
	}
	return nil
}

// Limits - returns the timeouts passed to WaitFor so far
func (l *Locator) Limits() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]float64(nil), l.WaitLimits...)
}

// CallCount - returns how often op was invoked
func (l *Locator) CallCount(op string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (l *Locator) Click(options ...playwright.LocatorClickOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls = append(l.Calls, "click")
	if len(options) > 0 {
		l.Clicks = append(l.Clicks, options[0])
	} else {
		l.Clicks = append(l.Clicks, playwright.LocatorClickOptions{})
	}
	if len(l.ClickErrs) == 0 {
		return nil
	}
	i := len(l.Clicks) - 1
	if i >= len(l.ClickErrs) {
		i = len(l.ClickErrs) - 1
	}
	return l.ClickErrs[i]
}

func (l *Locator) Dblclick(options ...playwright.LocatorDblclickOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record("dblclick")
}

func (l *Locator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("fill"); err != nil {
		return err
	}
	l.Filled = append(l.Filled, value)
	l.Value = value
	return nil
}

func (l *Locator) Clear(options ...playwright.LocatorClearOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("clear"); err != nil {
		return err
	}
	l.Value = ""
	return nil
}

func (l *Locator) PressSequentially(text string, options ...playwright.LocatorPressSequentiallyOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("type"); err != nil {
		return err
	}
	l.Typed = append(l.Typed, text)
	if len(options) > 0 && options[0].Delay != nil {
		l.TypeDelay = *options[0].Delay
	}
	return nil
}

func (l *Locator) SelectOption(values playwright.SelectOptionValues, options ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("select"); err != nil {
		return nil, err
	}
	l.Selected = append(l.Selected, values)
	return nil, nil
}

func (l *Locator) IsChecked(options ...playwright.LocatorIsCheckedOptions) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("is_checked"); err != nil {
		return false, err
	}
	return l.Checked, nil
}

func (l *Locator) Check(options ...playwright.LocatorCheckOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("check"); err != nil {
		return err
	}
	l.Checked = true
	return nil
}

func (l *Locator) Uncheck(options ...playwright.LocatorUncheckOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("uncheck"); err != nil {
		return err
	}
	l.Checked = false
	return nil
}

func (l *Locator) IsEnabled(options ...playwright.LocatorIsEnabledOptions) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("is_enabled"); err != nil {
		return false, err
	}
	return l.Enabled, nil
}

func (l *Locator) Hover(options ...playwright.LocatorHoverOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record("hover")
}

func (l *Locator) Focus(options ...playwright.LocatorFocusOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record("focus")
}

func (l *Locator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("text_content"); err != nil {
		return "", err
	}
	return l.Text, nil
}

func (l *Locator) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("inner_text"); err != nil {
		return "", err
	}
	return l.Inner, nil
}

func (l *Locator) AllInnerTexts() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("all_inner_texts"); err != nil {
		return nil, err
	}
	return append([]string(nil), l.Texts...), nil
}

func (l *Locator) InputValue(options ...playwright.LocatorInputValueOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("input_value"); err != nil {
		return "", err
	}
	return l.Value, nil
}

func (l *Locator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("get_attribute"); err != nil {
		return "", err
	}
	return l.Attrs[name], nil
}

func (l *Locator) ScrollIntoViewIfNeeded(options ...playwright.LocatorScrollIntoViewIfNeededOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record("scroll")
}

func (l *Locator) SetInputFiles(files interface{}, options ...playwright.LocatorSetInputFilesOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("upload"); err != nil {
		return err
	}
	l.Files = files
	return nil
}

func (l *Locator) DragTo(target playwright.Locator, options ...playwright.LocatorDragToOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("drag"); err != nil {
		return err
	}
	l.DroppedOn = target
	return nil
}

func (l *Locator) Count() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.record("count"); err != nil {
		return 0, err
	}
	return l.Matches, nil
}

func (l *Locator) First() playwright.Locator {
	return l.Nth(0)
}

func (l *Locator) Nth(index int) playwright.Locator {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < len(l.Children) {
		return l.Children[index]
	}
	return l
}

func (l *Locator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	state := playwright.WaitForSelectorState("visible")
	var timeout float64
	if len(options) > 0 {
		if options[0].State != nil {
			state = *options[0].State
		}
		if options[0].Timeout != nil {
			timeout = *options[0].Timeout
		}
	}

	l.mu.Lock()
	l.Calls = append(l.Calls, "wait_"+string(state))
	l.Waits = append(l.Waits, state)
	l.WaitLimits = append(l.WaitLimits, timeout)
	hook := l.WaitHooks[state]
	visible := l.Visible
	l.mu.Unlock()

	// hooks may block, so they run unlocked
	if hook != nil {
		return hook(timeout)
	}

	switch state {
	case "visible", "attached":
		if visible {
			return nil
		}
	case "hidden", "detached":
		if !visible {
			return nil
		}
	}
	return TimeoutError(fmt.Sprintf("%s did not become %s within %.0fms", l.Name, state, timeout))
}

// After - returns a hook that waits d and then returns err
func After(d time.Duration, err error) WaitHook {
	return func(float64) error {
		time.Sleep(d)
		return err
	}
}

// Fail - returns a hook that fails immediately with a timeout
func Fail(what string) WaitHook {
	return func(float64) error {
		return TimeoutError(what)
	}
}
