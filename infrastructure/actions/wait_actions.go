package actions

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

const (
	submissionFallback    = time.Second
	conditionPollInterval = 100 * time.Millisecond
)

// WaitActions blocks the caller until an observable page condition
// holds, or fails once the bound runs out.
type WaitActions struct {
	page     interfaces.Page
	timeouts entities.Timeouts
	logger   *logrus.Logger
}

// NewWaitActions - creates wait actions bound to a page
func NewWaitActions(page interfaces.Page, timeouts entities.Timeouts, logger *logrus.Logger) *WaitActions {
	return &WaitActions{
		page:     page,
		timeouts: timeouts.WithDefaults(),
		logger:   orStandardLogger(logger),
	}
}

// WaitForNavigation - waits for the network to go idle
func (w *WaitActions) WaitForNavigation() error {
	return w.loadState("network idle", playwright.LoadStateNetworkidle, w.timeouts.Long)
}

// WaitForURL waits until the page URL matches pattern, which may be a
// glob string, a *regexp.Regexp or a func(string) bool.
func (w *WaitActions) WaitForURL(pattern interface{}, timeout ...time.Duration) error {
	limit := entities.Pick(w.timeouts.Long, timeout...)
	err := w.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout:   ms(limit),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return &WaitError{Condition: "url", Limit: limit, Err: err}
	}
	return nil
}

// WaitForButtonSubmission follows a submit button through its loading
// state. It first waits for a button labelled loadingText (buttonText
// when empty) to show, then returns on whichever comes first: that
// button going away or buttonText coming back. When neither phase can be
// observed it pauses for one second and reports WaitDegraded. The race
// is first-success: a signal that fails early does not end it, the other
// signal still gets its full MEDIUM window. The only error is ctx
// cancellation.
func (w *WaitActions) WaitForButtonSubmission(ctx context.Context, button playwright.Locator, buttonText, loadingText string) (entities.WaitOutcome, error) {
	if loadingText == "" {
		loadingText = buttonText
	}
	log := w.logger.WithFields(logrus.Fields{
		"button":  describe(button),
		"loading": loadingText,
	})

	loadingButton := w.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: loadingText})
	err := loadingButton.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(w.timeouts.Short),
	})
	if err != nil {
		log.Debugf("loading state not observed: %v", err)
		return w.degrade(ctx)
	}

	idleButton := w.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: buttonText})
	done := make(chan error, 2)
	go func() {
		done <- loadingButton.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateHidden,
			Timeout: ms(w.timeouts.Medium),
		})
	}()
	go func() {
		done <- idleButton.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: ms(w.timeouts.Medium),
		})
	}()

	var errs []error
	for len(errs) < 2 {
		select {
		case err := <-done:
			if err == nil {
				return entities.WaitConfirmed, nil
			}
			errs = append(errs, err)
		case <-ctx.Done():
			return entities.WaitDegraded, ctx.Err()
		}
	}

	log.Debugf("submission completion not observed: %v", errors.Join(errs...))
	return w.degrade(ctx)
}

func (w *WaitActions) degrade(ctx context.Context) (entities.WaitOutcome, error) {
	if err := ctx.Err(); err != nil {
		return entities.WaitDegraded, err
	}
	w.page.WaitForTimeout(float64(submissionFallback.Milliseconds()))
	return entities.WaitDegraded, nil
}

// WaitForElementCount waits for the first match to appear and then
// requires exactly count matches. A mismatch is not retried.
func (w *WaitActions) WaitForElementCount(locator playwright.Locator, count int, timeout ...time.Duration) error {
	err := locator.First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: ms(entities.Pick(w.timeouts.Medium, timeout...)),
	})
	if err != nil {
		return newActionError("wait for first match", locator, err)
	}

	actual, err := locator.Count()
	if err != nil {
		return newActionError("count", locator, err)
	}
	if actual != count {
		return &CountMismatchError{Target: describe(locator), Expected: count, Actual: actual}
	}
	return nil
}

// WaitForText - waits for text to become visible
func (w *WaitActions) WaitForText(text string, timeout ...time.Duration) error {
	return w.WaitForElement(w.page.GetByText(text), entities.WaitStateVisible, timeout...)
}

// WaitForTextToDisappear - waits for text to be hidden or removed
func (w *WaitActions) WaitForTextToDisappear(text string, timeout ...time.Duration) error {
	return w.WaitForElement(w.page.GetByText(text), entities.WaitStateHidden, timeout...)
}

// WaitForElement - waits for a locator to reach state
func (w *WaitActions) WaitForElement(locator playwright.Locator, state entities.WaitState, timeout ...time.Duration) error {
	if !state.Valid() {
		return newActionError("wait for "+string(state), locator, ErrUnknownWaitState)
	}
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   selectorState(state),
		Timeout: ms(entities.Pick(w.timeouts.Medium, timeout...)),
	})
	if err != nil {
		return newActionError("wait for "+string(state), locator, err)
	}
	return nil
}

// Wait - sleeps unconditionally
func (w *WaitActions) Wait(d time.Duration) {
	w.page.WaitForTimeout(float64(d.Milliseconds()))
}

// WaitForSelector - waits for a CSS selector to be visible
func (w *WaitActions) WaitForSelector(selector string, timeout ...time.Duration) error {
	limit := entities.Pick(w.timeouts.Medium, timeout...)
	_, err := w.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(limit),
	})
	if err != nil {
		return &WaitError{Condition: "selector " + selector, Limit: limit, Err: err}
	}
	return nil
}

// WaitForFunction - polls an in-page expression until it is truthy
func (w *WaitActions) WaitForFunction(expression string, timeout ...time.Duration) error {
	limit := entities.Pick(w.timeouts.Medium, timeout...)
	_, err := w.page.WaitForFunction(expression, nil, playwright.PageWaitForFunctionOptions{
		Timeout: ms(limit),
	})
	if err != nil {
		return &WaitError{Condition: "function", Limit: limit, Err: err}
	}
	return nil
}

// WaitForCondition polls predicate every 100ms until it returns true.
// A predicate error stops the wait immediately.
func (w *WaitActions) WaitForCondition(ctx context.Context, predicate func(context.Context) (bool, error), timeout ...time.Duration) error {
	limit := entities.Pick(w.timeouts.Medium, timeout...)
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	ticker := time.NewTicker(conditionPollInterval)
	defer ticker.Stop()

	for {
		ok, err := predicate(ctx)
		if err != nil {
			return &WaitError{Condition: "condition", Limit: limit, Err: err}
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return &WaitError{Condition: "condition", Limit: limit, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// WaitForPageReady waits for both DOM content loaded and network idle.
func (w *WaitActions) WaitForPageReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return w.loadState("dom content loaded", playwright.LoadStateDomcontentloaded, 0)
	})
	g.Go(func() error {
		return w.loadState("network idle", playwright.LoadStateNetworkidle, w.timeouts.Medium)
	})
	return g.Wait()
}

// loadState waits for a load state; a zero limit keeps the page default.
func (w *WaitActions) loadState(name string, state *playwright.LoadState, limit time.Duration) error {
	opts := playwright.PageWaitForLoadStateOptions{State: state}
	if limit > 0 {
		opts.Timeout = ms(limit)
	}
	if err := w.page.WaitForLoadState(opts); err != nil {
		return &WaitError{Condition: name, Limit: limit, Err: err}
	}
	return nil
}
