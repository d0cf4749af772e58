// Package pages holds the page objects of the application under test.
// Page objects own locators and express user intent; all interaction
// goes through the resilient action layer.
package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/actions"
	"signup_e2e/infrastructure/browser"
	"signup_e2e/infrastructure/config"
)

// BasePage carries what every page object needs: the page handle, the
// environment and the action layer bound to that page.
type BasePage struct {
	page     interfaces.BrowserPage
	env      *config.Environment
	elements *actions.ElementActions
	waits    *actions.WaitActions
	logger   *logrus.Logger
}

// NewBasePage - binds the action layer to page
func NewBasePage(page interfaces.BrowserPage, env *config.Environment, logger *logrus.Logger) *BasePage {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BasePage{
		page:     page,
		env:      env,
		elements: actions.NewElementActions(page, env.Tiers, logger),
		waits:    actions.NewWaitActions(page, env.Tiers, logger),
		logger:   logger,
	}
}

// Elements - returns the element actions bound to this page
func (b *BasePage) Elements() *actions.ElementActions {
	return b.elements
}

// Waits - returns the wait actions bound to this page
func (b *BasePage) Waits() *actions.WaitActions {
	return b.waits
}

// NavigateTo - opens path (relative to the base URL) and waits for the
// page to settle
func (b *BasePage) NavigateTo(ctx context.Context, path string) error {
	fullURL := b.env.ResolveURL(path)
	b.logger.Debugf("Navigating to: %s", fullURL)

	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if b.env.Timeout.Navigation > 0 {
		opts.Timeout = playwright.Float(float64(b.env.Timeout.Navigation.Milliseconds()))
	}
	if _, err := b.page.Goto(fullURL, opts); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", fullURL, err)
	}

	return b.waits.WaitForPageReady(ctx)
}

// Click - waits for the element to be visible, then clicks it
func (b *BasePage) Click(ctx context.Context, locator playwright.Locator) error {
	if err := b.elements.WaitForVisible(locator); err != nil {
		return err
	}
	return b.elements.Click(ctx, locator)
}

// Fill - waits for the input to be visible, then replaces its value
func (b *BasePage) Fill(locator playwright.Locator, text string) error {
	if err := b.elements.WaitForVisible(locator); err != nil {
		return err
	}
	return b.elements.Fill(locator, text, actions.FillOptions{Clear: true})
}

// SelectOption - waits for the dropdown to be visible, then selects value
func (b *BasePage) SelectOption(locator playwright.Locator, value string) error {
	if err := b.elements.WaitForVisible(locator); err != nil {
		return err
	}
	return b.elements.Select(locator, entities.ByValue(value))
}

// Check - waits for the checkbox to be visible, then checks it
func (b *BasePage) Check(locator playwright.Locator) error {
	if err := b.elements.WaitForVisible(locator); err != nil {
		return err
	}
	return b.elements.Check(locator)
}

// Uncheck - waits for the checkbox to be visible, then unchecks it
func (b *BasePage) Uncheck(locator playwright.Locator) error {
	if err := b.elements.WaitForVisible(locator); err != nil {
		return err
	}
	return b.elements.Uncheck(locator)
}

// Title - returns the page title
func (b *BasePage) Title() (string, error) {
	return b.page.Title()
}

// CurrentURL - returns the current page URL
func (b *BasePage) CurrentURL() string {
	return b.page.URL()
}

// IsOnPage - reports whether the current URL contains path
func (b *BasePage) IsOnPage(path string) bool {
	return strings.Contains(b.CurrentURL(), path)
}

// Reload - reloads the page and waits for it to settle
func (b *BasePage) Reload(ctx context.Context) error {
	if _, err := b.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return b.waits.WaitForPageReady(ctx)
}

// GoBack - goes back one history entry and waits for the page to settle
func (b *BasePage) GoBack(ctx context.Context) error {
	if _, err := b.page.GoBack(playwright.PageGoBackOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return b.waits.WaitForPageReady(ctx)
}

// TakeScreenshot - saves a full-page screenshot under the results dir
// and returns its path
func (b *BasePage) TakeScreenshot(name string) (string, error) {
	path := browser.ScreenshotPath(b.env.ResultsDir, name)
	if _, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot %s: %w", name, err)
	}
	return path, nil
}

// isVisibleWithin - reports visibility without failing; the wait is
// bounded by timeout, MEDIUM when omitted
func (b *BasePage) isVisibleWithin(locator playwright.Locator, timeout ...time.Duration) bool {
	return b.elements.WaitForVisible(locator, timeout...) == nil
}
