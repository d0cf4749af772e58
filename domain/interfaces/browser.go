package interfaces

import "github.com/playwright-community/playwright-go"

// Page is the part of a playwright page the action layer consumes.
// playwright.Page satisfies it.
type Page interface {
	// GetByRole finds elements by ARIA role and accessible name
	GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator

	// GetByText finds elements by their text content
	GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator

	// Keyboard returns the page keyboard
	Keyboard() playwright.Keyboard

	// WaitForLoadState waits for a page load signal
	WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error

	// WaitForURL waits until the page URL matches
	WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error

	// WaitForTimeout sleeps for the given milliseconds
	WaitForTimeout(timeout float64)

	// WaitForFunction polls an in-page expression until it is truthy
	WaitForFunction(expression string, arg interface{}, options ...playwright.PageWaitForFunctionOptions) (playwright.JSHandle, error)

	// WaitForSelector waits for a CSS selector to reach a state
	WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error)
}

// BrowserPage is the page surface used by page objects
type BrowserPage interface {
	Page

	// Goto navigates to a URL
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)

	// Reload reloads the current page
	Reload(options ...playwright.PageReloadOptions) (playwright.Response, error)

	// GoBack navigates to the previous history entry
	GoBack(options ...playwright.PageGoBackOptions) (playwright.Response, error)

	// Title returns the page title
	Title() (string, error)

	// URL returns the current page URL
	URL() string

	// Locator finds elements by selector
	Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator

	// Screenshot takes a screenshot
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
}
