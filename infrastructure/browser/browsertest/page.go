package browsertest

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Page is a scripted page. Lookups return the registered locator for a
// query, creating a hidden one on first use so tests can inspect it.
type Page struct {
	playwright.Page

	mu sync.Mutex

	CurrentURL string
	PageTitle  string
	locators   map[string]*Locator

	// LoadStateErrs fail WaitForLoadState for a state name.
	LoadStateErrs map[string]error
	URLErr        error
	GotoErr       error
	FunctionErr   error
	SelectorErr   error
	// NavigateTo, when set, becomes CurrentURL after a successful WaitForURL.
	NavigateTo string

	Sleeps      []float64
	LoadStates  []string
	LoadLimits  []float64
	URLWaits    []interface{}
	URLLimits   []float64
	Gotos       []string
	Keys        []string
	Functions   []string
	FuncLimits  []float64
	Selectors   []string
	SelLimits   []float64
	Screenshots []string
	Reloads     int
	Backs       int
}

// NewPage - creates an empty fake page
func NewPage() *Page {
	return &Page{locators: make(map[string]*Locator)}
}

// RoleKey is the lookup key of GetByRole
func RoleKey(role, name string) string {
	return fmt.Sprintf("role=%s[name=%q]", role, name)
}

// TextKey is the lookup key of GetByText
func TextKey(text string) string {
	return fmt.Sprintf("text=%q", text)
}

// Register - binds a locator to a lookup key
func (p *Page) Register(key string, l *Locator) *Locator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locators[key] = l
	return l
}

// Lookup - returns the locator bound to key, creating a hidden one
func (p *Page) Lookup(key string) *Locator {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.locators[key]; ok {
		return l
	}
	l := &Locator{Name: key}
	p.locators[key] = l
	return l
}

func (p *Page) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	name := ""
	if len(options) > 0 && options[0].Name != nil {
		name = fmt.Sprint(options[0].Name)
	}
	return p.Lookup(RoleKey(string(role), name))
}

func (p *Page) GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator {
	return p.Lookup(TextKey(fmt.Sprint(text)))
}

func (p *Page) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return p.Lookup(selector)
}

func (p *Page) Keyboard() playwright.Keyboard {
	return &keyboard{page: p}
}

func (p *Page) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	state := "load"
	var limit float64
	if len(options) > 0 {
		if options[0].State != nil {
			state = string(*options[0].State)
		}
		if options[0].Timeout != nil {
			limit = *options[0].Timeout
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LoadStates = append(p.LoadStates, state)
	p.LoadLimits = append(p.LoadLimits, limit)
	return p.LoadStateErrs[state]
}

func (p *Page) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.URLWaits = append(p.URLWaits, url)
	if len(options) > 0 {
		p.URLLimits = append(p.URLLimits, limit(options[0].Timeout))
	}
	if p.URLErr != nil {
		return p.URLErr
	}
	if p.NavigateTo != "" {
		p.CurrentURL = p.NavigateTo
	}
	return nil
}

func (p *Page) WaitForTimeout(timeout float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sleeps = append(p.Sleeps, timeout)
}

func (p *Page) WaitForFunction(expression string, arg interface{}, options ...playwright.PageWaitForFunctionOptions) (playwright.JSHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Functions = append(p.Functions, expression)
	if len(options) > 0 {
		p.FuncLimits = append(p.FuncLimits, limit(options[0].Timeout))
	}
	return nil, p.FunctionErr
}

func (p *Page) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Selectors = append(p.Selectors, selector)
	if len(options) > 0 {
		p.SelLimits = append(p.SelLimits, limit(options[0].Timeout))
	}
	return nil, p.SelectorErr
}

func (p *Page) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Gotos = append(p.Gotos, url)
	if p.GotoErr != nil {
		return nil, p.GotoErr
	}
	p.CurrentURL = url
	return nil, nil
}

func (p *Page) Reload(options ...playwright.PageReloadOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Reloads++
	return nil, nil
}

func (p *Page) GoBack(options ...playwright.PageGoBackOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Backs++
	return nil, nil
}

func (p *Page) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.PageTitle, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CurrentURL
}

func (p *Page) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	path := ""
	if len(options) > 0 && options[0].Path != nil {
		path = *options[0].Path
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Screenshots = append(p.Screenshots, path)
	return []byte("png"), nil
}

// limit is 0 for an unset timeout, i.e. the page default
func limit(timeout *float64) float64 {
	if timeout == nil {
		return 0
	}
	return *timeout
}

// SleepCount - returns the number of WaitForTimeout calls
func (p *Page) SleepCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sleeps)
}

type keyboard struct {
	playwright.Keyboard
	page *Page
}

func (k *keyboard) Press(key string, options ...playwright.KeyboardPressOptions) error {
	k.page.mu.Lock()
	defer k.page.mu.Unlock()
	k.page.Keys = append(k.page.Keys, key)
	return nil
}
