package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/infrastructure/config"
)

// Session owns one playwright driver, browser and context. Every test or
// CLI run gets its own session, so pages never share state.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	env     *config.Environment
	logger  *logrus.Logger

	pagesMutex sync.Mutex
	pages      []playwright.Page
}

// Install - downloads the chromium build playwright drives
func Install(logger *logrus.Logger) error {
	logger.Info("Installing playwright driver and chromium")
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// NewSession - starts playwright and opens a page configured from env
func NewSession(env *config.Environment, logger *logrus.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(env.Headless),
		SlowMo:   playwright.Float(float64(env.SlowMo.Milliseconds())),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	}

	if env.StorageStatePath != "" {
		if state, err := readStorageState(env.StorageStatePath); err == nil {
			contextOptions.StorageState = state.ToOptionalStorageState()
			logger.Debugf("Reusing storage state from %s", env.StorageStatePath)
		} else if !os.IsNotExist(err) {
			logger.Warnf("Ignoring unreadable storage state %s: %v", env.StorageStatePath, err)
		}
	}

	bctx, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(env.Timeout.Default.Milliseconds()))
	bctx.SetDefaultNavigationTimeout(float64(env.Timeout.Navigation.Milliseconds()))

	s := &Session{
		pw:      pw,
		browser: browser,
		context: bctx,
		env:     env,
		logger:  logger,
	}

	page, err := s.NewPage()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.page = page

	return s, nil
}

func readStorageState(path string) (*playwright.StorageState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state playwright.StorageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Page - returns the session's first page
func (s *Session) Page() playwright.Page {
	return s.page
}

// NewPage - opens another page in the session's context
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		s.logger.Debugf("Accepting %s dialog: %s", dialog.Type(), dialog.Message())
		dialog.Accept()
	})

	s.pagesMutex.Lock()
	s.pages = append(s.pages, page)
	s.pagesMutex.Unlock()

	page.OnClose(func(closedPage playwright.Page) {
		s.pagesMutex.Lock()
		defer s.pagesMutex.Unlock()

		for i, p := range s.pages {
			if p == closedPage {
				s.pages = append(s.pages[:i], s.pages[i+1:]...)
				break
			}
		}
	})

	return page, nil
}

// PageCount - returns the number of open pages
func (s *Session) PageCount() int {
	s.pagesMutex.Lock()
	defer s.pagesMutex.Unlock()
	return len(s.pages)
}

// ScreenshotPath - returns where a named screenshot is written
func ScreenshotPath(resultsDir, name string) string {
	return filepath.Join(resultsDir, "screenshots", name+".png")
}

// SaveStorageState - writes cookies and local storage to path
func (s *Session) SaveStorageState(path string) error {
	if s.context == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if _, err := s.context.StorageState(path); err != nil {
		if isClosedErr(err) {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// Close - closes context, browser and driver
func (s *Session) Close() error {
	var closeErr error

	if s.context != nil {
		if err := s.context.Close(); err != nil && !isClosedErr(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		s.context = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !isClosedErr(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		s.pw = nil
	}

	return closeErr
}

// isClosedErr - reports errors caused by an already closed target
func isClosedErr(err error) bool {
	if errors.Is(err, playwright.ErrTargetClosed) {
		return true
	}
	return strings.Contains(err.Error(), "Target page, context or browser has been closed")
}
