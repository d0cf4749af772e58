package flows

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup_e2e/application/pages"
	"signup_e2e/domain/entities"
	"signup_e2e/infrastructure/browser/browsertest"
	"signup_e2e/infrastructure/config"
)

type memoryStore struct {
	mu      sync.Mutex
	results []entities.TestResult
	err     error
}

func (m *memoryStore) SaveResult(result entities.TestResult) (entities.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return result, m.err
	}
	result.RunID = "run-1"
	m.results = append(m.results, result)
	return result, nil
}

func (m *memoryStore) LoadResults() ([]entities.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entities.TestResult(nil), m.results...), nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEnv(t *testing.T) *config.Environment {
	t.Helper()
	return &config.Environment{
		Name:       config.EnvLocal,
		BaseURL:    "https://app.test",
		Tiers:      entities.DefaultTimeouts(),
		ResultsDir: t.TempDir(),
	}
}

// signupSite scripts a signup page that redirects to an account page
// showing profile
func signupSite(profile entities.UserProfile) *browsertest.Page {
	page := browsertest.NewPage()
	for _, name := range []string{"Name *", "Email *", "Password *", "Confirm Password *"} {
		page.Register(browsertest.RoleKey("textbox", name), browsertest.NewLocator(name))
	}
	page.Register(browsertest.RoleKey("button", "Sign up"), browsertest.NewLocator("sign up"))
	page.NavigateTo = "https://app.test/account"

	header := browsertest.NewLocator("profile name")
	header.Text = profile.FullName
	page.Register(browsertest.RoleKey("heading", ""), header)

	headerEmail := browsertest.NewLocator("profile email")
	headerEmail.Text = profile.Email
	page.Register("xpath=//h2/parent::*/p", headerEmail)

	nameInput := browsertest.NewLocator("full name")
	nameInput.Value = profile.FullName
	emailInput := browsertest.NewLocator("email")
	emailInput.Value = profile.Email
	inputs := browsertest.NewLocator("personal info")
	inputs.Children = []*browsertest.Locator{nameInput, emailInput}
	page.Register(`xpath=//*[self::h2 or self::h3][normalize-space()="Personal Information"]/parent::*//input`, inputs)

	return page
}

func testUser() entities.SignupFormData {
	return entities.GenerateTestUserDataAt(time.UnixMilli(1700000000000))
}

func TestSignupFlow_Passes(t *testing.T) {
	user := testUser()
	page := signupSite(entities.UserProfile{FullName: user.Name, Email: user.Email})
	env := testEnv(t)
	store := &memoryStore{}
	flow := NewSignupFlow(pages.NewFixtures(page, env, quietLogger()), store, quietLogger(), Options{Screenshots: true})

	result, err := flow.Run(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, entities.TestStatusPassed, result.Status)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, user.Email, result.User.Email)
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{
		filepath.Join(env.ResultsDir, "screenshots", "signup-initial.png"),
		filepath.Join(env.ResultsDir, "screenshots", "signup-filled.png"),
		filepath.Join(env.ResultsDir, "screenshots", "signup-result.png"),
	}, result.Artifacts)

	saved, err := store.LoadResults()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, signupTestName, saved[0].TestName)
}

func TestSignupFlow_ProfileMismatchFails(t *testing.T) {
	user := testUser()
	page := signupSite(entities.UserProfile{FullName: user.Name, Email: "someone@else.test"})
	store := &memoryStore{}
	flow := NewSignupFlow(pages.NewFixtures(page, testEnv(t), quietLogger()), store, quietLogger(), Options{Screenshots: true})

	result, err := flow.Run(context.Background(), user)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile email mismatch")
	assert.Equal(t, entities.TestStatusFailed, result.Status)
	assert.Equal(t, err.Error(), result.Error)
	require.NotEmpty(t, result.Artifacts)
	assert.Equal(t, "signup-failure.png", filepath.Base(result.Artifacts[len(result.Artifacts)-1]))
}

func TestSignupFlow_NoRedirectFails(t *testing.T) {
	user := testUser()
	page := signupSite(entities.UserProfile{FullName: user.Name, Email: user.Email})
	page.URLErr = browsertest.TimeoutError("still on /signup")
	flow := NewSignupFlow(pages.NewFixtures(page, testEnv(t), quietLogger()), nil, quietLogger(), Options{})

	result, err := flow.Run(context.Background(), user)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect to account")
	assert.Equal(t, entities.TestStatusFailed, result.Status)
	assert.Empty(t, page.Screenshots)
}

func TestSignupFlow_CancelledContext(t *testing.T) {
	page := signupSite(entities.UserProfile{})
	flow := NewSignupFlow(pages.NewFixtures(page, testEnv(t), quietLogger()), nil, quietLogger(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := flow.Run(ctx, testUser())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, page.Gotos)
}

func TestSignupFlow_StoreFailureKeepsResult(t *testing.T) {
	user := testUser()
	page := signupSite(entities.UserProfile{FullName: user.Name, Email: user.Email})
	store := &memoryStore{err: errors.New("disk full")}
	flow := NewSignupFlow(pages.NewFixtures(page, testEnv(t), quietLogger()), store, quietLogger(), Options{})

	result, err := flow.Run(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, entities.TestStatusPassed, result.Status)
	assert.Empty(t, result.RunID)
}

func TestSampleFlow(t *testing.T) {
	newSite := func() *browsertest.Page {
		page := browsertest.NewPage()
		page.Register(browsertest.RoleKey("textbox", "name"), browsertest.NewLocator("name"))
		page.Register(browsertest.RoleKey("button", "Submit"), browsertest.NewLocator("submit"))
		return page
	}

	t.Run("confirmation shown", func(t *testing.T) {
		page := newSite()
		page.Register(browsertest.TextKey(entities.MessageSampleSuccess), browsertest.NewLocator("success"))
		store := &memoryStore{}
		flow := NewSampleFlow(pages.NewFixtures(page, testEnv(t), quietLogger()), store, quietLogger(), Options{})

		result, err := flow.Run(context.Background(), entities.DefaultFullName)

		require.NoError(t, err)
		assert.Equal(t, entities.TestStatusPassed, result.Status)
		assert.Nil(t, result.User)
		assert.Len(t, store.results, 1)
	})

	t.Run("confirmation missing", func(t *testing.T) {
		flow := NewSampleFlow(pages.NewFixtures(newSite(), testEnv(t), quietLogger()), nil, quietLogger(), Options{})

		result, err := flow.Run(context.Background(), entities.DefaultFullName)

		assert.ErrorIs(t, err, errNoSuccessMessage)
		assert.Equal(t, entities.TestStatusFailed, result.Status)
	})
}
