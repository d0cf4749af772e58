package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/config"
)

const (
	signupButtonText  = "Sign up"
	signupLoadingText = "Signing up..."
	validationErrors  = "[role=alert], .error-message, .field-error"
)

// SignupPage is the /signup form
type SignupPage struct {
	*BasePage

	nameInput            playwright.Locator
	emailInput           playwright.Locator
	passwordInput        playwright.Locator
	confirmPasswordInput playwright.Locator
	signupButton         playwright.Locator
	googleSigninButton   playwright.Locator
	loginLink            playwright.Locator
	successNotification  playwright.Locator
}

// NewSignupPage - creates the signup page object
func NewSignupPage(page interfaces.BrowserPage, env *config.Environment, logger *logrus.Logger) *SignupPage {
	return newSignupPage(NewBasePage(page, env, logger))
}

func newSignupPage(base *BasePage) *SignupPage {
	p := base.page
	return &SignupPage{
		BasePage:             base,
		nameInput:            p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Name *"}),
		emailInput:           p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Email *"}),
		passwordInput:        p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Password *", Exact: playwright.Bool(true)}),
		confirmPasswordInput: p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Confirm Password *"}),
		signupButton:         p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: signupButtonText}),
		googleSigninButton:   p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Sign in with Google"}),
		loginLink:            p.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: "Login here"}),
		successNotification:  p.GetByText(entities.MessageSignupSuccess),
	}
}

// Goto - opens the signup page and waits for the form
func (s *SignupPage) Goto(ctx context.Context) error {
	if err := s.NavigateTo(ctx, entities.RouteSignup); err != nil {
		return err
	}
	if err := s.elements.WaitForVisible(s.nameInput); err != nil {
		return err
	}
	return s.elements.WaitForVisible(s.signupButton)
}

// VerifyFormElementsVisible - checks every form control is on screen
func (s *SignupPage) VerifyFormElementsVisible() error {
	controls := map[string]playwright.Locator{
		"name":             s.nameInput,
		"email":            s.emailInput,
		"password":         s.passwordInput,
		"confirm password": s.confirmPasswordInput,
		"sign up button":   s.signupButton,
	}
	for _, name := range []string{"name", "email", "password", "confirm password", "sign up button"} {
		if err := s.elements.WaitForVisible(controls[name]); err != nil {
			return fmt.Errorf("signup form %s not visible: %w", name, err)
		}
	}
	return nil
}

// FillSignupForm - fills every field of the form
func (s *SignupPage) FillSignupForm(data entities.SignupFormData) error {
	fields := []struct {
		locator playwright.Locator
		value   string
	}{
		{s.nameInput, data.Name},
		{s.emailInput, data.Email},
		{s.passwordInput, data.Password},
		{s.confirmPasswordInput, data.ConfirmPassword},
	}
	for _, f := range fields {
		if err := s.elements.Fill(f.locator, f.value); err != nil {
			return err
		}
	}
	return nil
}

// SubmitForm - clicks "Sign up" and follows the button through its
// loading state
func (s *SignupPage) SubmitForm(ctx context.Context) (entities.WaitOutcome, error) {
	if err := s.elements.Click(ctx, s.signupButton); err != nil {
		return entities.WaitDegraded, err
	}

	outcome, err := s.waits.WaitForButtonSubmission(ctx, s.signupButton, signupButtonText, signupLoadingText)
	if err != nil {
		return outcome, err
	}
	s.logger.WithField("outcome", outcome).Debug("Signup submitted")
	return outcome, nil
}

// IsSignupSuccessful - reports whether the success notification shows up
func (s *SignupPage) IsSignupSuccessful() bool {
	return s.isVisibleWithin(s.successNotification)
}

// IsOnAccountPage - reports whether submission redirected to /account
func (s *SignupPage) IsOnAccountPage() bool {
	if err := s.waits.WaitForURL("**"+entities.RouteAccount, s.env.Tiers.Medium); err != nil {
		return false
	}
	return s.IsOnPage(entities.RouteAccount)
}

// IsGoogleSigninAvailable - reports whether the Google button is shown
func (s *SignupPage) IsGoogleSigninAvailable() bool {
	return s.elements.IsVisible(s.googleSigninButton)
}

// ClickLoginLink - follows the "Login here" link
func (s *SignupPage) ClickLoginLink(ctx context.Context) error {
	return s.elements.Click(ctx, s.loginLink)
}

// GetValidationErrors - returns the visible form validation messages
func (s *SignupPage) GetValidationErrors() ([]string, error) {
	texts, err := s.page.Locator(validationErrors).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to read validation errors: %w", err)
	}

	errs := make([]string, 0, len(texts))
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			errs = append(errs, text)
		}
	}
	return errs, nil
}
