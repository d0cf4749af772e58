package pages

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/config"
)

const (
	profileEmailSelector = "xpath=//h2/parent::*/p"
	personalInfoInputs   = `xpath=//*[self::h2 or self::h3][normalize-space()="Personal Information"]/parent::*//input`
)

// AccountPage is the /account profile page shown after signup
type AccountPage struct {
	*BasePage

	profileNameHeading playwright.Locator
	profileEmailText   playwright.Locator
	fullNameInput      playwright.Locator
	emailInput         playwright.Locator
	myProfileHeading   playwright.Locator
}

// NewAccountPage - creates the account page object
func NewAccountPage(page interfaces.BrowserPage, env *config.Environment, logger *logrus.Logger) *AccountPage {
	return newAccountPage(NewBasePage(page, env, logger))
}

func newAccountPage(base *BasePage) *AccountPage {
	p := base.page
	inputs := p.Locator(personalInfoInputs)
	return &AccountPage{
		BasePage:           base,
		profileNameHeading: p.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{Level: playwright.Int(2)}),
		profileEmailText:   p.Locator(profileEmailSelector),
		fullNameInput:      inputs.First(),
		emailInput:         inputs.Nth(1),
		myProfileHeading:   p.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{Name: "My Profile"}),
	}
}

// Goto - opens the account page directly
func (a *AccountPage) Goto(ctx context.Context) error {
	if err := a.NavigateTo(ctx, entities.RouteAccount); err != nil {
		return err
	}
	return a.elements.WaitForVisible(a.myProfileHeading)
}

// IsOnAccountPage - reports whether the "My Profile" heading shows up
func (a *AccountPage) IsOnAccountPage() bool {
	return a.isVisibleWithin(a.myProfileHeading)
}

// GetProfileFullName - returns the name in the profile header
func (a *AccountPage) GetProfileFullName() (string, error) {
	return a.visibleText(a.profileNameHeading)
}

// GetProfileEmail - returns the email in the profile header
func (a *AccountPage) GetProfileEmail() (string, error) {
	return a.visibleText(a.profileEmailText)
}

// GetPersonalInfoFullName - returns the full name input value
func (a *AccountPage) GetPersonalInfoFullName() (string, error) {
	return a.visibleValue(a.fullNameInput)
}

// GetPersonalInfoEmail - returns the email input value
func (a *AccountPage) GetPersonalInfoEmail() (string, error) {
	return a.visibleValue(a.emailInput)
}

// Profile - collects the profile fields shown on the page
func (a *AccountPage) Profile() (entities.UserProfile, error) {
	var profile entities.UserProfile
	var err error
	if profile.FullName, err = a.GetPersonalInfoFullName(); err != nil {
		return profile, err
	}
	if profile.Email, err = a.GetPersonalInfoEmail(); err != nil {
		return profile, err
	}
	profile.Username = profile.FullName
	return profile, nil
}

func (a *AccountPage) visibleText(locator playwright.Locator) (string, error) {
	if err := a.elements.WaitForVisible(locator); err != nil {
		return "", err
	}
	text, err := a.elements.GetText(locator)
	return strings.TrimSpace(text), err
}

func (a *AccountPage) visibleValue(locator playwright.Locator) (string, error) {
	if err := a.elements.WaitForVisible(locator); err != nil {
		return "", err
	}
	return a.elements.GetValue(locator)
}
