package pages

import (
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/config"
)

// Fixtures bundles every page object for one page handle. All of them
// share a single action layer.
type Fixtures struct {
	Base    *BasePage
	Signup  *SignupPage
	Account *AccountPage
	Sample  *SamplePage
}

// NewFixtures - builds the page objects for page
func NewFixtures(page interfaces.BrowserPage, env *config.Environment, logger *logrus.Logger) *Fixtures {
	base := NewBasePage(page, env, logger)
	return &Fixtures{
		Base:    base,
		Signup:  newSignupPage(base),
		Account: newAccountPage(base),
		Sample:  newSamplePage(base),
	}
}
