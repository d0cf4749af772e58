package flows

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"signup_e2e/application/pages"
	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

const signupTestName = "signup"

// SignupFlow registers a new user and checks that the account page
// shows what was entered
type SignupFlow struct {
	recorder
	signup  *pages.SignupPage
	account *pages.AccountPage
}

// NewSignupFlow - creates the signup flow. store may be nil.
func NewSignupFlow(fx *pages.Fixtures, store interfaces.ResultStore, logger *logrus.Logger, opts Options) *SignupFlow {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SignupFlow{
		recorder: recorder{base: fx.Base, store: store, logger: logger, opts: opts},
		signup:   fx.Signup,
		account:  fx.Account,
	}
}

// Run - signs data up and verifies the resulting profile
func (f *SignupFlow) Run(ctx context.Context, data entities.SignupFormData) (entities.TestResult, error) {
	steps := []step{
		{name: "open signup page", run: f.signup.Goto, shot: "signup-initial"},
		{name: "fill form", run: func(context.Context) error {
			return f.signup.FillSignupForm(data)
		}, shot: "signup-filled"},
		{name: "submit", run: func(ctx context.Context) error {
			outcome, err := f.signup.SubmitForm(ctx)
			if err == nil && outcome == entities.WaitDegraded {
				f.logger.Debug("Submission not observed, continuing")
			}
			return err
		}},
		{name: "redirect to account", run: func(context.Context) error {
			if !f.signup.IsOnAccountPage() {
				return fmt.Errorf("still on %s", f.signup.CurrentURL())
			}
			return nil
		}},
		{name: "verify profile", run: func(context.Context) error {
			return f.verifyProfile(data)
		}, shot: "signup-result"},
	}

	user := data
	return f.record(ctx, signupTestName, &user, steps)
}

func (f *SignupFlow) verifyProfile(data entities.SignupFormData) error {
	checks := []struct {
		field string
		read  func() (string, error)
		want  string
	}{
		{"profile name", f.account.GetProfileFullName, data.Name},
		{"profile email", f.account.GetProfileEmail, data.Email},
		{"personal info name", f.account.GetPersonalInfoFullName, data.Name},
		{"personal info email", f.account.GetPersonalInfoEmail, data.Email},
	}
	for _, c := range checks {
		got, err := c.read()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.field, err)
		}
		if err := expectEqual(c.field, c.want, got); err != nil {
			return err
		}
	}
	return nil
}
