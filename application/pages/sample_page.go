package pages

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
	"signup_e2e/infrastructure/config"
)

// SamplePage is a single-field demo form
type SamplePage struct {
	*BasePage

	nameInput      playwright.Locator
	submitButton   playwright.Locator
	successMessage playwright.Locator
}

// NewSamplePage - creates the sample page object
func NewSamplePage(page interfaces.BrowserPage, env *config.Environment, logger *logrus.Logger) *SamplePage {
	return newSamplePage(NewBasePage(page, env, logger))
}

func newSamplePage(base *BasePage) *SamplePage {
	p := base.page
	return &SamplePage{
		BasePage:       base,
		nameInput:      p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "name"}),
		submitButton:   p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Submit"}),
		successMessage: p.GetByText(entities.MessageSampleSuccess),
	}
}

// Goto - opens the sample page and waits for its input
func (s *SamplePage) Goto(ctx context.Context) error {
	if err := s.NavigateTo(ctx, entities.RouteSample); err != nil {
		return err
	}
	return s.elements.WaitForVisible(s.nameInput)
}

// FillSampleForm - enters name
func (s *SamplePage) FillSampleForm(name string) error {
	return s.elements.Fill(s.nameInput, name)
}

// SubmitForm - clicks Submit
func (s *SamplePage) SubmitForm(ctx context.Context) error {
	return s.elements.Click(ctx, s.submitButton)
}

// IsSuccessfullySubmitted - reports whether the success message shows
func (s *SamplePage) IsSuccessfullySubmitted() bool {
	return s.elements.IsVisible(s.successMessage)
}
