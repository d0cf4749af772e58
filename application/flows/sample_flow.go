package flows

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"signup_e2e/application/pages"
	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

const sampleTestName = "sample"

var errNoSuccessMessage = errors.New("success message not shown")

// SampleFlow submits the single-field sample form
type SampleFlow struct {
	recorder
	sample *pages.SamplePage
}

// NewSampleFlow - creates the sample flow. store may be nil.
func NewSampleFlow(fx *pages.Fixtures, store interfaces.ResultStore, logger *logrus.Logger, opts Options) *SampleFlow {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SampleFlow{
		recorder: recorder{base: fx.Base, store: store, logger: logger, opts: opts},
		sample:   fx.Sample,
	}
}

// Run - submits name and waits for the confirmation
func (f *SampleFlow) Run(ctx context.Context, name string) (entities.TestResult, error) {
	steps := []step{
		{name: "open sample page", run: f.sample.Goto},
		{name: "fill form", run: func(context.Context) error {
			return f.sample.FillSampleForm(name)
		}},
		{name: "submit", run: f.sample.SubmitForm},
		{name: "confirmation", run: func(context.Context) error {
			if !f.sample.IsSuccessfullySubmitted() {
				return errNoSuccessMessage
			}
			return nil
		}, shot: "sample-result"},
	}

	return f.record(ctx, sampleTestName, nil, steps)
}
