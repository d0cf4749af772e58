// Package flows runs complete user journeys against the page objects and
// records their outcome.
package flows

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"signup_e2e/application/pages"
	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

// Options tunes a flow run
type Options struct {
	// Screenshots captures a full-page screenshot after each milestone.
	Screenshots bool
}

// recorder wraps a sequence of steps into a TestResult and stores it
type recorder struct {
	base   *pages.BasePage
	store  interfaces.ResultStore
	logger *logrus.Logger
	opts   Options
}

// step is one named stage of a flow
type step struct {
	name string
	run  func(ctx context.Context) error
	// shot is the screenshot taken after the step, if any.
	shot string
}

// record - executes steps in order and records the result. The returned
// error is the first failing step's.
func (r *recorder) record(ctx context.Context, name string, user *entities.SignupFormData, steps []step) (entities.TestResult, error) {
	started := time.Now()
	result := entities.TestResult{
		TestName: name,
		User:     user,
	}

	r.logger.WithField("test", name).Info("Flow started")

	err := r.runSteps(ctx, &result, steps)
	result.Duration = time.Since(started)
	if err != nil {
		result.Status = entities.TestStatusFailed
		result.Error = err.Error()
		r.capture(&result, name+"-failure")
		r.logger.WithField("test", name).WithError(err).Error("Flow failed")
	} else {
		result.Status = entities.TestStatusPassed
		r.logger.WithFields(logrus.Fields{
			"test":     name,
			"duration": result.Duration,
		}).Info("Flow passed")
	}

	if r.store != nil {
		saved, saveErr := r.store.SaveResult(result)
		if saveErr != nil {
			r.logger.WithError(saveErr).Warn("Failed to record flow result")
		} else {
			result = saved
		}
	}

	return result, err
}

func (r *recorder) runSteps(ctx context.Context, result *entities.TestResult, steps []step) error {
	for _, s := range steps {
		select {
		case <-ctx.Done():
			return fmt.Errorf("flow canceled before %s: %w", s.name, ctx.Err())
		default:
		}

		r.logger.WithField("step", s.name).Debug("Running step")
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		if s.shot != "" {
			r.capture(result, s.shot)
		}
	}
	return nil
}

// capture - takes a screenshot when enabled; failures only warn
func (r *recorder) capture(result *entities.TestResult, name string) {
	if !r.opts.Screenshots {
		return
	}
	path, err := r.base.TakeScreenshot(name)
	if err != nil {
		r.logger.WithError(err).Warn("Screenshot failed")
		return
	}
	result.Artifacts = append(result.Artifacts, path)
}

func expectEqual(field, expected, actual string) error {
	if expected != actual {
		return fmt.Errorf("%s mismatch: expected %q, got %q", field, expected, actual)
	}
	return nil
}
