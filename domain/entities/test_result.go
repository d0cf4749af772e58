package entities

import "time"

// TestStatus represents the outcome of a flow run
type TestStatus string

const (
	TestStatusPassed TestStatus = "passed"
	TestStatusFailed TestStatus = "failed"
)

// TestResult represents one recorded flow run
type TestResult struct {
	RunID     string          `json:"run_id"`
	TestName  string          `json:"test_name"`
	Timestamp time.Time       `json:"timestamp"`
	Status    TestStatus      `json:"status"`
	User      *SignupFormData `json:"user,omitempty"`
	Error     string          `json:"error,omitempty"`
	Duration  time.Duration   `json:"duration,omitempty"`
	Artifacts []string        `json:"artifacts,omitempty"`
}
