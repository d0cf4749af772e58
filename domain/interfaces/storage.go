package interfaces

import "signup_e2e/domain/entities"

// ResultStore persists flow results between runs
type ResultStore interface {
	// SaveResult appends a result to the log
	SaveResult(result entities.TestResult) (entities.TestResult, error)

	// LoadResults returns every recorded result, oldest first
	LoadResults() ([]entities.TestResult, error)
}
