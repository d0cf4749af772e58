package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

const resultsFile = "results.json"

type resultLog struct {
	mu   sync.Mutex
	path string
}

// NewResultLog - creates a JSON result log inside dir
func NewResultLog(dir string) (interfaces.ResultStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &resultLog{path: filepath.Join(dir, resultsFile)}, nil
}

// SaveResult - appends a result, assigning a run ID and timestamp when missing
func (s *resultLog) SaveResult(result entities.TestResult) (entities.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.load()
	if err != nil {
		return result, err
	}

	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}
	results = append(results, result)

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return result, err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return result, err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return result, err
	}
	return result, nil
}

// LoadResults - loads every recorded result
func (s *resultLog) LoadResults() ([]entities.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *resultLog) load() ([]entities.TestResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.TestResult{}, nil
		}
		return nil, err
	}

	var results []entities.TestResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("corrupt result log %s: %w", s.path, err)
	}
	return results, nil
}
