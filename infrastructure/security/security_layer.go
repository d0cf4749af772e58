package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"signup_e2e/domain/entities"
	"signup_e2e/domain/interfaces"
)

// ErrApprovalRequired is returned by Check for runs that need consent
var ErrApprovalRequired = errors.New("approval required")

const (
	localEnv      = "local"
	productionEnv = "production"
)

var destructiveKeywords = []string{"delete", "remove", "reset", "clear"}

type SecurityLayer struct {
	logger *logrus.Logger
}

func NewSecurityLayer(logger *logrus.Logger) *SecurityLayer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SecurityLayer{
		logger: logger,
	}
}

// RequiresApproval - data-creating runs against production and destructive
// runs anywhere but local need consent
func (s *SecurityLayer) RequiresApproval(ctx context.Context, flow entities.FlowInfo) bool {
	if s.isDestructiveFlow(flow) && flow.Environment != localEnv {
		return true
	}
	return flow.CreatesData && flow.Environment == productionEnv
}

func (s *SecurityLayer) RiskLevel(ctx context.Context, flow entities.FlowInfo) entities.RiskLevel {
	if s.RequiresApproval(ctx, flow) {
		return entities.RiskHigh
	}

	if flow.CreatesData && flow.Environment != localEnv {
		// Test accounts pile up on shared environments
		return entities.RiskMedium
	}

	return entities.RiskLow
}

// Check - returns ErrApprovalRequired when the run needs consent that
// was not given
func (s *SecurityLayer) Check(ctx context.Context, flow entities.FlowInfo, approved bool) error {
	risk := s.RiskLevel(ctx, flow)
	s.logger.WithFields(logrus.Fields{
		"flow": flow.Name,
		"env":  flow.Environment,
		"risk": risk,
	}).Debug("Flow risk assessed")

	if !s.RequiresApproval(ctx, flow) {
		return nil
	}
	if approved {
		s.logger.WithField("flow", flow.Name).Warn("Running approved high-risk flow")
		return nil
	}
	return fmt.Errorf("%w: %s writes to %s", ErrApprovalRequired, flow.Name, flow.Environment)
}

func (s *SecurityLayer) isDestructiveFlow(flow entities.FlowInfo) bool {
	lowerName := strings.ToLower(flow.Name)
	for _, keyword := range destructiveKeywords {
		if strings.Contains(lowerName, keyword) {
			return true
		}
	}
	return false
}

// Ensure SecurityLayer implements SecurityLayer interface
var _ interfaces.SecurityLayer = (*SecurityLayer)(nil)
