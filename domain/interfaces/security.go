package interfaces

import (
	"context"

	"signup_e2e/domain/entities"
)

// SecurityLayer decides whether a flow may run unattended
type SecurityLayer interface {
	// RequiresApproval reports whether the run needs explicit consent
	RequiresApproval(ctx context.Context, flow entities.FlowInfo) bool

	// RiskLevel grades the run
	RiskLevel(ctx context.Context, flow entities.FlowInfo) entities.RiskLevel
}
