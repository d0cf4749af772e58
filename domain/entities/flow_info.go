package entities

// FlowInfo describes a flow about to run
type FlowInfo struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	// CreatesData is set for flows that submit forms on the target.
	CreatesData bool `json:"creates_data"`
}

// RiskLevel grades how much a flow run may affect its target
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)
