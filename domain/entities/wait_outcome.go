package entities

// WaitOutcome tells a caller whether a best-effort wait observed its
// condition or fell back to a fixed pause.
type WaitOutcome int

const (
	WaitConfirmed WaitOutcome = iota
	WaitDegraded
)

func (o WaitOutcome) String() string {
	switch o {
	case WaitConfirmed:
		return "confirmed"
	case WaitDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}
