package entities

import "time"

// Timeouts holds the wait tiers every action and wait defaults to.
// Call sites pick a tier by intent instead of repeating literals.
type Timeouts struct {
	Short    time.Duration `json:"short"`
	Medium   time.Duration `json:"medium"`
	Long     time.Duration `json:"long"`
	VeryLong time.Duration `json:"very_long"`
}

const (
	TimeoutShort    = 5 * time.Second
	TimeoutMedium   = 10 * time.Second
	TimeoutLong     = 30 * time.Second
	TimeoutVeryLong = 60 * time.Second
)

// DefaultTimeouts - returns the standard tiers
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Short:    TimeoutShort,
		Medium:   TimeoutMedium,
		Long:     TimeoutLong,
		VeryLong: TimeoutVeryLong,
	}
}

// WithDefaults fills zero tiers from DefaultTimeouts.
func (t Timeouts) WithDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Short <= 0 {
		t.Short = d.Short
	}
	if t.Medium <= 0 {
		t.Medium = d.Medium
	}
	if t.Long <= 0 {
		t.Long = d.Long
	}
	if t.VeryLong <= 0 {
		t.VeryLong = d.VeryLong
	}
	return t
}

// Pick returns override when it is positive, otherwise fallback.
func Pick(fallback time.Duration, override ...time.Duration) time.Duration {
	if len(override) > 0 && override[0] > 0 {
		return override[0]
	}
	return fallback
}
