package coordinator

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Policy holds the library-wide circulation settings.
type Policy struct {
	DailyFineRate float64
	MaxRenewals   int
	AllowOverdue  bool
}

// DefaultPolicy returns a fine of 0.25 per day late, two renewals and no renewal of overdue loans.
func DefaultPolicy() Policy {
	return Policy{
		DailyFineRate: core.DefaultDailyFineRate,
		MaxRenewals:   core.DefaultMaxRenewals,
		AllowOverdue:  false,
	}
}

func (p Policy) validate() error {
	if p.DailyFineRate < 0 {
		return core.ErrNegativeDailyRate
	}

	if p.MaxRenewals < 0 {
		return core.ErrNegativeRenewals
	}

	return nil
}

func (p Policy) renewOptions() []core.RenewOption {
	options := []core.RenewOption{core.WithMaxRenewals(p.MaxRenewals)}
	if p.AllowOverdue {
		options = append(options, core.AllowOverdue())
	}

	return options
}

// Option defines a functional option for configuring a System.
type Option func(*System)

// WithPolicy sets the circulation policy.
func WithPolicy(policy Policy) Option {
	return func(s *System) {
		s.policy = policy
	}
}

// WithClock sets the wall clock used to timestamp domain events.
// Business dates (checkout, return, ...) are always passed in explicitly.
func WithClock(now func() time.Time) Option {
	return func(s *System) {
		s.now = now
	}
}

type returnConfig struct {
	dailyRate float64
}

// ReturnOption configures a single return.
type ReturnOption func(*returnConfig)

// WithDailyRate overrides the policy's daily fine rate for one return.
func WithDailyRate(rate float64) ReturnOption {
	return func(c *returnConfig) {
		c.dailyRate = rate
	}
}
