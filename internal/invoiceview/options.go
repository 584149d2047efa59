package invoiceview

import (
	"log/slog"
	"time"
)

const (
	// DefaultIdleTimeout is how long a view may go without a lease renewal
	// before the manager unmounts it. Browsers renew the lease with every
	// fragment poll, but hidden tabs get their timers throttled to about one
	// run per minute, so this stays well above a minute.
	DefaultIdleTimeout = 3 * time.Minute

	// DefaultSweepInterval is how often the manager looks for idle views.
	DefaultSweepInterval = 10 * time.Second
)

type options struct {
	pollInterval  time.Duration
	idleTimeout   time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

func defaultOptions() options {
	return options{
		pollInterval:  DefaultPollInterval,
		idleTimeout:   DefaultIdleTimeout,
		sweepInterval: DefaultSweepInterval,
		logger:        slog.Default().With("component", "invoiceview"),
		now:           time.Now,
	}
}

// Option configures views and the manager that owns them.
type Option func(*options)

// WithPollInterval sets how often a view refetches its invoices.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithIdleTimeout sets how long an unrenewed view survives.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}

// WithSweepInterval sets how often idle views are looked for.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now for lease bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
