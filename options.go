package puzzled

import "log/slog"

// Default limits applied to parsed notation.
const (
	DefaultMaxRepeat = 1000
	DefaultMaxDepth  = 16
	DefaultMaxTurns  = 100000
)

// Limits caps the work a single token may request.
type Limits struct {
	MaxRepeat int // Largest repetition count accepted after a move or group
	MaxDepth  int // Deepest bracket nesting accepted
	MaxTurns  int // Largest number of atomic turns one token may expand to
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxRepeat: DefaultMaxRepeat,
		MaxDepth:  DefaultMaxDepth,
		MaxTurns:  DefaultMaxTurns,
	}
}

// withDefaults fills zero or negative fields with the defaults.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxRepeat <= 0 {
		l.MaxRepeat = d.MaxRepeat
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxTurns <= 0 {
		l.MaxTurns = d.MaxTurns
	}
	return l
}

// Option configures Session behavior.
type Option func(*config)

type config struct {
	topology     *Topology
	logger       *slog.Logger
	limits       Limits
	historyLimit int
}

func defaultConfig() *config {
	return &config{
		logger: slog.Default(),
		limits: DefaultLimits(),
	}
}

// WithTopology sets the puzzle topology. The standard cube is used when unset.
func WithTopology(t *Topology) Option {
	return func(c *config) {
		c.topology = t
	}
}

// WithLogger sets the structured logger used by the session.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLimits replaces all notation limits at once.
// Zero fields fall back to the defaults.
func WithLimits(l Limits) Option {
	return func(c *config) {
		c.limits = l.withDefaults()
	}
}

// WithMaxRepeat caps repetition counts such as the 3 in "r3".
func WithMaxRepeat(n int) Option {
	return func(c *config) {
		c.limits.MaxRepeat = n
		c.limits = c.limits.withDefaults()
	}
}

// WithMaxDepth caps bracket nesting.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.limits.MaxDepth = n
		c.limits = c.limits.withDefaults()
	}
}

// WithMaxTurns caps the number of atomic turns a single token may expand to.
func WithMaxTurns(n int) Option {
	return func(c *config) {
		c.limits.MaxTurns = n
		c.limits = c.limits.withDefaults()
	}
}

// WithHistoryLimit bounds the undo history. Zero keeps every entry.
// When full, the oldest entry is dropped and can no longer be undone.
func WithHistoryLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.historyLimit = n
	}
}
