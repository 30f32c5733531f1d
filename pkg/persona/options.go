package persona

import (
	"log/slog"
	"time"
)

// Option configures a Builder.
type Option func(*OptionHolder)

// OptionHolder holds configuration options.
type OptionHolder struct {
	logger    *slog.Logger
	sleep     Sleeper
	model     string
	taxonomy  Taxonomy
	limit     int
	callDelay time.Duration
	delaySet  bool
}

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *OptionHolder) {
		o.logger = logger
	}
}

// WithTaxonomy replaces the default six-category taxonomy. Model output lines are
// matched against each category's name and first word, so new categories can be added.
// The extraction prompt still lists the default categories.
func WithTaxonomy(t Taxonomy) Option {
	return func(o *OptionHolder) {
		o.taxonomy = t
	}
}

// WithLimit sets how many comments and how many posts are fetched.
func WithLimit(n int) Option {
	return func(o *OptionHolder) {
		o.limit = n
	}
}

// WithModel sets the model name sent with every inference request.
func WithModel(model string) Option {
	return func(o *OptionHolder) {
		o.model = model
	}
}

// WithCallDelay sets the fixed pause taken before every inference call.
func WithCallDelay(d time.Duration) Option {
	return func(o *OptionHolder) {
		o.callDelay = d
		o.delaySet = true
	}
}

// WithSleeper replaces the function used to pause between inference calls.
func WithSleeper(s Sleeper) Option {
	return func(o *OptionHolder) {
		o.sleep = s
	}
}
