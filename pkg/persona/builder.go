package persona

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
)

// Defaults used when no option overrides them.
const (
	DefaultLimit     = 50
	DefaultCallDelay = 1100 * time.Millisecond
)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Builder runs the persona pipeline for one profile URL at a time.
type Builder struct {
	logger    *slog.Logger
	content   ContentAPI
	llm       inference.Completer
	sleep     Sleeper
	model     string
	taxonomy  Taxonomy
	limit     int
	callDelay time.Duration
}

// New creates a Builder reading activity from content and extracting traits with llm.
func New(content ContentAPI, llm inference.Completer, opts ...Option) *Builder {
	o := &OptionHolder{}
	for _, opt := range opts {
		opt(o)
	}

	b := &Builder{
		logger:    o.logger,
		content:   content,
		llm:       llm,
		sleep:     o.sleep,
		model:     o.model,
		taxonomy:  o.taxonomy,
		limit:     o.limit,
		callDelay: DefaultCallDelay,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.sleep == nil {
		b.sleep = contextSleep
	}
	if b.model == "" {
		b.model = inference.DefaultTogetherModel
	}
	if len(b.taxonomy) == 0 {
		b.taxonomy = DefaultTaxonomy
	}
	if b.limit <= 0 {
		b.limit = DefaultLimit
	}
	if o.delaySet {
		b.callDelay = o.callDelay
	}
	return b
}

// Build fetches, extracts, aggregates and renders the persona for profileURL.
// It only fails for an invalid URL; upstream failures degrade to less data.
func (b *Builder) Build(ctx context.Context, profileURL string) (*Report, error) {
	username, err := UsernameFromURL(profileURL)
	if err != nil {
		return nil, err
	}

	b.logger.Info("fetching Reddit activity", "user", username)
	activity := FetchActivity(ctx, b.content, username, b.limit, b.logger)
	if len(activity) == 0 {
		b.logger.Info("no activity found", "user", username)
		return &Report{Username: username, Markdown: EmptyMarkdown(username)}, nil
	}

	b.logger.Info("processing activity", "items", len(activity))
	agg := NewAggregator(b.taxonomy)
	for i, item := range activity {
		b.logger.Debug("processing item", "n", i+1, "of", len(activity), "type", item.Type)
		agg.Add(item, b.Extract(ctx, item.Text))
	}

	profile, sources := agg.Result()
	summary, total := Summary(b.taxonomy, profile)
	b.logger.Info("aggregated traits", "total", total)
	b.logger.Debug("persona summary", "summary", summary)

	quote := b.Quote(ctx, summary)
	return &Report{
		Username:   username,
		Profile:    profile,
		Sources:    sources,
		Quote:      quote,
		Items:      len(activity),
		TraitCount: total,
		Markdown:   Markdown(username, profile, quote, sources),
	}, nil
}

// WriteReport builds the persona and writes the markdown to path, replacing any existing file.
func (b *Builder) WriteReport(ctx context.Context, profileURL, path string) (*Report, error) {
	report, err := b.Build(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(report.Markdown), 0o644); err != nil { //nolint:gosec // report is meant to be readable
		return nil, fmt.Errorf("writing report: %w", err)
	}
	b.logger.Info("persona saved", "user", report.Username, "path", path)
	return report, nil
}

// pace waits out the fixed delay that precedes every inference call.
func (b *Builder) pace(ctx context.Context) error {
	return b.sleep(ctx, b.callDelay)
}
