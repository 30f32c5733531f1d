package persona

import (
	"context"
	"strings"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
)

const (
	quoteMaxTokens   = 100
	quoteTemperature = 0.7
)

// Quote asks the model for a short first-person quote matching summary.
func (b *Builder) Quote(ctx context.Context, summary string) string {
	if strings.TrimSpace(summary) == "" || strings.TrimSpace(summary) == noTraitsSentinel {
		return noQuote
	}

	req := inference.UserPrompt(b.model, QuotePrompt(summary), quoteMaxTokens, quoteTemperature)
	if err := b.pace(ctx); err != nil {
		b.logger.Warn("quote generation cancelled", "error", err)
		return noQuote
	}

	out, err := b.llm.Complete(ctx, req)
	if err != nil {
		b.logger.Warn("quote generation failed", "error", err)
		return noQuote
	}
	b.logger.Debug("generated quote", "quote", out)
	return cleanQuote(out)
}

// cleanQuote drops an echoed "Quote:" label.
func cleanQuote(out string) string {
	q := strings.TrimSpace(out)
	if strings.HasPrefix(strings.ToLower(q), "quote:") {
		q = strings.TrimSpace(q[len("quote:"):])
	}
	if q == "" {
		return noQuote
	}
	return q
}
