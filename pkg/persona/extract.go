package persona

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
)

const (
	minExtractChars = 20
	maxExtractChars = 1000

	extractMaxTokens   = 300
	extractTemperature = 0.3
)

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Extract asks the model for persona traits in text. Short text is skipped, and
// any inference failure yields no traits.
func (b *Builder) Extract(ctx context.Context, text string) Traits {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractChars {
		return Traits{}
	}

	req := inference.UserPrompt(b.model, ExtractPrompt(truncateRunes(text, maxExtractChars)), extractMaxTokens, extractTemperature)
	if err := b.pace(ctx); err != nil {
		b.logger.Warn("extraction cancelled", "error", err)
		return Traits{}
	}

	out, err := b.llm.Complete(ctx, req)
	b.logger.Debug("extraction", "input", truncateRunes(text, 100), "output", out)
	if err != nil {
		b.logger.Warn("trait extraction failed", "error", err)
		return Traits{}
	}

	traits := b.taxonomy.ParseTraits(out)
	for cat, details := range traits {
		for _, d := range details {
			b.logger.Debug("extracted", "category", cat, "detail", d)
		}
	}
	return traits
}
