package persona

import "fmt"

const (
	noInfoSentinel   = "No relevant information found."
	noTraitsSentinel = "No persona traits found."
	noQuote          = "No quote available."
)

// ExtractPrompt returns the trait-extraction prompt for a snippet of Reddit text.
func ExtractPrompt(text string) string {
	return fmt.Sprintf(`
Analyze the following Reddit text and extract user persona information. For each piece of information found, format it exactly as "Category: specific detail".

Use these categories:
- Demographics: age, location, occupation, relationship status
- Personality Traits: introvert/extrovert, interests, communication style
- Motivations: what drives them, values, priorities
- Behaviors & Habits: daily routines, preferences, patterns
- Frustrations: complaints, dislikes, problems they face
- Goals & Needs: what they want to achieve, what they need

Text: "%s"

Only output lines in the format "Category: detail". If no relevant information is found, output "%s"
`, text, noInfoSentinel)
}

// QuotePrompt returns the prompt asking for a short first-person quote.
func QuotePrompt(summary string) string {
	return fmt.Sprintf(`
Based on this user persona, create a short, natural quote (1-2 sentences) that this person might say. Make it sound authentic and reflect their personality.

Persona:
%s

Quote:`, summary)
}
