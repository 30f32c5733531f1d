package persona

import (
	"context"
	"log/slog"

	"github.com/codeGROOVE-dev/redditpersona/pkg/reddit"
)

const redditWebURL = "https://www.reddit.com"

// ContentAPI is the subset of the Reddit client the fetcher needs.
type ContentAPI interface {
	Comments(ctx context.Context, username string, limit int) ([]reddit.Comment, error)
	Submissions(ctx context.Context, username string, limit int) ([]reddit.Submission, error)
}

func isRemoved(text string) bool {
	return text == "" || text == "[deleted]" || text == "[removed]"
}

// FetchActivity returns the user's recent comments followed by their recent posts.
// Any fetch failure is logged and yields no activity at all.
func FetchActivity(ctx context.Context, api ContentAPI, username string, limit int, logger *slog.Logger) []ActivityItem {
	logger.Info("fetching comments", "user", username, "limit", limit)
	comments, err := api.Comments(ctx, username, limit)
	if err != nil {
		logger.Error("reddit fetch failed", "user", username, "kind", "comments", "error", err)
		return nil
	}

	var activity []ActivityItem
	commentCount := 0
	for _, c := range comments {
		if isRemoved(c.Body) {
			continue
		}
		activity = append(activity, ActivityItem{
			Text:   c.Body,
			Source: redditWebURL + c.Permalink,
			Type:   ActivityComment,
		})
		commentCount++
	}

	logger.Info("fetching posts", "user", username, "limit", limit)
	posts, err := api.Submissions(ctx, username, limit)
	if err != nil {
		logger.Error("reddit fetch failed", "user", username, "kind", "submissions", "error", err)
		return nil
	}

	postCount := 0
	for _, p := range posts {
		text := p.Title
		if p.IsSelf && p.Selftext != "" {
			text = p.Selftext
		}
		if isRemoved(text) {
			continue
		}
		activity = append(activity, ActivityItem{
			Text:   text,
			Source: redditWebURL + p.Permalink,
			Type:   ActivityPost,
		})
		postCount++
	}

	logger.Info("fetched activity", "user", username, "comments", commentCount, "posts", postCount)
	return activity
}
