package reddit

import "encoding/json"

// Comment is a comment from a user's listing.
type Comment struct {
	ID        string  `json:"id"`
	Body      string  `json:"body"`
	Permalink string  `json:"permalink"`
	Subreddit string  `json:"subreddit"`
	Created   float64 `json:"created_utc"`
}

// Submission is a post from a user's listing.
type Submission struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Selftext  string  `json:"selftext"`
	Permalink string  `json:"permalink"`
	Subreddit string  `json:"subreddit"`
	Created   float64 `json:"created_utc"`
	IsSelf    bool    `json:"is_self"`
}

// listing is the envelope Reddit wraps paginated results in.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}
