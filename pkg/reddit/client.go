// Package reddit fetches public user activity from the Reddit API.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Reddit endpoints.
const (
	PublicBaseURL    = "https://www.reddit.com"
	OAuthBaseURL     = "https://oauth.reddit.com"
	TokenURL         = "https://www.reddit.com/api/v1/access_token"
	DefaultUserAgent = "redditpersona/1.0"

	maxPageSize = 100
)

// ErrUserNotFound is returned when Reddit has no such user or the account is suspended.
var ErrUserNotFound = errors.New("reddit user not found")

// Config configures a Client.
type Config struct {
	HTTPClient   *http.Client
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	TokenURL     string
	RetryDelay   time.Duration
}

// Client reads user listings. With client credentials it uses application-only OAuth,
// otherwise the public JSON listings.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	suffix     string
	userAgent  string
	retryDelay time.Duration
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// NewClient creates a Reddit client. ctx is used for OAuth token refreshes and must
// outlive the client.
func NewClient(ctx context.Context, logger *slog.Logger, cfg Config) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	uaClient := &http.Client{
		Timeout:   base.Timeout,
		Transport: &userAgentTransport{base: transport, userAgent: userAgent},
	}

	c := &Client{
		logger:     logger,
		httpClient: uaClient,
		baseURL:    PublicBaseURL,
		suffix:     ".json",
		userAgent:  userAgent,
		retryDelay: cfg.RetryDelay,
	}
	if c.retryDelay == 0 {
		c.retryDelay = time.Second
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = TokenURL
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		authClient := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, uaClient))
		authClient.Timeout = uaClient.Timeout
		c.httpClient = authClient
		c.baseURL = OAuthBaseURL
		c.suffix = ""
		logger.Debug("using Reddit application-only OAuth")
	}

	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	return c
}

// Comments returns up to limit of the user's newest comments.
func (c *Client) Comments(ctx context.Context, username string, limit int) ([]Comment, error) {
	var comments []Comment
	err := c.paginate(ctx, username, "comments", limit, func(raw json.RawMessage) error {
		var cm Comment
		if err := json.Unmarshal(raw, &cm); err != nil {
			return fmt.Errorf("decoding comment: %w", err)
		}
		comments = append(comments, cm)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Submissions returns up to limit of the user's newest posts.
func (c *Client) Submissions(ctx context.Context, username string, limit int) ([]Submission, error) {
	var posts []Submission
	err := c.paginate(ctx, username, "submitted", limit, func(raw json.RawMessage) error {
		var s Submission
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decoding submission: %w", err)
		}
		posts = append(posts, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// paginate walks a user listing newest-first, following the after cursor.
func (c *Client) paginate(ctx context.Context, username, kind string, limit int, visit func(json.RawMessage) error) error {
	after := ""
	seen := 0
	for seen < limit {
		pageSize := min(maxPageSize, limit-seen)

		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("sort", "new")
		q.Set("raw_json", "1")
		if after != "" {
			q.Set("after", after)
		}
		apiURL := fmt.Sprintf("%s/user/%s/%s%s?%s", c.baseURL, url.PathEscape(username), kind, c.suffix, q.Encode())

		var page listing
		if err := c.getJSON(ctx, apiURL, &page); err != nil {
			return err
		}

		for _, child := range page.Data.Children {
			if seen >= limit {
				break
			}
			if err := visit(child.Data); err != nil {
				return err
			}
			seen++
		}

		c.logger.Debug("fetched listing page", "user", username, "kind", kind, "items", len(page.Data.Children), "after", page.Data.After)
		if len(page.Data.Children) == 0 || page.Data.After == "" {
			break
		}
		after = page.Data.After
	}
	return nil
}

// getJSON fetches apiURL and decodes the body into v, retrying rate limits and server errors.
func (c *Client) getJSON(ctx context.Context, apiURL string, v any) error {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}

			switch {
			case resp.StatusCode == http.StatusOK:
				body = data
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
				return fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(data, 256))
			case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
				return retry.Unrecoverable(fmt.Errorf("%w: HTTP %d", ErrUserNotFound, resp.StatusCode))
			default:
				return retry.Unrecoverable(fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(data, 256)))
			}
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying Reddit API fetch", "attempt", n+1, "url", apiURL, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", apiURL, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding listing: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
