package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeListing(t *testing.T, w http.ResponseWriter, kind string, items []map[string]any, after string) {
	t.Helper()
	children := make([]map[string]any, 0, len(items))
	for _, it := range items {
		children = append(children, map[string]any{"kind": kind, "data": it})
	}
	payload := map[string]any{
		"kind": "Listing",
		"data": map[string]any{"after": after, "children": children},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encoding listing: %v", err)
	}
}

func TestCommentsPaginates(t *testing.T) {
	var limits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kojied/comments.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "persona-test/1.0" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Query().Get("raw_json") != "1" || r.URL.Query().Get("sort") != "new" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		limits = append(limits, r.URL.Query().Get("limit"))

		n, _ := strconv.Atoi(r.URL.Query().Get("limit")) //nolint:errcheck // test server
		start := 0
		if after := r.URL.Query().Get("after"); after != "" {
			start, _ = strconv.Atoi(after) //nolint:errcheck // test server
		}
		var items []map[string]any
		for i := start; i < start+n; i++ {
			items = append(items, map[string]any{
				"id":        strconv.Itoa(i),
				"body":      fmt.Sprintf("comment %d", i),
				"permalink": fmt.Sprintf("/r/test/comments/abc/x/c%d/", i),
			})
		}
		writeListing(t, w, "t1", items, strconv.Itoa(start+n))
	}))
	defer srv.Close()

	c := NewClient(context.Background(), testLogger(), Config{
		BaseURL:    srv.URL,
		UserAgent:  "persona-test/1.0",
		HTTPClient: srv.Client(),
	})
	comments, err := c.Comments(context.Background(), "kojied", 150)
	if err != nil {
		t.Fatalf("Comments() error: %v", err)
	}
	if len(comments) != 150 {
		t.Fatalf("len(comments) = %d, want 150", len(comments))
	}
	if comments[0].Body != "comment 0" || comments[149].Body != "comment 149" {
		t.Errorf("unexpected ordering: first=%q last=%q", comments[0].Body, comments[149].Body)
	}
	if len(limits) != 2 || limits[0] != "100" || limits[1] != "50" {
		t.Errorf("page limits = %v, want [100 50]", limits)
	}
}

func TestSubmissionsStopsWhenCursorEmpty(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeListing(t, w, "t3", []map[string]any{
			{"id": "p1", "title": "Hello", "selftext": "", "is_self": false, "permalink": "/r/a/comments/p1/hello/"},
			{"id": "p2", "title": "Self", "selftext": "body text", "is_self": true, "permalink": "/r/a/comments/p2/self/"},
		}, "")
	}))
	defer srv.Close()

	c := NewClient(context.Background(), testLogger(), Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	posts, err := c.Submissions(context.Background(), "someone", 50)
	if err != nil {
		t.Fatalf("Submissions() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(posts) != 2 || !posts[1].IsSelf || posts[1].Selftext != "body text" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestUserNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	c := NewClient(context.Background(), testLogger(), Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.Comments(context.Background(), "ghost", 10)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Comments() error = %v, want ErrUserNotFound", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (404 is not retried)", calls)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeListing(t, w, "t1", []map[string]any{{"body": "finally"}}, "")
	}))
	defer srv.Close()

	c := NewClient(context.Background(), testLogger(), Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		RetryDelay: time.Millisecond,
	})
	comments, err := c.Comments(context.Background(), "busy", 5)
	if err != nil {
		t.Fatalf("Comments() error: %v", err)
	}
	if calls != 3 || len(comments) != 1 {
		t.Errorf("calls = %d, comments = %d", calls, len(comments))
	}
}

func TestOAuthMode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "cid" || secret != "csecret" {
			t.Errorf("basic auth = %q %q %v", id, secret, ok)
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("token User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`) //nolint:errcheck // test server
	})
	mux.HandleFunc("/user/kojied/comments", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		writeListing(t, w, "t1", []map[string]any{{"body": "via oauth"}}, "")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(context.Background(), testLogger(), Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/api/v1/access_token",
		HTTPClient:   srv.Client(),
	})
	comments, err := c.Comments(context.Background(), "kojied", 5)
	if err != nil {
		t.Fatalf("Comments() error: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "via oauth" {
		t.Errorf("comments = %+v", comments)
	}
}
