package persona

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
	"github.com/codeGROOVE-dev/redditpersona/pkg/reddit"
)

type fakeContent struct {
	commentsErr    error
	submissionsErr error
	comments       []reddit.Comment
	submissions    []reddit.Submission
	calls          int
}

func (f *fakeContent) Comments(_ context.Context, _ string, _ int) ([]reddit.Comment, error) {
	f.calls++
	return f.comments, f.commentsErr
}

func (f *fakeContent) Submissions(_ context.Context, _ string, _ int) ([]reddit.Submission, error) {
	f.calls++
	return f.submissions, f.submissionsErr
}

// fakeCompleter replies with outputs in order, repeating the last one.
type fakeCompleter struct {
	err      error
	outputs  []string
	requests []inference.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req inference.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.outputs) == 0 {
		return "", errors.New("no scripted output")
	}
	i := min(len(f.requests)-1, len(f.outputs)-1)
	return f.outputs[i], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestBuilder(content ContentAPI, llm inference.Completer, opts ...Option) *Builder {
	base := []Option{WithLogger(discardLogger()), WithSleeper(noSleep), WithModel("test-model")}
	return New(content, llm, append(base, opts...)...)
}
