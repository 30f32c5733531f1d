package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/codeGROOVE-dev/retry"
)

// Defaults for the Together inference endpoint.
const (
	DefaultTogetherURL   = "https://api.together.ai/inference"
	DefaultTogetherModel = "meta-llama/Llama-4-Scout-17B-16E-Instruct"
)

// TogetherClient posts chat requests to a Together-style JSON inference endpoint.
type TogetherClient struct {
	httpClient *http.Client
	logger     Logger
	endpoint   string
	apiKey     string
	policy     Policy
}

// NewTogetherClient creates a client for endpoint. A nil httpClient gets DefaultRequestTimeout.
func NewTogetherClient(endpoint, apiKey string, httpClient *http.Client, policy Policy, logger Logger) *TogetherClient {
	if endpoint == "" {
		endpoint = DefaultTogetherURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &TogetherClient{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
		apiKey:     apiKey,
		policy:     policy,
	}
}

// Complete sends req and returns the resolved model text.
func (c *TogetherClient) Complete(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	var body []byte
	err = c.policy.Do(ctx, c.logger, "together", func(_ uint) error {
		var postErr error
		body, postErr = c.post(ctx, payload)
		return postErr
	})
	if err != nil {
		return "", err
	}

	resp, err := Resolve(body)
	if err != nil {
		c.logger.Debug("unexpected response format", "body", string(body), "error", err)
		return "", err
	}
	c.logger.Debug("resolved inference response", "shape", resp.Shape.String(), "length", len(resp.Text))
	return resp.Text, nil
}

// post performs one HTTP round trip. Undecodable bodies are unrecoverable.
func (c *TogetherClient) post(ctx context.Context, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", c.endpoint, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("inference response", "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("inference response content", "body", string(body))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		c.logger.Error("JSON decoding error", "body", string(body))
		return nil, retry.Unrecoverable(ErrMalformedResponse)
	}
	return body, nil
}
