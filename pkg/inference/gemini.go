package inference

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured for the Gemini backend.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// DefaultRequestTimeout bounds each inference attempt.
const DefaultRequestTimeout = 30 * time.Second

// GeminiClient completes requests through Google's genai SDK.
type GeminiClient struct {
	client     *genai.Client
	logger     Logger
	apiKey     string
	gcpProject string
	baseURL    string
	policy     Policy
	timeout    time.Duration
}

// NewGeminiClient creates a Gemini backend. Without an API key it uses Vertex AI
// with Application Default Credentials.
func NewGeminiClient(apiKey, gcpProject string, policy Policy, logger Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		gcpProject: gcpProject,
		policy:     policy,
		logger:     logger,
		timeout:    DefaultRequestTimeout,
	}
}

// Complete sends req to Gemini and returns the first candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	client, err := c.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	modelName, contents, genConfig := c.configureRequest(req)

	var resp *genai.GenerateContentResponse
	err = c.policy.Do(ctx, c.logger, "gemini", func(_ uint) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		var genErr error
		resp, genErr = client.Models.GenerateContent(attemptCtx, modelName, contents, genConfig)
		return genErr
	})
	if err != nil {
		return "", err
	}

	out, err := resolveCandidate(resp)
	if err != nil {
		c.logger.Debug("unexpected Gemini response", "error", err)
		return "", err
	}
	return out.Text, nil
}

// genaiClient creates the SDK client on first use.
func (c *GeminiClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	var config *genai.ClientConfig
	if c.apiKey != "" {
		config = &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			APIKey:  c.apiKey,
		}
		c.logger.Info("Using Gemini API with API key")
	} else {
		projectID := c.projectID()
		config = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  projectID,
			Location: "us-central1",
		}
		c.logger.Info("Using Vertex AI with Application Default Credentials", "project", projectID, "location", "us-central1")
	}

	if c.baseURL != "" {
		config.HTTPOptions.BaseURL = c.baseURL
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	c.client = client
	return client, nil
}

func (c *GeminiClient) projectID() string {
	if c.gcpProject != "" {
		return c.gcpProject
	}
	if projectID := os.Getenv("GCP_PROJECT"); projectID != "" {
		return projectID
	}
	return os.Getenv("GOOGLE_CLOUD_PROJECT")
}

// configureRequest maps a chat request onto genai contents and generation config.
func (c *GeminiClient) configureRequest(req Request) (string, []*genai.Content, *genai.GenerateContentConfig) {
	modelName := req.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	modelName = strings.TrimPrefix(modelName, "models/")

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	temperature := float32(req.Temperature)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(req.MaxTokens), //nolint:gosec // token limits are small constants
	}
	return modelName, contents, genConfig
}

// resolveCandidate is the genai counterpart of Resolve.
func resolveCandidate(resp *genai.GenerateContentResponse) (Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Response{}, fmt.Errorf("%w: no candidates", ErrUnrecognizedShape)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return Response{}, fmt.Errorf("%w: no content parts", ErrUnrecognizedShape)
	}
	return Response{Shape: ShapeGeminiCandidate, Text: strings.TrimSpace(candidate.Content.Parts[0].Text)}, nil
}
