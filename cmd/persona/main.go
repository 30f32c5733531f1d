// Package main implements the persona CLI, which builds a Markdown user persona from a Reddit profile.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/redditpersona/pkg/config"
	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
	"github.com/codeGROOVE-dev/redditpersona/pkg/persona"
	"github.com/codeGROOVE-dev/redditpersona/pkg/reddit"
)

var (
	profileURL = flag.String("url", "", "Reddit profile URL, e.g. https://www.reddit.com/user/kojied/ (required)")
	outputPath = flag.String("output", "", "Path of the Markdown report to write (required)")
	provider   = flag.String("provider", "", "Inference provider: together or gemini (or set PERSONA_PROVIDER)")
	model      = flag.String("model", "", "Model name (or set PERSONA_MODEL)")
	endpoint   = flag.String("endpoint", "", "Together inference endpoint (or set TOGETHER_API_URL)")
	limit      = flag.Int("limit", 0, "Number of comments and of posts to fetch (or set PERSONA_LIMIT)")
	configPath = flag.String("config", "", "Optional TOML config file")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("persona CLI v1.0.0")
		return
	}

	if *profileURL == "" || *outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -url <reddit-profile-url> -output <file.md> [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not load .env", "error", err)
	}

	if err := run(logger); err != nil {
		if errors.Is(err, persona.ErrInvalidInput) {
			fmt.Fprintln(os.Stderr, "Invalid Reddit profile URL.")
			os.Exit(1)
		}
		logFailure(logger, err)
		color.Red("FATAL: %v", err)
		os.Exit(1)
	}
}

// logFailure records a failed run along with the chain of wrapped error types.
func logFailure(logger *slog.Logger, err error) {
	var chain []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, fmt.Sprintf("%T", e))
	}
	user, _ := persona.UsernameFromURL(*profileURL)
	logger.Error("persona run failed",
		"user", user,
		"url", *profileURL,
		"output", *outputPath,
		"error", err,
		"chain", strings.Join(chain, " <- "))
}

func run(logger *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		return err
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	redditClient := reddit.NewClient(ctx, logger, reddit.Config{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		UserAgent:    cfg.Reddit.UserAgent,
		BaseURL:      cfg.Reddit.BaseURL,
	})

	llm := newCompleter(cfg, logger)

	builder := persona.New(redditClient, llm,
		persona.WithLogger(logger),
		persona.WithLimit(cfg.Pipeline.Limit),
		persona.WithModel(cfg.Model()),
		persona.WithCallDelay(cfg.Pipeline.CallDelay.Duration),
	)

	start := time.Now()
	report, err := builder.WriteReport(ctx, *profileURL, *outputPath)
	if err != nil {
		return err
	}

	color.Green("Persona for u/%s written to %s", report.Username, *outputPath)
	logger.Debug("run complete", "items", report.Items, "traits", report.TraitCount, "elapsed", time.Since(start))
	return nil
}

func applyFlags(cfg *config.Config) {
	if *provider != "" {
		cfg.Inference.Provider = *provider
	}
	if *model != "" {
		cfg.Inference.Model = *model
	}
	if *endpoint != "" {
		cfg.Inference.Endpoint = *endpoint
	}
	if *limit > 0 {
		cfg.Pipeline.Limit = *limit
	}
}

func newCompleter(cfg config.Config, logger *slog.Logger) inference.Completer {
	if cfg.Inference.Provider == config.ProviderGemini {
		if cfg.Inference.GeminiAPIKey == "" && cfg.Inference.GCPProject == "" {
			color.Yellow("Warning: neither GEMINI_API_KEY nor GCP_PROJECT is set; trait extraction will fail")
		}
		return inference.NewGeminiClient(cfg.Inference.GeminiAPIKey, cfg.Inference.GCPProject, cfg.Policy(), logger)
	}
	if cfg.Inference.APIKey == "" {
		color.Yellow("Warning: TOGETHER_API_KEY is not set; trait extraction will fail")
	}
	return inference.NewTogetherClient(cfg.Inference.Endpoint, cfg.Inference.APIKey, nil, cfg.Policy(), logger)
}
