package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lawdesk/internal/config"
	"lawdesk/internal/gemini"
	"lawdesk/internal/logging"
	"lawdesk/internal/resolver"
	"lawdesk/internal/topics"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lawdesk",
	Short: "Legal information assistant for questions about Indian law",
	Long: `lawdesk answers free-text questions about Indian law. Common topics are
answered from a built-in table; everything else is forwarded to the Gemini API.
Running without a subcommand starts the HTTP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// loadTopics reads TOPICS_FILE, or the embedded table when it is unset.
func loadTopics() (*topics.Table, error) {
	table, err := topics.Load(cfg.TopicsFile)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	logger.Info("topic table loaded", zap.Int("topics", table.Len()))
	return table, nil
}

// newGenerator builds the upstream client. Tests replace it.
var newGenerator = func(ctx context.Context) resolver.Generator {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, upstream calls will fail")
	}

	return gemini.New(ctx, gemini.Config{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		BaseURL:        cfg.GeminiBaseURL,
		Timeout:        cfg.GeminiTimeout,
		RenderMarkdown: cfg.RenderMarkdown,
	})
}

// newResolver builds the topic table and upstream client shared by the answering commands.
func newResolver(ctx context.Context, opts ...resolver.Option) (*resolver.Resolver, error) {
	table, err := loadTopics()
	if err != nil {
		return nil, err
	}

	policy := resolver.Policy{
		Attempts: cfg.RetryAttempts,
		Delay:    cfg.RetryDelay,
		Timeout:  cfg.GeminiTimeout,
	}

	opts = append([]resolver.Option{resolver.WithLogger(logger)}, opts...)
	return resolver.New(table, newGenerator(ctx), policy, opts...), nil
}
