package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"paperbrief/internal/config"
	"paperbrief/internal/infrastructure/feed"
	"paperbrief/internal/infrastructure/llm"
	"paperbrief/internal/infrastructure/parser"
	"paperbrief/internal/infrastructure/report"
	"paperbrief/internal/logging"
	"paperbrief/internal/ports"
	"paperbrief/internal/scanner"
	"paperbrief/internal/usecase"
)

// Application wires configuration to adapters and the pipeline use case.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	registry := scanner.NewRegistry()
	registry.Register(feed.NewArxivScanner(httpClient, cfg.Query, baseLogger.With("component", "scanner.arxiv-api")))
	registry.Register(parser.NewListingScanner(httpClient, baseLogger.With("component", "scanner.html-listing")))

	source := parser.NewStrategySource(registry, cfg.Sites, cfg.Query.MaxResults, baseLogger.With("component", "source"))
	resolver := parser.NewAbstractResolver(httpClient, cfg.Sites, baseLogger.With("component", "resolver"))

	var completer ports.ChatCompleter
	if cfg.OpenAI.APIKey != "" {
		completer = llm.NewOpenAIClient(cfg.OpenAI)
	}
	summarizer := usecase.NewSummarizer(completer, baseLogger.With("component", "summarizer"))

	writer := report.NewWriter(cfg.Output.Dir, cfg.Report, baseLogger.With("component", "writer"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Resolver:   resolver,
		Summarizer: summarizer,
		Writer:     writer,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}
}

// Run performs a single pipeline execution for the current UTC date.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	return a.pipeline.Run(ctx, time.Now().UTC())
}
