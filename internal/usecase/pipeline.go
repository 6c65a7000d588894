package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paperbrief/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.PaperSource
	Resolver   ports.AbstractResolver
	Summarizer ports.Summarizer
	Writer     ports.ResultWriter
	Logger     *slog.Logger
}

// Pipeline implements the brief-generation workflow: source reader, abstract
// resolver, summarizer, result writer, strictly in that order. Every stage
// iterates the collection in source-emission order; nothing re-sorts it.
type Pipeline struct {
	source     ports.PaperSource
	resolver   ports.AbstractResolver
	summarizer ports.Summarizer
	writer     ports.ResultWriter
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		resolver:   deps.Resolver,
		summarizer: deps.Summarizer,
		writer:     deps.Writer,
		logger:     deps.Logger,
	}
}

// Run executes one full pass and writes the dated result files. A run that
// collects no papers ends quietly without writing output.
func (p *Pipeline) Run(ctx context.Context, day time.Time) error {
	if p.source == nil {
		return nil
	}

	papers, err := p.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}
	p.info("papers collected", "count", len(papers))

	if len(papers) == 0 {
		p.warn("no papers collected, nothing to write")
		return nil
	}

	if p.resolver != nil {
		papers = p.resolver.Resolve(ctx, papers)
	}

	if p.summarizer != nil {
		papers = p.summarizer.Summarize(ctx, papers)
	}

	if p.writer == nil {
		return nil
	}

	if err := p.writer.Write(papers, day); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	p.info("daily brief generated", "papers", len(papers), "date", day.UTC().Format("2006-01-02"))
	return nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
