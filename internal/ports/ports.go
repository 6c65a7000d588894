package ports

import (
	"context"
	"time"

	"paperbrief/internal/domain"
)

// PaperSource pulls fresh papers from the configured upstream listings.
type PaperSource interface {
	Fetch(ctx context.Context) ([]domain.Paper, error)
}

// AbstractResolver fills in abstracts for papers whose listing omitted them.
// Failures are recorded as placeholder text, never returned.
type AbstractResolver interface {
	Resolve(ctx context.Context, papers []domain.Paper) []domain.Paper
}

// Summarizer attaches AI summaries to papers. A run without a configured
// credential passes papers through unmodified.
type Summarizer interface {
	Summarize(ctx context.Context, papers []domain.Paper) []domain.Paper
}

// ChatCompleter sends a single prompt to a text-generation API and returns
// the raw completion text.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ResultWriter persists the final ordered collection, keyed by the run date.
type ResultWriter interface {
	Write(papers []domain.Paper, day time.Time) error
}
