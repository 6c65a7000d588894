package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paperbrief/internal/domain"
	"paperbrief/internal/ports"
)

// Summarizer attaches AI summaries to papers through a ChatCompleter. With a
// nil completer (no configured credential) the stage is a pass-through. A
// single paper's failure is recorded as placeholder text and never aborts
// the batch.
type Summarizer struct {
	completer ports.ChatCompleter
	delay     time.Duration
	logger    *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer wires the completion backend; completer may be nil.
func NewSummarizer(completer ports.ChatCompleter, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		completer: completer,
		delay:     300 * time.Millisecond,
		logger:    logger,
	}
}

// Summarize walks papers in order, requesting one completion per paper with
// a fixed delay between requests.
func (s *Summarizer) Summarize(ctx context.Context, papers []domain.Paper) []domain.Paper {
	if s.completer == nil {
		s.info("no credential configured, skipping AI summaries")
		return papers
	}

	for i := range papers {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		s.info("summarizing paper",
			"index", i+1,
			"total", len(papers),
			"title", truncate(papers[i].Title, 80))

		summary, err := s.completer.Complete(ctx, buildPrompt(papers[i]))
		if err != nil {
			s.warn("summary request failed", "url", papers[i].URL, "error", err)
			papers[i].AISummary = domain.SummaryUnavailable
			continue
		}

		papers[i].AISummary = summary
	}

	return papers
}

func buildPrompt(paper domain.Paper) string {
	return fmt.Sprintf(
		"You are helping with a daily research brief for HCI/CMC in advertising and communication.\n"+
			"Summarize this paper in 3 concise bullet points covering: \n"+
			"1) research question/theory, 2) method/context, 3) practical implications for communication/advertising.\n"+
			"Then add one line: 'Relevance tags:' with 2-4 tags chosen from "+
			"[attention, cognitive-offloading, genAI, VR, CMC, HCI, advertising].\n\n"+
			"Title: %s\nAbstract: %s",
		paper.Title, paper.Abstract)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}

func (s *Summarizer) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Summarizer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
