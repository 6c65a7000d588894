package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperbrief/internal/config"
	"paperbrief/internal/domain"
	"paperbrief/internal/ports"
)

// Fallback literals used in the Markdown digest for absent optional fields.
const (
	publishedFallback = "unknown"
	summaryFallback   = "Not available"
)

// Writer persists the final paper collection as a dated JSON file and a
// dated Markdown digest. Re-running on the same date overwrites both files.
type Writer struct {
	dir        string
	title      string
	topicsLine string
	logger     *slog.Logger
}

var _ ports.ResultWriter = (*Writer)(nil)

// NewWriter wires the output directory and digest header settings.
func NewWriter(dir string, report config.ReportConfig, logger *slog.Logger) *Writer {
	if dir == "" {
		dir = "summaries"
	}
	return &Writer{
		dir:        dir,
		title:      report.Title,
		topicsLine: report.TopicsLine,
		logger:     logger,
	}
}

// Write serializes papers in input order, keyed by the UTC date of day.
func (w *Writer) Write(papers []domain.Paper, day time.Time) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	dateStr := day.UTC().Format("2006-01-02")
	jsonPath := filepath.Join(w.dir, fmt.Sprintf("articles_%s.json", dateStr))
	mdPath := filepath.Join(w.dir, fmt.Sprintf("articles_%s.md", dateStr))

	if err := w.writeJSON(jsonPath, papers); err != nil {
		return err
	}
	if err := w.writeMarkdown(mdPath, papers, dateStr); err != nil {
		return err
	}

	w.info("results saved", "json", jsonPath, "markdown", mdPath, "papers", len(papers))
	return nil
}

func (w *Writer) writeJSON(path string, papers []domain.Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(papers); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writeMarkdown(path string, papers []domain.Paper, dateStr string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s – %s (UTC)\n\n", w.title, dateStr)
	if w.topicsLine != "" {
		fmt.Fprintf(&b, "%s\n\n", w.topicsLine)
	}

	for _, paper := range papers {
		published := paper.Published
		if published == "" {
			published = publishedFallback
		}
		summary := paper.AISummary
		if summary == "" {
			summary = summaryFallback
		}

		fmt.Fprintf(&b, "## %s\n", paper.Title)
		fmt.Fprintf(&b, "- **Source:** %s\n", paper.Source)
		fmt.Fprintf(&b, "- **Published:** %s\n", published)
		fmt.Fprintf(&b, "- **URL:** %s\n\n", paper.URL)
		fmt.Fprintf(&b, "**Abstract**\n%s\n\n", paper.Abstract)
		fmt.Fprintf(&b, "**AI Summary**\n%s\n\n", summary)
		b.WriteString("---\n\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *Writer) info(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}
