package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paperbrief/internal/config"
	"paperbrief/internal/domain"
	"paperbrief/internal/scanner"
)

const (
	arxivAPIURL = "https://export.arxiv.org/api/query"
	userAgent   = "paperbrief/1.1 (research automation; contact via repository owner)"
)

var spaceExpr = regexp.MustCompile(`\s+`)

// atomFeed mirrors the subset of the arXiv Atom response the pipeline needs.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
}

// ArxivScanner queries the arXiv API for recent submissions matching the
// configured categories and topic vocabulary.
type ArxivScanner struct {
	client     *http.Client
	categories []string
	topics     []string
	logger     *slog.Logger
}

// NewArxivScanner wires an HTTP client and the query vocabulary.
func NewArxivScanner(client *http.Client, query config.QueryConfig, logger *slog.Logger) *ArxivScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ArxivScanner{
		client:     client,
		categories: query.Categories,
		topics:     query.Topics,
		logger:     logger,
	}
}

// Name identifies the strategy inside the registry.
func (a *ArxivScanner) Name() string {
	return "arxiv-api"
}

// Scan requests up to req.MaxResults entries sorted by submission date
// descending and converts well-formed ones into papers. Entries missing
// title, summary, or id are skipped.
func (a *ArxivScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Paper, error) {
	endpoint := req.Option("url", arxivAPIURL)

	query := url.Values{}
	query.Set("search_query", buildSearchQuery(a.categories, a.topics))
	query.Set("start", "0")
	query.Set("max_results", strconv.Itoa(req.MaxResults))
	query.Set("sortBy", "submittedDate")
	query.Set("sortOrder", "descending")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	papers := make([]domain.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		title := normalizeSpace(entry.Title)
		abstract := normalizeSpace(entry.Summary)
		id := strings.TrimSpace(entry.ID)
		if title == "" || abstract == "" || id == "" {
			a.debug("skip malformed entry", "id", id)
			continue
		}

		papers = append(papers, domain.Paper{
			Title:     title,
			Abstract:  abstract,
			URL:       id,
			Source:    req.SiteName,
			Published: strings.TrimSpace(entry.Published),
		})
	}

	a.debug("feed scanned", "entries", len(feed.Entries), "papers", len(papers))
	return papers, nil
}

// buildSearchQuery joins category codes and quoted topic terms into the
// arXiv boolean search expression, e.g.
// (cat:cs.HC OR cat:cs.CY) AND (all:"HCI" OR all:"attention").
func buildSearchQuery(categories, topics []string) string {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, "cat:"+c)
	}

	terms := make([]string, 0, len(topics))
	for _, t := range topics {
		terms = append(terms, fmt.Sprintf("all:%q", t))
	}

	switch {
	case len(cats) == 0:
		return "(" + strings.Join(terms, " OR ") + ")"
	case len(terms) == 0:
		return "(" + strings.Join(cats, " OR ") + ")"
	default:
		return fmt.Sprintf("(%s) AND (%s)",
			strings.Join(cats, " OR "),
			strings.Join(terms, " OR "))
	}
}

func normalizeSpace(value string) string {
	return spaceExpr.ReplaceAllString(strings.TrimSpace(value), " ")
}

func (a *ArxivScanner) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
