package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"paperbrief/internal/config"
	"paperbrief/internal/domain"
	"paperbrief/internal/ports"
)

const defaultDetailSelector = "blockquote.abstract"

// AbstractResolver fetches detail pages for papers whose listing did not
// carry an abstract. Extraction failures become the placeholder value; this
// stage never fails the run.
type AbstractResolver struct {
	client    *http.Client
	selectors map[string]string
	delay     time.Duration
	logger    *slog.Logger
}

var _ ports.AbstractResolver = (*AbstractResolver)(nil)

// NewAbstractResolver builds the resolver with per-site detail selectors
// taken from the detailSelector option of each configured site.
func NewAbstractResolver(client *http.Client, sites []config.SiteConfig, logger *slog.Logger) *AbstractResolver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	selectors := make(map[string]string, len(sites))
	for _, site := range sites {
		if sel, ok := site.Options["detailSelector"]; ok && sel != "" {
			selectors[site.Name] = sel
		}
	}

	return &AbstractResolver{
		client:    client,
		selectors: selectors,
		delay:     time.Second,
		logger:    logger,
	}
}

// Resolve fills missing abstracts one paper at a time, with a politeness
// delay between successive detail-page fetches.
func (r *AbstractResolver) Resolve(ctx context.Context, papers []domain.Paper) []domain.Paper {
	fetched := false
	for i := range papers {
		if papers[i].Abstract != "" {
			continue
		}

		if fetched && r.delay > 0 {
			time.Sleep(r.delay)
		}
		fetched = true

		abstract, err := r.fetchAbstract(ctx, papers[i].URL, r.selectorFor(papers[i].Source))
		if err != nil {
			r.warn("abstract extraction failed", "url", papers[i].URL, "error", err)
			papers[i].Abstract = domain.AbstractNotFound
			continue
		}

		papers[i].Abstract = abstract
	}

	return papers
}

func (r *AbstractResolver) selectorFor(source string) string {
	if sel, ok := r.selectors[source]; ok {
		return sel
	}
	return defaultDetailSelector
}

func (r *AbstractResolver) fetchAbstract(ctx context.Context, pageURL, selector string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request detail page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("detail page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse detail page: %w", err)
	}

	text := doc.Find(selector).First().Text()
	text = strings.TrimPrefix(strings.TrimSpace(text), "Abstract:")
	text = normalizeSpace(text)
	if text == "" {
		return "", fmt.Errorf("selector %s matched no text", selector)
	}

	return text, nil
}

func (r *AbstractResolver) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
