package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"paperbrief/internal/domain"
	"paperbrief/internal/scanner"
)

const userAgent = "paperbrief/1.1 (research automation; contact via repository owner)"

var (
	dateExpr  = regexp.MustCompile(`\d{1,2} [A-Za-z]{3} \d{4}`)
	spaceExpr = regexp.MustCompile(`\s+`)
)

// Default selectors match the arXiv listing markup; other sources override
// them through site options.
const (
	defaultEntrySelector       = "dl > dt"
	defaultDescriptionSelector = "dl > dd"
	defaultTitleSelector       = ".list-title"
	defaultLinkSelector        = `a[href*="/abs/"]`
	defaultDateSelector        = ".list-date"
)

// ListingScanner extracts papers from an HTML listing page. Entry nodes and
// description nodes are paired positionally: entry i goes with description i,
// and a page with mismatched counts is truncated to the shorter list.
type ListingScanner struct {
	client *http.Client
	logger *slog.Logger
}

// NewListingScanner wires an HTTP client for listing fetches.
func NewListingScanner(client *http.Client, logger *slog.Logger) *ListingScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ListingScanner{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *ListingScanner) Name() string {
	return "html-listing"
}

// Scan fetches the configured listing page and converts entry/description
// pairs into papers. Pairs whose title node is absent are skipped.
func (s *ListingScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Paper, error) {
	listingURL := req.Option("listingUrl", "")
	if listingURL == "" {
		return nil, fmt.Errorf("site %s: listingUrl option is required", req.SiteName)
	}
	baseURL := req.Option("baseUrl", "")

	doc, err := s.fetchDocument(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteName, err)
	}

	entries := doc.Find(req.Option("entrySelector", defaultEntrySelector))
	descriptions := doc.Find(req.Option("descriptionSelector", defaultDescriptionSelector))

	count := entries.Length()
	if descriptions.Length() < count {
		count = descriptions.Length()
	}
	if entries.Length() != descriptions.Length() {
		s.debug("entry/description count mismatch",
			"site", req.SiteName,
			"entries", entries.Length(),
			"descriptions", descriptions.Length())
	}

	titleSel := req.Option("titleSelector", defaultTitleSelector)
	linkSel := req.Option("linkSelector", defaultLinkSelector)
	dateSel := req.Option("dateSelector", defaultDateSelector)
	abstractSel := req.Options["abstractSelector"]

	papers := make([]domain.Paper, 0, count)
	for i := 0; i < count; i++ {
		if req.MaxResults > 0 && len(papers) >= req.MaxResults {
			break
		}

		entry := entries.Eq(i)
		description := descriptions.Eq(i)

		paper, ok := parseListingPair(entry, description, pairSelectors{
			title:    titleSel,
			link:     linkSel,
			date:     dateSel,
			abstract: abstractSel,
		}, baseURL, req.SiteName)
		if !ok {
			continue
		}

		papers = append(papers, paper)
	}

	s.debug("listing scanned", "site", req.SiteName, "pairs", count, "papers", len(papers))
	return papers, nil
}

func (s *ListingScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

type pairSelectors struct {
	title    string
	link     string
	date     string
	abstract string
}

func parseListingPair(entry, description *goquery.Selection, sel pairSelectors, baseURL, siteName string) (domain.Paper, bool) {
	titleNode := description.Find(sel.title).First()
	if titleNode.Length() == 0 {
		return domain.Paper{}, false
	}

	title := strings.TrimPrefix(strings.TrimSpace(titleNode.Text()), "Title:")
	title = normalizeSpace(title)
	if title == "" {
		return domain.Paper{}, false
	}

	href, exists := entry.Find(sel.link).First().Attr("href")
	if !exists || href == "" {
		return domain.Paper{}, false
	}
	if !strings.HasPrefix(href, "http") {
		href = strings.TrimSuffix(baseURL, "/") + href
	}

	var published string
	if dateText := description.Find(sel.date).First().Text(); dateText != "" {
		published = dateExpr.FindString(dateText)
	}

	var abstract string
	if sel.abstract != "" {
		abstract = description.Find(sel.abstract).First().Text()
		abstract = strings.TrimPrefix(strings.TrimSpace(abstract), "Abstract:")
		abstract = normalizeSpace(abstract)
	}

	return domain.Paper{
		Title:     title,
		Abstract:  abstract,
		URL:       href,
		Source:    siteName,
		Published: published,
	}, true
}

func normalizeSpace(value string) string {
	return spaceExpr.ReplaceAllString(strings.TrimSpace(value), " ")
}

func (s *ListingScanner) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
