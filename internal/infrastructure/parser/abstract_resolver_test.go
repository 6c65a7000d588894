package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperbrief/internal/config"
	"paperbrief/internal/domain"
)

func TestResolveFillsMissingAbstract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<html><body>
		  <blockquote class="abstract">Abstract:  Resolved   abstract text.</blockquote>
		</body></html>`))
	}))
	defer server.Close()

	resolver := NewAbstractResolver(server.Client(), nil, nil)
	resolver.delay = 0

	papers := resolver.Resolve(context.Background(), []domain.Paper{
		{Title: "Needs Resolution", URL: server.URL + "/abs/1111.1111", Source: "arxiv-new"},
		{Title: "Already Has One", URL: server.URL + "/abs/2222.2222", Source: "arxiv-new", Abstract: "kept as is"},
	})

	if papers[0].Abstract != "Resolved abstract text." {
		t.Fatalf("unexpected abstract: %q", papers[0].Abstract)
	}
	if papers[1].Abstract != "kept as is" {
		t.Fatalf("existing abstract was overwritten: %q", papers[1].Abstract)
	}
}

func TestResolveRecordsPlaceholderOnFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewAbstractResolver(server.Client(), nil, nil)
	resolver.delay = 0

	papers := resolver.Resolve(context.Background(), []domain.Paper{
		{Title: "First", URL: server.URL + "/abs/1"},
		{Title: "Second", URL: server.URL + "/abs/2"},
	})

	for i, p := range papers {
		if p.Abstract != domain.AbstractNotFound {
			t.Fatalf("paper %d: expected placeholder, got %q", i, p.Abstract)
		}
	}
}

func TestResolveRecordsPlaceholderOnSelectorMiss(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>no abstract markup here</p></body></html>`))
	}))
	defer server.Close()

	resolver := NewAbstractResolver(server.Client(), nil, nil)
	resolver.delay = 0

	papers := resolver.Resolve(context.Background(), []domain.Paper{
		{Title: "Missing Markup", URL: server.URL + "/abs/1"},
	})

	if papers[0].Abstract != domain.AbstractNotFound {
		t.Fatalf("expected placeholder, got %q", papers[0].Abstract)
	}
}

func TestResolveUsesSiteSelector(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<html><body>
		  <blockquote class="abstract">wrong markup</blockquote>
		  <section id="summary">Journal abstract body.</section>
		</body></html>`))
	}))
	defer server.Close()

	sites := []config.SiteConfig{
		{
			Name:    "journal",
			Scanner: "html-listing",
			Options: map[string]string{"detailSelector": "section#summary"},
		},
	}

	resolver := NewAbstractResolver(server.Client(), sites, nil)
	resolver.delay = 0

	papers := resolver.Resolve(context.Background(), []domain.Paper{
		{Title: "Journal Paper", URL: server.URL + "/article/1", Source: "journal"},
	})

	if papers[0].Abstract != "Journal abstract body." {
		t.Fatalf("site selector not used, got %q", papers[0].Abstract)
	}
}
