package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"paperbrief/internal/config"
	"paperbrief/internal/domain"
	"paperbrief/internal/ports"
	"paperbrief/internal/scanner"
)

// StrategySource implements PaperSource via registered scanner strategies.
// A site whose listing fetch fails contributes nothing and is reported; the
// remaining sites still run. The aggregate error surfaces only when no site
// produced papers.
type StrategySource struct {
	registry   *scanner.Registry
	sites      []config.SiteConfig
	maxResults int
	logger     *slog.Logger
}

var _ ports.PaperSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, maxResults int, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:   reg,
		sites:      sites,
		maxResults: maxResults,
		logger:     log,
	}
}

// Fetch iterates over configured sites and executes their scanners in order.
func (s *StrategySource) Fetch(ctx context.Context) ([]domain.Paper, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	var (
		aggregated []domain.Paper
		errs       []error
	)

	for _, site := range s.sites {
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			s.error("site skipped", "site", site.Name, "error", err)
			errs = append(errs, fmt.Errorf("site %s: %w", site.Name, err))
			continue
		}

		req := scanner.Request{
			SiteName:   site.Name,
			MaxResults: s.maxResults,
			Options:    site.Options,
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			s.error("listing fetch failed", "site", site.Name, "error", err)
			errs = append(errs, fmt.Errorf("scan site %s: %w", site.Name, err))
			continue
		}

		for i := range results {
			if results[i].Source == "" {
				results[i].Source = site.Name
			}
		}
		s.info("site scanned", "site", site.Name, "papers", len(results))
		aggregated = append(aggregated, results...)
	}

	if len(aggregated) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return aggregated, nil
}

func (s *StrategySource) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *StrategySource) error(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
