package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"ContentTriage/internal/config"
	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
)

// StrategySource implements ports.ContentSource via registered connectors.
// A failing source is skipped so the remaining sources still contribute.
type StrategySource struct {
	registry *Registry
	sources  []config.SourceConfig
	logger   *slog.Logger
}

var _ ports.ContentSource = (*StrategySource)(nil)

// NewStrategySource wires the connector registry with config-defined sources.
func NewStrategySource(reg *Registry, sources []config.SourceConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		logger:   log,
	}
}

// FetchAll iterates over configured sources and executes their connectors.
func (s *StrategySource) FetchAll(ctx context.Context) ([]domain.IngestedContent, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("connector registry is not configured")
	}

	s.debug("fetch sources", "sources", len(s.sources))

	var aggregated []domain.IngestedContent
	var failed int
	for _, source := range s.sources {
		connector, err := s.registry.Resolve(source.Connector)
		if err != nil {
			s.warn("skip source", "source", source.Name, "error", err)
			failed++
			continue
		}

		req := Request{
			SourceName: source.Name,
			URL:        source.URL,
			Selectors:  source.Selectors,
		}

		results, err := connector.Fetch(ctx, req)
		if err != nil {
			s.warn("source fetch failed", "source", source.Name, "error", err)
			failed++
			continue
		}

		s.debug("source produced items", "source", source.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	if failed > 0 && failed == len(s.sources) {
		return nil, fmt.Errorf("all %d sources failed", failed)
	}

	s.debug("strategy source done", "total_items", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
