// Package ingest feeds the content queue from configured upstream sources.
package ingest

import (
	"context"
	"fmt"

	"ContentTriage/internal/domain"
)

// Request carries all parameters required to pull one configured source.
type Request struct {
	SourceName string
	URL        string
	Selectors  map[string]string
}

// Connector captures a single source-format implementation (RSS, HTML
// listings, etc.).
type Connector interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.IngestedContent, error)
}

// Registry keeps a mapping from connector names to their implementations.
type Registry struct {
	connectors map[string]Connector
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{connectors: map[string]Connector{}}
}

// Register adds or replaces a connector implementation.
func (r *Registry) Register(connector Connector) {
	if r.connectors == nil {
		r.connectors = map[string]Connector{}
	}
	r.connectors[connector.Name()] = connector
}

// Resolve returns a connector by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Connector, error) {
	if connector, ok := r.connectors[name]; ok {
		return connector, nil
	}
	return nil, fmt.Errorf("connector %s is not registered", name)
}
