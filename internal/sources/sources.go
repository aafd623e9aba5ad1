package sources

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/dataset"
	"github.com/spigell/grant-matcher/internal/grants"
)

// DemoName is the name of the built-in offline source.
const DemoName = "demo"

// ErrUnsupportedSource is returned when a source name is not registered.
var ErrUnsupportedSource = errors.New("unsupported source")

// Source supplies funding opportunities.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]*grants.Opportunity, error)
}

type Registry struct {
	sources map[string]Source
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{sources: make(map[string]Source), logger: logger}
}

// Register adds src under its normalized name, replacing any source with the same name.
func (r *Registry) Register(src Source) {
	r.sources[normalize(src.Name())] = src
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Fetch returns the opportunities of the named source. Names are matched case-insensitively
// after trimming spaces.
func (r *Registry) Fetch(ctx context.Context, name string) ([]*grants.Opportunity, error) {
	src, ok := r.sources[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w '%s'. Available sources: %s", ErrUnsupportedSource, name, strings.Join(r.Names(), ", "))
	}

	opps, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s source: %w", src.Name(), err)
	}

	r.logger.Debug("fetched opportunities", zap.String("source", src.Name()), zap.Int("count", len(opps)))
	return opps, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DatasetSource serves the opportunities of an in-memory dataset.
type DatasetSource struct {
	name string
	ds   *dataset.Dataset
}

// NewDataset returns a source named name serving ds.
func NewDataset(name string, ds *dataset.Dataset) *DatasetSource {
	return &DatasetSource{name: name, ds: ds}
}

// NewDemo returns the built-in demo source backed by the demo dataset.
func NewDemo() *DatasetSource {
	return NewDataset(DemoName, dataset.Demo())
}

func (s *DatasetSource) Name() string { return s.name }

// Fetch returns copies of the dataset opportunities in dataset order.
func (s *DatasetSource) Fetch(ctx context.Context) ([]*grants.Opportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opps := make([]*grants.Opportunity, 0, len(s.ds.Opportunities))
	for _, opp := range s.ds.Opportunities {
		cp, err := grants.NewOpportunity(*opp)
		if err != nil {
			return nil, err
		}
		opps = append(opps, cp)
	}
	return opps, nil
}
