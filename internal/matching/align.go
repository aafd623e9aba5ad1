package matching

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/grant-matcher/internal/filtering"
	"github.com/spigell/grant-matcher/internal/grants"
)

const defaultTopLimit = 3

// Aligner scores organizations against opportunities.
type Aligner struct {
	logger  *zap.Logger
	workers int
}

// NewAligner returns an Aligner scoring pairs on up to workers goroutines.
// A non-positive workers value uses GOMAXPROCS.
func NewAligner(logger *zap.Logger, workers int) *Aligner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Aligner{logger: logger, workers: workers}
}

// Align scores every organization against every opportunity and sorts the results by
// descending score. Ties keep generation order: organizations outer, opportunities inner.
func (a *Aligner) Align(ctx context.Context, orgs []*grants.Organization, opps []*grants.Opportunity) ([]*grants.AlignmentResult, error) {
	results := make([]*grants.AlignmentResult, len(orgs)*len(opps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, org := range orgs {
		for j, opp := range opps {
			idx := i*len(opps) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[idx] = Score(org, opp)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	grants.SortByScore(results)

	a.logger.Debug("alignment completed",
		zap.Int("organizations", len(orgs)),
		zap.Int("opportunities", len(opps)),
		zap.Int("alignments", len(results)),
	)

	return results, nil
}

// Align scores every pair with default settings. It never fails.
func Align(orgs []*grants.Organization, opps []*grants.Opportunity) []*grants.AlignmentResult {
	// Background is never cancelled, so Align cannot return an error here.
	results, _ := NewAligner(nil, 0).Align(context.Background(), orgs, opps)
	return results
}

// TopOptions configures TopForOrganization. Theme filtering is not offered here.
type TopOptions struct {
	Limit              int
	MinScore           float64
	RequireRegionMatch bool
}

// TopForOrganization returns the best scoring opportunities for org, at most opts.Limit
// of them. A non-positive limit means 3.
func TopForOrganization(org *grants.Organization, opps []*grants.Opportunity, opts TopOptions) []*grants.AlignmentResult {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	scored := make([]*grants.AlignmentResult, 0, len(opps))
	for _, opp := range opps {
		scored = append(scored, Score(org, opp))
	}

	filtered := filtering.Apply(scored, filtering.Options{
		MinScore:           opts.MinScore,
		RequireRegionMatch: opts.RequireRegionMatch,
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
