package filtering

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/grants"
)

const (
	minScoreName    = "min_score"
	regionMatchName = "region_match"
	themeName       = "theme"
)

type minScoreFilter struct {
	disabled bool
	reason   string
	minScore float64
}

// NewMinScore creates a filter that drops results scoring below minScore.
func NewMinScore(minScore float64) Filter {
	return &minScoreFilter{minScore: minScore}
}

func (f *minScoreFilter) Name() string { return minScoreName }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Apply(logger *zap.Logger, results []*grants.AlignmentResult) ([]*grants.AlignmentResult, Step) {
	kept, info := keep(results, func(r *grants.AlignmentResult) bool {
		return r.Score >= f.minScore
	})
	if info.Dropped > 0 {
		logger.Debug("excluding alignments below minimum score",
			zap.Float64("min_score", f.minScore),
			zap.Int("alignments_left", info.Left),
		)
	}
	return kept, info
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": fmt.Sprintf("%.2f", f.minScore)},
	}
}

type regionMatchFilter struct {
	disabled bool
	reason   string
}

// NewRegionMatch creates a filter that keeps only results whose regions match.
func NewRegionMatch() Filter {
	return &regionMatchFilter{}
}

func (f *regionMatchFilter) Name() string { return regionMatchName }

func (f *regionMatchFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *regionMatchFilter) IsEnabled() bool { return !f.disabled }

func (f *regionMatchFilter) Apply(logger *zap.Logger, results []*grants.AlignmentResult) ([]*grants.AlignmentResult, Step) {
	kept, info := keep(results, func(r *grants.AlignmentResult) bool {
		return r.RegionMatch
	})
	if info.Dropped > 0 {
		logger.Debug("excluding alignments outside the organization region", zap.Int("alignments_left", info.Left))
	}
	return kept, info
}

func (f *regionMatchFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type themeFilter struct {
	disabled bool
	reason   string
	theme    string
}

// NewTheme creates a filter that keeps only results whose opportunity lists theme.
// A blank theme disables the filter.
func NewTheme(theme string) Filter {
	f := &themeFilter{theme: strings.ToLower(strings.TrimSpace(theme))}
	if f.theme == "" {
		f.Disable("no theme required")
	}
	return f
}

func (f *themeFilter) Name() string { return themeName }

func (f *themeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *themeFilter) IsEnabled() bool { return !f.disabled }

func (f *themeFilter) Apply(logger *zap.Logger, results []*grants.AlignmentResult) ([]*grants.AlignmentResult, Step) {
	kept, info := keep(results, func(r *grants.AlignmentResult) bool {
		return r.Opportunity.HasTheme(f.theme)
	})
	if info.Dropped > 0 {
		logger.Debug("excluding alignments without required theme",
			zap.String("theme", f.theme),
			zap.Int("alignments_left", info.Left),
		)
	}
	return kept, info
}

func (f *themeFilter) Status() Status {
	details := map[string]string{}
	if f.theme != "" {
		details["theme"] = f.theme
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
