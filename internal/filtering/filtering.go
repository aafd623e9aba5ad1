package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/grants"
)

// Filter represents a single filtering step applied to alignment results.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(logger *zap.Logger, results []*grants.AlignmentResult) ([]*grants.AlignmentResult, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Options selects which steps are enabled.
type Options struct {
	MinScore           float64 `mapstructure:"min-score"`
	RequireRegionMatch bool    `mapstructure:"region-only"`
	RequiredTheme      string  `mapstructure:"theme"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// Steps builds the standard pipeline: minimum score, region match, required theme.
func Steps(opts Options) []Filter {
	steps := []Filter{
		NewMinScore(opts.MinScore),
		NewRegionMatch(),
		NewTheme(opts.RequiredTheme),
	}
	if !opts.RequireRegionMatch {
		DisableByName(steps, regionMatchName, "region match not required")
	}
	return steps
}

// Apply filters results with the standard pipeline and returns them sorted by descending score.
// The input slice is left untouched.
func Apply(results []*grants.AlignmentResult, opts Options) []*grants.AlignmentResult {
	return New(Steps(opts), nil).Run(results)
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the filters sequentially on a copy of results and re-sorts what is left.
func (f *Filtering) Run(results []*grants.AlignmentResult) []*grants.AlignmentResult {
	out := make([]*grants.AlignmentResult, len(results))
	copy(out, results)

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info := step.Apply(f.logger, out)

		f.logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		out = next
	}

	grants.SortByScore(out)
	return out
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep returns the results accepted by pred, preserving order.
func keep(results []*grants.AlignmentResult, pred func(*grants.AlignmentResult) bool) ([]*grants.AlignmentResult, Step) {
	kept := make([]*grants.AlignmentResult, 0, len(results))
	for _, r := range results {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return kept, Step{Initial: len(results), Dropped: len(results) - len(kept), Left: len(kept)}
}
