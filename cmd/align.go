package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/filtering"
	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/matching"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Score organization and opportunity pairs and print them as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		results, err := s.align(cmd.Context())
		if err != nil {
			return err
		}

		pretty, err := json.MarshalIndent(grants.Records(results), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding alignments: %w", err)
		}
		fmt.Fprintln(s.out, string(pretty))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alignCmd)

	addSourceFlag(alignCmd)
	addFilterFlags(alignCmd)
	alignCmd.Flags().String("theme", "", "keep only opportunities carrying this theme")
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-score", 0, "drop alignments scoring below this value")
	cmd.Flags().Bool("region-only", false, "keep only alignments where the regions match")
}

// align fetches opportunities, scores them against every organization and runs the
// configured filters.
func (s *session) align(ctx context.Context) ([]*grants.AlignmentResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opps, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return s.rank(ctx, opps)
}

func (s *session) rank(ctx context.Context, opps []*grants.Opportunity) ([]*grants.AlignmentResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := matching.NewAligner(s.logger, 0).Align(ctx, s.orgs, opps)
	if err != nil {
		return nil, fmt.Errorf("aligning: %w", err)
	}

	steps := filtering.Steps(s.config.Filter)
	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filtering.New(steps, s.logger).Run(results), nil
}
