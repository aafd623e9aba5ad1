package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/logger"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch funding opportunities from a source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		opps, err := s.fetch(cmd.Context())
		if err != nil {
			return err
		}

		for _, opp := range opps {
			fmt.Fprintf(s.out, "[%s] %s | %s | %s | %s\n", opp.ID, opp.Name, opp.Funder, opp.Deadline, opp.Region)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	addSourceFlag(scrapeCmd)
}

func addSourceFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "demo", "which source to fetch opportunities from")
}

// fetch loads opportunities from the configured source.
func (s *session) fetch(ctx context.Context) ([]*grants.Opportunity, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opps, err := s.registry.Fetch(ctx, s.config.Source)
	if err != nil {
		return nil, err
	}

	s.logger.Info("getting opportunities",
		append(logger.StringFields(logger.StringField{Key: logger.FieldSource, Value: s.config.Source}),
			zap.Int("count", len(opps)))...,
	)
	return opps, nil
}
