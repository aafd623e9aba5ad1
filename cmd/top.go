package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/logger"
	"github.com/spigell/grant-matcher/internal/matching"
)

var errUnknownOrganization = errors.New("unknown organization")

var topCmd = &cobra.Command{
	Use:   "top <org-id>",
	Short: "Show the best opportunities for one organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		org := grants.FindOrganization(s.orgs, args[0])
		if org == nil {
			ids := make([]string, 0, len(s.orgs))
			for _, o := range s.orgs {
				ids = append(ids, o.ID)
			}
			return fmt.Errorf("%w %q. Known organizations: %s", errUnknownOrganization, args[0], strings.Join(ids, ", "))
		}

		opps, err := s.fetch(cmd.Context())
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		results := matching.TopForOrganization(org, opps, matching.TopOptions{
			Limit:              limit,
			MinScore:           s.config.Filter.MinScore,
			RequireRegionMatch: s.config.Filter.RequireRegionMatch,
		})

		s.logger.Debug("top opportunities selected", zap.String(logger.FieldOrganization, org.ID), zap.Int("count", len(results)))

		s.header(fmt.Sprintf("Top opportunities for %s:", org.Name))
		for _, r := range results {
			fmt.Fprintf(s.out, "- %s (%s)\n", r.Opportunity.Name, r.Opportunity.Funder)
			for _, line := range strings.Split(r.Summary(), "\n") {
				fmt.Fprintf(s.out, "  %s\n", line)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)

	addSourceFlag(topCmd)
	addFilterFlags(topCmd)
	topCmd.Flags().IntP("limit", "l", 3, "maximum opportunities to show")
}
