package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/grant-matcher/internal/drafting"
	"github.com/spigell/grant-matcher/internal/filtering"
	"github.com/spigell/grant-matcher/internal/sources"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the full demo pipeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDemo(cmd)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// runDemo lists organizations, fetches the demo source, aligns and writes markdown drafts.
func runDemo(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.config.Source = sources.DemoName
	s.config.Filter = filtering.Options{}

	s.header("Running grant-matcher demo pipeline...")
	fmt.Fprintln(s.out)
	s.printOrganizations()

	opps, err := s.fetch(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loaded %d grant opportunities from demo source.\n\n", len(opps))

	results, err := s.rank(cmd.Context(), opps)
	if err != nil {
		return err
	}

	s.header("Top matches:")
	for _, r := range results {
		fmt.Fprintf(s.out, "- %s <> %s: score %.2f | themes %s\n",
			r.Organization.Name, r.Opportunity.Name, r.Score, joinOrNone(r.ThemeMatches, "None"),
		)
	}
	fmt.Fprintln(s.out)

	paths, err := s.writeDrafts(drafting.Batch(results, drafting.DefaultBatchSize), drafting.MarkdownWriter{})
	if err != nil {
		return err
	}

	s.header("Drafts generated:")
	s.printPaths(paths)
	fmt.Fprintln(s.out)
	return nil
}
