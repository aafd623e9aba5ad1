package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list-orgs",
	Aliases: []string{"list-ngos"},
	Short:   "List configured organizations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		s.printOrganizations()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
