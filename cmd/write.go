package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/drafting"
	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/logger"
	"github.com/spigell/grant-matcher/internal/utils"
)

const (
	PromptWriteAll = "Write all listed drafts"
	PromptBack     = "back"

	previewLength = 60
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate proposal drafts for the top matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		w, err := drafting.NewWriter(s.config.Format)
		if err != nil {
			return err
		}

		results, err := s.align(cmd.Context())
		if err != nil {
			return err
		}

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			return s.manualWrite(results, w)
		}

		paths, err := s.writeDrafts(drafting.Batch(results, s.config.Max), w)
		if err != nil {
			return err
		}

		s.header("Drafts saved:")
		s.printPaths(paths)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)

	addSourceFlag(writeCmd)
	addFilterFlags(writeCmd)
	writeCmd.Flags().String("theme", "", "keep only opportunities carrying this theme")
	writeCmd.Flags().IntP("max", "m", drafting.DefaultBatchSize, "maximum drafts to generate")
	writeCmd.Flags().StringP("format", "f", drafting.FormatMarkdown, "draft file format: md or docx")
	writeCmd.Flags().BoolP("interactive", "i", false, "choose alignments to draft one by one")
}

func (s *session) writeDrafts(drafts []*grants.Draft, w drafting.Writer) ([]string, error) {
	paths, err := drafting.SaveAll(s.config.Output, drafts, w)
	if err != nil {
		return paths, fmt.Errorf("saving drafts: %w", err)
	}

	for _, d := range drafts {
		s.logger.Debug("draft saved",
			append(logger.AlignmentFields(d.Alignment),
				zap.String("filename", d.Filename),
				zap.String("preview", utils.TruncateForLog(utils.FirstLine(d.Content), previewLength)),
			)...,
		)
	}
	s.logger.Info("drafts saved", zap.Int("count", len(paths)), zap.String("directory", s.config.Output))

	return paths, nil
}

// manualWrite lets the user pick alignments to draft until they go back.
func (s *session) manualWrite(results []*grants.AlignmentResult, w drafting.Writer) error {
	for {
		items := make([]string, 0, len(results)+2)
		for _, r := range results {
			items = append(items, alignmentLabel(r))
		}
		if len(results) != 0 {
			items = append(items, PromptWriteAll)
		}

		alignmentPrompt := promptui.Select{
			Label: "Choose an alignment and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := alignmentPrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptWriteAll:
			paths, err := s.writeDrafts(drafting.Batch(results, len(results)), w)
			if err != nil {
				return err
			}
			s.printPaths(paths)
			return nil
		default:
			paths, err := s.writeDrafts([]*grants.Draft{drafting.Build(results[idx])}, w)
			if err != nil {
				return err
			}
			s.printPaths(paths)

			results = append(results[:idx:idx], results[idx+1:]...)
		}
	}
}

func alignmentLabel(r *grants.AlignmentResult) string {
	return fmt.Sprintf("%s <> %s / %.2f / %s",
		r.Organization.ID, r.Opportunity.ID, r.Score, r.Opportunity.Funder,
	)
}
