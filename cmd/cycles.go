package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/utils"
)

var failOnCritical bool

var cyclesCmd = &cobra.Command{
	Use:   "cycles <archive>",
	Short: "List Spring circular dependencies",
	Long: `Cycles prints only the Spring circular dependency summary of an archive, one line per cycle,
most severe first. With --fail-on-critical the exit status is 2 when a CRITICAL cycle exists,
which makes the command usable as a CI gate.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension(utils.ArchiveExtensions),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := analyzeOne(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !doc.Spring.Successful {
			fmt.Fprintf(out, "🔴 Analysis failed: %s\n", doc.Spring.ErrorMessage)
			return &exitError{code: 1, msg: "spring analysis failed"}
		}

		fmt.Fprintf(out, "Circular dependencies found: %d\n", len(doc.Spring.Cycles))
		for i, c := range doc.Spring.Cycles {
			fmt.Fprintf(out, "%3d. %s\n", i+1, c.Description())
			if s := c.PrimaryStrategy(); s.Type != "" {
				fmt.Fprintf(out, "     → %s\n", utils.MutedStyle.Render(s.Description))
			}
		}
		fmt.Fprintf(out, "Spring health: %.1f (%s)\n", doc.Spring.Metrics.HealthScore, doc.Spring.Metrics.Grade)

		if failOnCritical && doc.Worst() == health.SeverityCritical {
			return &exitError{
				code: 2,
				msg:  fmt.Sprintf("%d critical circular dependencies", doc.Spring.Metrics.Count(health.SeverityCritical)),
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cyclesCmd)

	cyclesCmd.Flags().BoolVar(&failOnCritical, "fail-on-critical", false, "Exit with status 2 when a CRITICAL cycle is found")
}
