package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mabhi256/jarscope/internal/analysis"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/utils"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <archive>",
	Short: "Re-analyze an archive whenever it is rebuilt",
	Long: `Watch prints the summary of an archive and prints it again every time the file changes,
for example after 'mvn package' or 'gradle bootJar'. Stop with Ctrl+C.

Examples:
  jarscope watch target/app.jar
  jarscope watch build/libs/app.jar --debounce 2s`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension(utils.ArchiveExtensions),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateArchives(args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "👀 Watching %s (Ctrl+C to stop)\n", args[0])

		return analysis.New(cfg, logger).Watch(ctx, args[0], debounce, func(doc *report.Document, err error) {
			fmt.Fprintf(out, "\n%s\n", utils.MutedStyle.Render(time.Now().Format("15:04:05")))
			if err != nil {
				fmt.Fprintf(out, "🔴 %v\n", err)
				return
			}
			if err := report.WriteCLI(out, doc, false); err != nil {
				logger.Error("failed to print summary", slog.Any("error", err))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&debounce, "debounce", analysis.DefaultDebounce, "Wait this long after the last change before re-analyzing")
}
