package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mabhi256/jarscope/internal/analysis"
	"github.com/mabhi256/jarscope/internal/config"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/internal/tui"
	"github.com/mabhi256/jarscope/utils"
)

var (
	outputFormat string
	outputPath   string
	metricsFile  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <archive>...",
	Short: "Analyze JAR or WAR files for dependency cycles",
	Long: `Analyze builds the class dependency graph of each archive, detects Spring circular
dependencies and scores the result.

Examples:
  jarscope analyze app.jar                    # Summary on the terminal
  jarscope analyze app.jar -o tui             # Interactive browser
  jarscope analyze app.jar -o html --out r    # Writes r.html
  jarscope analyze a.jar b.war -o json --out reports/ --metrics-file jarscope.prom`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension(utils.ArchiveExtensions),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("output") {
			outputFormat = cfg.Report.Format
		}
		if !cmd.Flags().Changed("out") {
			outputPath = cfg.Report.Output
		}

		// Validate output flag
		if !slices.Contains(config.Formats, outputFormat) {
			return fmt.Errorf("invalid output format: %s. Valid options: %v", outputFormat, config.Formats)
		}

		return validateArchives(args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := analysis.New(cfg, logger).AnalyzeAll(cmd.Context(), args)
		if err != nil {
			return err
		}

		if metricsFile != "" {
			if err := analysis.WriteMetricsFile(metricsFile, docs); err != nil {
				return err
			}
		}

		for _, doc := range docs {
			if err := emit(cmd.OutOrStdout(), doc, outputFormat, outputPath, len(docs) > 1); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "cli", "Output format")
	analyzeCmd.Flags().StringVar(&outputPath, "out", "", "Write the report to this file (a directory when analyzing several archives)")
	analyzeCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Also write Prometheus metrics in textfile format")

	// When user types: jarscope analyze app.jar -o <TAB>
	analyzeCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
}

func validateArchives(paths []string) error {
	for _, p := range paths {
		if !utils.HasExtension(p, utils.ArchiveExtensions) {
			return fmt.Errorf("not a JAR or WAR file: %s", p)
		}

		// Check if file exists
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", p)
		}
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
	}
	return nil
}

// emit renders one document. With several archives out is a directory and
// each report is named after its archive.
func emit(stdout io.Writer, doc *report.Document, format, out string, multi bool) error {
	switch format {
	case "tui":
		if isTerminal(os.Stdout) {
			return tui.Run(doc)
		}
		logger.Warn("stdout is not a terminal, falling back to cli output")
		return report.WriteCLI(stdout, doc, false)

	case "html":
		path, err := report.SaveHTML(doc, reportPath(out, doc, "html", multi))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "📄 HTML report saved to: %s\n", path)
		return nil
	}

	target := reportPath(out, doc, extensionOf(format), multi)
	if target == "" {
		return report.Write(stdout, doc, format)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := report.Write(file, doc, format); err != nil {
		return err
	}
	return file.Close()
}

func reportPath(out string, doc *report.Document, ext string, multi bool) string {
	if out == "" || !multi {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))
	return filepath.Join(out, base+"."+ext)
}

func extensionOf(format string) string {
	switch format {
	case "cli", "cli-more":
		return "txt"
	default:
		return format
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// analyzeOne is shared by the single-archive commands
func analyzeOne(ctx context.Context, path string) (*report.Document, error) {
	if err := validateArchives([]string{path}); err != nil {
		return nil, err
	}
	return analysis.New(cfg, logger).AnalyzeFile(ctx, path)
}
