// Package analysis runs the full pipeline over an archive: open, parse,
// build the class graph, detect Spring cycles, and assemble the report.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mabhi256/jarscope/internal/archive"
	"github.com/mabhi256/jarscope/internal/config"
	"github.com/mabhi256/jarscope/internal/graph"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/internal/spring"
)

// Result is what every analysis stage hands back
type Result interface {
	IsValid() bool
	GetSummary() string
}

var (
	_ Result = (*graph.DependencyGraphResult)(nil)
	_ Result = (*spring.SpringCircularDependencyResult)(nil)
	_ Result = (*report.Document)(nil)
)

type Analyzer struct {
	cfg     *config.Config
	logger  *slog.Logger
	builder *graph.Builder
}

func New(cfg *config.Config, logger *slog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		cfg:     cfg,
		logger:  logger,
		builder: graph.NewBuilder(graph.WithLogger(logger)),
	}
}

// AnalyzeFile analyzes one JAR or WAR. Errors are returned only when the
// archive cannot be read at all; stage failures end up in the document.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*report.Document, error) {
	started := time.Now()
	logger := a.logger.With(slog.String("archive", path))

	arc, err := archive.Open(path, archive.Options{
		IncludePackages: a.cfg.Analysis.IncludePackages,
		ExcludePackages: a.cfg.Analysis.ExcludePackages,
		CacheSize:       a.cfg.Analysis.ClassCacheSize,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	content, err := arc.Content(ctx)
	if err != nil {
		return nil, err
	}

	graphResult, err := a.builder.BuildDependencyGraph(content)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.check(logger, "dependency graph", graphResult)

	detector, err := spring.NewDetector(content.Pool,
		spring.WithMarkers(a.cfg.Markers),
		spring.WithWeights(a.cfg.Scoring),
		spring.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	springResult := detector.Analyze(content.Classes)
	a.check(logger, "spring analysis", springResult)

	doc := report.NewDocument(report.Input{
		Source:      path,
		ArchiveKind: string(arc.Kind()),
		Classes:     len(content.Classes),
		Libraries:   arc.Libraries(),
		Started:     started,
		Graph:       graphResult,
		Spring:      springResult,
	})

	logger.Info("analysis complete",
		slog.String("run", doc.RunID),
		slog.Int("classes", doc.Classes),
		slog.Int("springCycles", len(doc.Spring.Cycles)),
		slog.Duration("duration", doc.Duration))

	return doc, nil
}

// AnalyzeAll analyzes archives concurrently, bounded by the configured
// worker count. Documents come back in the order of paths; the first
// failure cancels the rest.
func (a *Analyzer) AnalyzeAll(ctx context.Context, paths []string) ([]*report.Document, error) {
	docs := make([]*report.Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.cfg.Analysis.Workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			doc, err := a.AnalyzeFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (a *Analyzer) check(logger *slog.Logger, stage string, result Result) {
	if !result.IsValid() {
		logger.Warn("analysis stage failed", slog.String("stage", stage), slog.String("summary", result.GetSummary()))
	}
}
