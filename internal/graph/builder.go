package graph

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/model"
)

// Builder turns the classes of one archive into a class-relationship graph.
// A Builder holds no per-run state and may be shared between goroutines.
type Builder struct {
	logger   *slog.Logger
	resolver TypeResolver
}

type BuilderOption func(*Builder)

func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithResolver replaces the default pool-backed resolver
func WithResolver(resolver TypeResolver) BuilderOption {
	return func(b *Builder) {
		b.resolver = resolver
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildRun is the state of one BuildDependencyGraph call
type buildRun struct {
	graph    *Graph
	resolver TypeResolver
	logger   *slog.Logger
	classes  []*model.ClassInfo
	notes    []string
}

// BuildDependencyGraph builds the graph for content. A nil content is a
// caller error; every other failure is reported through the result.
func (b *Builder) BuildDependencyGraph(content *model.JarContent) (result *DependencyGraphResult, err error) {
	if content == nil {
		return nil, ErrNilContent
	}
	if content.Classes == nil {
		return failedResult(content.Source, "no class set supplied"), nil
	}

	resolver := b.resolver
	if resolver == nil {
		pool := content.Pool
		if pool == nil {
			pool = model.NewClassSet(content.Classes)
		}
		resolver = NewPoolResolver(pool)
	}

	run := &buildRun{
		graph:    NewGraph(),
		resolver: resolver,
		logger:   b.logger,
		classes:  content.Classes,
	}

	defer run.graph.Clear()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("dependency graph construction failed", slog.String("source", content.Source), slog.Any("panic", r))
			result = failedResult(content.Source, fmt.Sprintf("dependency graph construction failed: %v", r))
			err = nil
		}
	}()

	stages := []struct {
		name string
		fn   func()
	}{
		{"class and package nodes", run.addNodes},
		{"structural edges", run.addEdges},
		{"node degrees", run.graph.ComputeDegrees},
	}
	for _, stage := range stages {
		b.logger.Debug("graph build stage", slog.String("stage", stage.name), slog.String("source", content.Source))
		stage.fn()
	}

	result = &DependencyGraphResult{
		Source:               content.Source,
		Nodes:                run.graph.Nodes(),
		Edges:                run.graph.Edges(),
		CircularDependencies: DetectCycles(run.graph),
		Notes:                run.notes,
		Successful:           true,
	}
	result.Metrics = computeMetrics(result)

	return result, nil
}

func (r *buildRun) addNodes() {
	for _, c := range r.classes {
		if c == nil || c.Name == "" {
			continue
		}
		r.graph.MarkAnalyzed(c.Name)
		r.graph.AddNode(c.Package(), NodePackage)
	}
}

func (r *buildRun) addEdges() {
	for _, c := range r.classes {
		if c == nil || c.Name == "" {
			continue
		}
		r.addClassEdges(c)
	}
}

// addClassEdges emits the structural edges of one class. When the class
// itself cannot be resolved all of its edges are skipped; a member that
// cannot be resolved only loses its own edges.
func (r *buildRun) addClassEdges(c *model.ClassInfo) {
	superClass, err := r.resolver.ResolveSuperclass(c)
	if err != nil {
		r.note(c.Name, "superclass", err)
		return
	}
	interfaces, err := r.resolver.ResolveInterfaces(c)
	if err != nil {
		r.note(c.Name, "interfaces", err)
		return
	}

	if superClass != model.RootType {
		r.addTypeEdge(c.Name, superClass, EdgeInheritance, "extends "+superClass)
	}
	for _, iface := range interfaces {
		r.addTypeEdge(c.Name, iface, EdgeImplements, "implements "+iface)
	}

	for _, field := range c.Fields {
		if field.Modifiers.Has(model.ModSynthetic) {
			continue
		}
		fieldType, err := r.resolver.ResolveFieldType(c, field)
		if err != nil {
			r.note(c.Name, "field "+field.Name, err)
			continue
		}
		r.addTypeEdge(c.Name, fieldType, EdgeComposition, "field "+field.Name)
	}

	for _, method := range c.Methods {
		if method.Modifiers.Has(model.ModSynthetic) {
			continue
		}
		sig, err := r.resolver.ResolveMethodSignature(c, method)
		if err != nil {
			r.note(c.Name, "method "+method.Name, err)
			continue
		}
		r.addTypeEdge(c.Name, sig.ReturnType, EdgeUses, "returned by "+method.Name)
		for _, param := range sig.ParameterTypes {
			r.addTypeEdge(c.Name, param, EdgeUses, "parameter of "+method.Name)
		}
	}
}

// addTypeEdge applies the type filter and never links a class to itself
func (r *buildRun) addTypeEdge(source, target string, edgeType EdgeType, description string) {
	if model.IsFilteredType(target) {
		return
	}
	target = model.NormalizeType(target)
	if target == source {
		return
	}
	r.graph.AddEdge(source, target, edgeType, description)
}

func (r *buildRun) note(className, what string, err error) {
	r.logger.Debug("skipping unresolved reference",
		slog.String("class", className),
		slog.String("reference", what),
		slog.Any("error", err))
	r.notes = append(r.notes, fmt.Sprintf("%s: %s: %v", className, what, err))
}

func computeMetrics(result *DependencyGraphResult) GraphMetrics {
	m := GraphMetrics{
		TotalNodes: len(result.Nodes),
		TotalEdges: len(result.Edges),
		Cycles:     len(result.CircularDependencies),
	}

	for _, n := range result.Nodes {
		switch {
		case n.Type == NodePackage:
			m.PackageNodes++
		case n.Type == NodeClass && n.Analyzed:
			m.ClassNodes++
		case n.Type == NodeClass:
			m.ExternalNodes++
		}
	}

	m.EdgesByType = lo.CountValuesBy(result.Edges, func(e *DependencyEdge) EdgeType {
		return e.Type
	})

	m.AverageDegree = AverageDegree(m.TotalNodes, m.TotalEdges)
	m.Density = Density(m.TotalNodes, m.TotalEdges)
	return m
}

// AverageDegree is edges per node, 0 for an empty graph
func AverageDegree(nodes, edges int) float64 {
	if nodes == 0 {
		return 0
	}
	return float64(edges) / float64(nodes)
}

// Density is edges over the n(n-1) possible directed edges, 0 below two
// nodes. Parallel edges of different types can push the raw ratio above 1,
// so it is capped.
func Density(nodes, edges int) float64 {
	if nodes < 2 {
		return 0
	}
	d := float64(edges) / (float64(nodes) * float64(nodes-1))
	return min(d, 1)
}
