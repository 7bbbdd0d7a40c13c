package spring

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/graph"
	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/model"
)

var ErrNilClassPool = errors.New("spring: class pool is required")

// Detector finds circular dependencies between Spring components. The
// detector holds configuration only, each Analyze call works on its own state.
type Detector struct {
	pool    model.ClassPool
	markers markerIndex
	weights health.Weights
	logger  *slog.Logger
}

type Option func(*Detector)

func WithMarkers(m Markers) Option {
	return func(d *Detector) {
		d.markers = newMarkerIndex(m)
	}
}

func WithWeights(w health.Weights) Option {
	return func(d *Detector) {
		d.weights = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// NewDetector needs the pool to follow meta-annotations and type hierarchies
// into classes outside the analysed set
func NewDetector(pool model.ClassPool, opts ...Option) (*Detector, error) {
	if pool == nil {
		return nil, ErrNilClassPool
	}
	d := &Detector{
		pool:    pool,
		markers: newMarkerIndex(DefaultMarkers()),
		weights: health.DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// run is the state of one Analyze call
type run struct {
	*Detector
	classes    map[string]*model.ClassInfo
	components map[string]*SpringComponentInfo
	// meta caches annotation type -> stereotype, "" for none
	meta map[string]Stereotype
	// assignable caches component -> every type it can be injected as
	assignable map[string]map[string]struct{}
	edges      map[string][]ComponentEdge
}

// Analyze detects component cycles among classes. It never returns nil;
// failures are reported through an unsuccessful result.
func (d *Detector) Analyze(classes []*model.ClassInfo) (result *SpringCircularDependencyResult) {
	if len(classes) == 0 {
		return d.emptyResult()
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("spring cycle analysis failed", slog.Any("panic", r))
			result = &SpringCircularDependencyResult{
				Successful:   false,
				ErrorMessage: fmt.Sprintf("spring cycle analysis failed: %v", r),
			}
		}
	}()

	r := &run{
		Detector:   d,
		classes:    make(map[string]*model.ClassInfo, len(classes)),
		components: make(map[string]*SpringComponentInfo),
		meta:       make(map[string]Stereotype),
		assignable: make(map[string]map[string]struct{}),
		edges:      make(map[string][]ComponentEdge),
	}
	for _, c := range classes {
		if c != nil && c.Name != "" {
			r.classes[c.Name] = c
		}
	}

	stages := []struct {
		name string
		fn   func()
	}{
		{"component scan", r.scanComponents},
		{"dependency resolution", r.resolveEdges},
	}
	for _, stage := range stages {
		d.logger.Debug("spring analysis stage", slog.String("stage", stage.name))
		stage.fn()
	}

	cycles := r.findCycles()
	result = &SpringCircularDependencyResult{
		CircularDependencies: cycles,
		Components:           r.sortedComponents(),
		TotalComponents:      len(r.components),
		Successful:           true,
	}
	result.Metrics = health.EvaluateCycles(result.Findings(), result.TotalComponents, d.weights)

	d.logger.Debug("spring analysis complete",
		slog.Int("components", result.TotalComponents),
		slog.Int("cycles", len(cycles)))
	return result
}

func (d *Detector) emptyResult() *SpringCircularDependencyResult {
	return &SpringCircularDependencyResult{
		Metrics:    health.EvaluateCycles(nil, 0, d.weights),
		Successful: true,
	}
}

// lookup prefers the analysed classes over the pool
func (r *run) lookup(name string) *model.ClassInfo {
	if c, ok := r.classes[name]; ok {
		return c
	}
	return r.pool.GetCachedClass(name)
}

func (r *run) scanComponents() {
	for _, c := range r.classes {
		if info, ok := r.component(c); ok {
			r.components[c.Name] = info
		}
	}
}

func (r *run) sortedComponents() []*SpringComponentInfo {
	out := lo.Values(r.components)
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}

func (r *run) resolveEdges() {
	for _, name := range lo.Keys(r.components) {
		source := r.components[name]
		for _, dep := range source.Dependencies {
			for _, target := range r.candidates(source, dep) {
				r.edges[source.ClassName] = append(r.edges[source.ClassName], ComponentEdge{
					Source:    source.ClassName,
					Target:    target.ClassName,
					Injection: dep.Injection,
					Member:    dep.Member,
					Lazy:      dep.Lazy || target.Lazy,
				})
			}
		}
	}
}

// candidates resolves a dependency to the components that can satisfy it.
// Self references are not edges: a bean may inject itself.
func (r *run) candidates(source *SpringComponentInfo, dep BeanDependency) []*SpringComponentInfo {
	if model.IsPrimitive(dep.TargetType) || dep.TargetType == "" {
		return nil
	}

	var matches []*SpringComponentInfo
	if exact, ok := r.components[dep.TargetType]; ok {
		matches = append(matches, exact)
	} else {
		for _, c := range r.components {
			if _, ok := r.assignableTypes(c.ClassName)[dep.TargetType]; ok {
				matches = append(matches, c)
			}
		}
	}
	matches = lo.Filter(matches, func(c *SpringComponentInfo, _ int) bool {
		return c.ClassName != source.ClassName
	})
	if len(matches) <= 1 {
		return matches
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ClassName < matches[j].ClassName })

	// the declared name of a field is the fallback qualifier
	qualifier := dep.Qualifier
	if qualifier == "" && dep.Injection == InjectionField {
		qualifier = dep.Member
	}
	if qualifier != "" {
		named := lo.Filter(matches, func(c *SpringComponentInfo, _ int) bool {
			return c.BeanName == qualifier || lo.Contains(c.Qualifiers, qualifier)
		})
		if len(named) > 0 {
			matches = named
		}
	}
	if len(matches) > 1 {
		primary := lo.Filter(matches, func(c *SpringComponentInfo, _ int) bool { return c.Primary })
		if len(primary) > 0 {
			matches = primary
		}
	}
	return matches
}

// assignableTypes walks the superclass and interface chain of a class
// through the pool. Types missing from the pool end the walk on that branch.
func (r *run) assignableTypes(className string) map[string]struct{} {
	if types, ok := r.assignable[className]; ok {
		return types
	}

	types := make(map[string]struct{})
	queue := []string{className}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, seen := types[current]; seen || current == "" || current == model.RootType {
			continue
		}
		types[current] = struct{}{}

		if c := r.lookup(current); c != nil {
			queue = append(queue, c.SuperClass)
			queue = append(queue, c.Interfaces...)
		}
	}

	r.assignable[className] = types
	return types
}

func (r *run) successors(name string) []string {
	return lo.Uniq(lo.Map(r.edges[name], func(e ComponentEdge, _ int) string { return e.Target }))
}

func (r *run) findCycles() []*SpringCircularDependency {
	cycles := graph.FindCycles(lo.Keys(r.components), r.successors)

	out := make([]*SpringCircularDependency, 0, len(cycles))
	for _, components := range cycles {
		out = append(out, newCircularDependency(components, r.cycleEdges(components)))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

// cycleEdges collects every edge between consecutive components of a cycle
func (r *run) cycleEdges(components []string) []ComponentEdge {
	var edges []ComponentEdge
	for i, from := range components {
		to := components[(i+1)%len(components)]
		for _, e := range r.edges[from] {
			if e.Target == to {
				edges = append(edges, e)
			}
		}
	}
	return edges
}
