package health

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/graph"
	"github.com/mabhi256/jarscope/internal/model"
)

// CouplingCeiling is the average number of distinct class dependencies at
// which the coupling component of the architecture score reaches zero
const CouplingCeiling = 10.0

// PackageMetrics are Robert Martin's package coupling figures
type PackageMetrics struct {
	Name        string  `json:"name" yaml:"name" xml:"name,attr"`
	Classes     int     `json:"classes" yaml:"classes" xml:"classes,attr"`
	Afferent    int     `json:"afferent" yaml:"afferent" xml:"afferent,attr"`
	Efferent    int     `json:"efferent" yaml:"efferent" xml:"efferent,attr"`
	Instability float64 `json:"instability" yaml:"instability" xml:"instability,attr"`
}

type ArchitectureMetrics struct {
	Evaluated bool `json:"evaluated" yaml:"evaluated" xml:"evaluated"`

	Packages []PackageMetrics `json:"packages" yaml:"packages" xml:"packages"`

	// CouplingIndex is the mean number of distinct classes an analysed class depends on
	CouplingIndex float64 `json:"couplingIndex" yaml:"couplingIndex" xml:"couplingIndex"`
	// Cohesion is the share of edges that stay inside their package
	Cohesion float64 `json:"cohesion" yaml:"cohesion" xml:"cohesion"`
	// CircularDependencyRatio is the share of analysed classes on a class cycle
	CircularDependencyRatio float64 `json:"circularDependencyRatio" yaml:"circularDependencyRatio" xml:"circularDependencyRatio"`
	AverageInstability      float64 `json:"averageInstability" yaml:"averageInstability" xml:"averageInstability"`

	HealthScore float64 `json:"healthScore" yaml:"healthScore" xml:"healthScore"`
	Grade       string  `json:"grade" yaml:"grade" xml:"grade"`
}

// EvaluateArchitecture derives coupling, cohesion and cycle figures from a
// built class-relationship graph. Unsuccessful or missing results yield
// metrics with Evaluated unset.
func EvaluateArchitecture(result *graph.DependencyGraphResult) ArchitectureMetrics {
	if result == nil || !result.Successful {
		return ArchitectureMetrics{}
	}

	analyzed := make(map[string]bool)
	for _, n := range result.Nodes {
		if n.Type == graph.NodeClass && n.Analyzed {
			analyzed[n.ID] = true
		}
	}

	type pkgState struct {
		classes  int
		afferent map[string]struct{}
		efferent map[string]struct{}
	}
	packages := make(map[string]*pkgState)
	pkg := func(name string) *pkgState {
		p, ok := packages[name]
		if !ok {
			p = &pkgState{afferent: map[string]struct{}{}, efferent: map[string]struct{}{}}
			packages[name] = p
		}
		return p
	}
	for id := range analyzed {
		pkg(model.PackageOf(id)).classes++
	}

	dependsOn := make(map[string]map[string]struct{})
	intra := 0
	for _, e := range result.Edges {
		if !analyzed[e.Source] {
			continue
		}
		targets, ok := dependsOn[e.Source]
		if !ok {
			targets = make(map[string]struct{})
			dependsOn[e.Source] = targets
		}
		targets[e.Target] = struct{}{}

		srcPkg, dstPkg := model.PackageOf(e.Source), model.PackageOf(e.Target)
		if srcPkg == dstPkg {
			intra++
			continue
		}
		pkg(srcPkg).efferent[e.Source] = struct{}{}
		if analyzed[e.Target] {
			pkg(dstPkg).afferent[e.Source] = struct{}{}
		}
	}

	m := ArchitectureMetrics{Evaluated: true, Cohesion: 1}

	counted := lo.CountBy(result.Edges, func(e *graph.DependencyEdge) bool { return analyzed[e.Source] })
	if counted > 0 {
		m.Cohesion = float64(intra) / float64(counted)
	}

	if len(analyzed) > 0 {
		total := 0
		for _, targets := range dependsOn {
			total += len(targets)
		}
		m.CouplingIndex = float64(total) / float64(len(analyzed))

		inCycle := 0
		for id := range graph.CycleMembers(result.CircularDependencies) {
			if analyzed[id] {
				inCycle++
			}
		}
		m.CircularDependencyRatio = float64(inCycle) / float64(len(analyzed))
	}

	for name, p := range packages {
		if p.classes == 0 {
			continue
		}
		pm := PackageMetrics{
			Name:     name,
			Classes:  p.classes,
			Afferent: len(p.afferent),
			Efferent: len(p.efferent),
		}
		if pm.Afferent+pm.Efferent > 0 {
			pm.Instability = round2(float64(pm.Efferent) / float64(pm.Afferent+pm.Efferent))
		}
		m.Packages = append(m.Packages, pm)
	}
	sort.Slice(m.Packages, func(i, j int) bool { return m.Packages[i].Name < m.Packages[j].Name })

	if len(m.Packages) > 0 {
		m.AverageInstability = round2(lo.MeanBy(m.Packages, func(p PackageMetrics) float64 { return p.Instability }))
	}

	m.HealthScore = ArchitectureScore(m.CouplingIndex, m.Cohesion, m.CircularDependencyRatio)
	m.Grade = Grade(m.HealthScore)
	m.CouplingIndex = round2(m.CouplingIndex)
	m.Cohesion = round2(m.Cohesion)
	m.CircularDependencyRatio = round2(m.CircularDependencyRatio)
	return m
}

// ArchitectureScore blends coupling (40%), cohesion (30%) and freedom from
// cycles (30%) into a 0-100 score
func ArchitectureScore(couplingIndex, cohesion, cycleRatio float64) float64 {
	normCoupling := math.Min(1, math.Max(0, couplingIndex/CouplingCeiling))
	cohesion = math.Min(1, math.Max(0, cohesion))
	cycleRatio = math.Min(1, math.Max(0, cycleRatio))

	score := 100 * (0.4*(1-normCoupling) + 0.3*cohesion + 0.3*(1-cycleRatio))
	return round1(math.Min(100, math.Max(0, score)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
