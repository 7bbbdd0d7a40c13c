package spring

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/health"
)

type InjectionType string

const (
	InjectionConstructor InjectionType = "CONSTRUCTOR"
	InjectionField       InjectionType = "FIELD"
	InjectionSetter      InjectionType = "SETTER"
)

type CycleType string

const (
	CycleConstructorOnly CycleType = "CONSTRUCTOR_ONLY"
	CycleFieldOnly       CycleType = "FIELD_ONLY"
	CycleSetterOnly      CycleType = "SETTER_ONLY"
	CycleMixed           CycleType = "MIXED"
)

type StrategyType string

const (
	StrategyLazyInitialization    StrategyType = "LAZY_INITIALIZATION"
	StrategyInterfaceSegregation  StrategyType = "INTERFACE_SEGREGATION"
	StrategySetterInjection       StrategyType = "SETTER_INJECTION"
	StrategyEventDrivenDecoupling StrategyType = "EVENT_DRIVEN_DECOUPLING"
)

// BeanDependency is one injection point of a component
type BeanDependency struct {
	TargetType string        `json:"targetType" yaml:"targetType" xml:"targetType,attr"`
	Injection  InjectionType `json:"injection" yaml:"injection" xml:"injection,attr"`
	// Member is the field name, or the constructor/method signature
	Member    string `json:"member" yaml:"member" xml:"member,attr"`
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty" xml:"qualifier,attr,omitempty"`
	Lazy      bool   `json:"lazy" yaml:"lazy" xml:"lazy,attr"`
}

type SpringComponentInfo struct {
	ClassName    string           `json:"className" yaml:"className" xml:"className,attr"`
	BeanName     string           `json:"beanName" yaml:"beanName" xml:"beanName,attr"`
	Stereotype   Stereotype       `json:"stereotype" yaml:"stereotype" xml:"stereotype,attr"`
	Dependencies []BeanDependency `json:"dependencies" yaml:"dependencies" xml:"dependency"`
	Lazy         bool             `json:"lazy" yaml:"lazy" xml:"lazy,attr"`
	Primary      bool             `json:"primary" yaml:"primary" xml:"primary,attr"`
	Scope        string           `json:"scope" yaml:"scope" xml:"scope,attr"`
	Qualifiers   []string         `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty" xml:"qualifier,omitempty"`
}

// ComponentEdge is a resolved injection between two components
type ComponentEdge struct {
	Source    string        `json:"source" yaml:"source" xml:"source,attr"`
	Target    string        `json:"target" yaml:"target" xml:"target,attr"`
	Injection InjectionType `json:"injection" yaml:"injection" xml:"injection,attr"`
	Member    string        `json:"member" yaml:"member" xml:"member,attr"`
	Lazy      bool          `json:"lazy" yaml:"lazy" xml:"lazy,attr"`
}

func (e ComponentEdge) String() string {
	return fmt.Sprintf("%s -> %s (%s)", e.Source, e.Target, e.Injection)
}

// ResolutionStrategy is one way of breaking a cycle. Rank 1 is preferred.
type ResolutionStrategy struct {
	Type        StrategyType `json:"type" yaml:"type" xml:"type,attr"`
	Rank        int          `json:"rank" yaml:"rank" xml:"rank,attr"`
	TargetEdge  string       `json:"targetEdge" yaml:"targetEdge" xml:"targetEdge,attr"`
	Description string       `json:"description" yaml:"description" xml:",chardata"`
}

// SpringCircularDependency is a classified cycle. Build it with
// newCircularDependency; it is not modified afterwards.
type SpringCircularDependency struct {
	Components        []string             `json:"components" yaml:"components" xml:"component"`
	Edges             []ComponentEdge      `json:"edges" yaml:"edges" xml:"edge"`
	Type              CycleType            `json:"type" yaml:"type" xml:"type,attr"`
	Severity          health.Severity      `json:"severity" yaml:"severity" xml:"severity,attr"`
	HasLazyResolution bool                 `json:"hasLazyResolution" yaml:"hasLazyResolution" xml:"hasLazyResolution,attr"`
	Strategies        []ResolutionStrategy `json:"strategies" yaml:"strategies" xml:"strategy"`
}

func newCircularDependency(components []string, edges []ComponentEdge) *SpringCircularDependency {
	d := &SpringCircularDependency{
		Components:        components,
		Edges:             edges,
		Type:              classifyType(edges),
		HasLazyResolution: lo.SomeBy(edges, func(e ComponentEdge) bool { return e.Lazy }),
	}
	d.Severity = classifySeverity(d.Type, edges, d.HasLazyResolution)
	d.Strategies = rankStrategies(d)
	return d
}

func (d *SpringCircularDependency) UniqueClassCount() int {
	return len(lo.Uniq(d.Components))
}

// IsComplexCycle is true for cycles through more than two classes
func (d *SpringCircularDependency) IsComplexCycle() bool {
	return d.UniqueClassCount() > 2
}

// PrimaryStrategy returns the top ranked strategy, the zero value when none was generated
func (d *SpringCircularDependency) PrimaryStrategy() ResolutionStrategy {
	if len(d.Strategies) == 0 {
		return ResolutionStrategy{}
	}
	return d.Strategies[0]
}

// Path renders the cycle closed on its first component: A -> B -> A
func (d *SpringCircularDependency) Path() string {
	if len(d.Components) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, d.Components...), d.Components[0]), " -> ")
}

func (d *SpringCircularDependency) Description() string {
	desc := fmt.Sprintf("%s (%s, %s)", d.Path(), d.Type, d.Severity)
	if d.HasLazyResolution {
		desc += ", resolved lazily"
	}
	return desc
}

func (d *SpringCircularDependency) Finding() health.Finding {
	return health.Finding{
		Components: d.Components,
		Severity:   d.Severity,
		Complex:    d.IsComplexCycle(),
	}
}

type SpringCircularDependencyResult struct {
	CircularDependencies []*SpringCircularDependency `json:"circularDependencies" yaml:"circularDependencies"`
	Components           []*SpringComponentInfo      `json:"components" yaml:"components"`
	Metrics              health.CycleMetrics         `json:"metrics" yaml:"metrics"`
	TotalComponents      int                         `json:"totalComponents" yaml:"totalComponents"`
	Successful           bool                        `json:"successful" yaml:"successful"`
	ErrorMessage         string                      `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

func (r *SpringCircularDependencyResult) IsValid() bool {
	return r.Successful
}

func (r *SpringCircularDependencyResult) GetSummary() string {
	return r.Summary()
}

// Findings converts the cycles for health scoring
func (r *SpringCircularDependencyResult) Findings() []health.Finding {
	return lo.Map(r.CircularDependencies, func(d *SpringCircularDependency, _ int) health.Finding {
		return d.Finding()
	})
}

// Summary renders the plain-text report used by the cycles command and logs
func (r *SpringCircularDependencyResult) Summary() string {
	var sb strings.Builder
	title := "Spring Circular Dependency Analysis Results"
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n")

	if !r.Successful {
		fmt.Fprintf(&sb, "Analysis failed: %s\n", r.ErrorMessage)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Spring components analyzed: %d\n", r.TotalComponents)
	fmt.Fprintf(&sb, "Circular dependencies found: %d\n", len(r.CircularDependencies))
	if len(r.CircularDependencies) == 0 {
		return sb.String()
	}

	counts := make([]string, 0, len(health.Severities))
	for _, s := range health.Severities {
		counts = append(counts, fmt.Sprintf("%s: %d", s, r.Metrics.Count(s)))
	}
	fmt.Fprintf(&sb, "By severity: %s\n", strings.Join(counts, ", "))
	fmt.Fprintf(&sb, "Affected components: %d (%.1f%%)\n",
		r.Metrics.AffectedComponents, r.Metrics.CircularDependencyRatio*100)
	fmt.Fprintf(&sb, "Health score: %.1f (%s)\n", r.Metrics.HealthScore, r.Metrics.Grade)

	for i, d := range r.CircularDependencies {
		fmt.Fprintf(&sb, "\n%d. [%s] %s\n", i+1, d.Severity, d.Path())
		fmt.Fprintf(&sb, "   Type: %s", d.Type)
		if d.HasLazyResolution {
			sb.WriteString(" (lazy resolution present)")
		}
		sb.WriteString("\n")
		if s := d.PrimaryStrategy(); s.Type != "" {
			fmt.Fprintf(&sb, "   Primary strategy: %s - %s\n", s.Type, s.Description)
		}
	}
	return sb.String()
}
