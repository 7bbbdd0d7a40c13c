package spring

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/model"
)

func classifyType(edges []ComponentEdge) CycleType {
	kinds := lo.Uniq(lo.Map(edges, func(e ComponentEdge, _ int) InjectionType { return e.Injection }))
	if len(kinds) != 1 {
		return CycleMixed
	}
	switch kinds[0] {
	case InjectionConstructor:
		return CycleConstructorOnly
	case InjectionField:
		return CycleFieldOnly
	case InjectionSetter:
		return CycleSetterOnly
	default:
		return CycleMixed
	}
}

// classifySeverity ranks how likely the cycle is to break the container.
// Field injection hides the cycle until runtime, constructor injection
// fails at startup unless one side is lazy, setters are resolved late.
func classifySeverity(cycleType CycleType, edges []ComponentEdge, lazy bool) health.Severity {
	switch cycleType {
	case CycleFieldOnly:
		return health.SeverityCritical
	case CycleConstructorOnly:
		if lazy {
			return health.SeverityLow
		}
		return health.SeverityHigh
	case CycleSetterOnly:
		return health.SeverityLow
	}

	if lo.SomeBy(edges, func(e ComponentEdge) bool { return e.Injection == InjectionField }) {
		return health.SeverityHigh
	}
	// constructor + setter
	if lazy {
		return health.SeverityLow
	}
	return health.SeverityMedium
}

// breakEdge picks the edge a strategy should target: the first eager
// constructor edge, then the first field edge, then the first edge
func breakEdge(edges []ComponentEdge) ComponentEdge {
	if e, ok := lo.Find(edges, func(e ComponentEdge) bool {
		return e.Injection == InjectionConstructor && !e.Lazy
	}); ok {
		return e
	}
	if e, ok := lo.Find(edges, func(e ComponentEdge) bool { return e.Injection == InjectionField }); ok {
		return e
	}
	if len(edges) == 0 {
		return ComponentEdge{}
	}
	return edges[0]
}

func rankStrategies(d *SpringCircularDependency) []ResolutionStrategy {
	if len(d.Edges) == 0 {
		return nil
	}
	target := breakEdge(d.Edges)
	source := model.SimpleNameOf(target.Source)
	dependency := model.SimpleNameOf(target.Target)

	var order []StrategyType
	if !d.HasLazyResolution {
		order = append(order, StrategyLazyInitialization)
	}
	order = append(order, StrategyInterfaceSegregation, StrategySetterInjection, StrategyEventDrivenDecoupling)

	strategies := make([]ResolutionStrategy, 0, len(order))
	for i, t := range order {
		strategies = append(strategies, ResolutionStrategy{
			Type:        t,
			Rank:        i + 1,
			TargetEdge:  target.String(),
			Description: strategyDescription(t, target, source, dependency),
		})
	}
	return strategies
}

func strategyDescription(t StrategyType, e ComponentEdge, source, dependency string) string {
	switch t {
	case StrategyLazyInitialization:
		switch e.Injection {
		case InjectionConstructor:
			return fmt.Sprintf("Annotate the %s parameter of %s's constructor with @Lazy", dependency, source)
		case InjectionField:
			return fmt.Sprintf("Move %s.%s to constructor injection and annotate the parameter with @Lazy", source, e.Member)
		default:
			return fmt.Sprintf("Annotate the %s setter parameter in %s with @Lazy", dependency, source)
		}
	case StrategyInterfaceSegregation:
		return fmt.Sprintf("Extract the operations %s uses into an interface that %s implements, owned by %s's side",
			source, dependency, source)
	case StrategySetterInjection:
		if e.Injection == InjectionSetter {
			return fmt.Sprintf("%s already receives %s through a setter; keep it optional and out of construction", source, dependency)
		}
		return fmt.Sprintf("Inject %s into %s through an @Autowired setter so both beans can be constructed first",
			dependency, source)
	case StrategyEventDrivenDecoupling:
		return fmt.Sprintf("Have %s publish an ApplicationEvent that %s listens for instead of calling it directly",
			source, dependency)
	default:
		return ""
	}
}
