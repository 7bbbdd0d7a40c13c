package spring

import (
	"strings"

	"github.com/mabhi256/jarscope/internal/model"
)

const defaultScope = "singleton"

// stereotypeOf recognises a component by a direct stereotype annotation or
// one reachable through meta-annotations
func (r *run) stereotypeOf(class *model.ClassInfo) (Stereotype, model.AnnotationInfo, bool) {
	for _, a := range class.Annotations {
		if s, ok := r.metaStereotype(a.Type, map[string]bool{}); ok {
			return s, a, true
		}
	}
	return "", model.AnnotationInfo{}, false
}

// metaStereotype resolves an annotation type to a stereotype. Annotation
// classes are looked up in the pool; visiting guards against annotations
// that annotate each other.
func (r *run) metaStereotype(annotation string, visiting map[string]bool) (Stereotype, bool) {
	if s, ok := r.markers.stereotypes[annotation]; ok {
		return s, true
	}
	if cached, ok := r.meta[annotation]; ok {
		return cached, cached != ""
	}
	if visiting[annotation] || strings.HasPrefix(annotation, "java.lang.") {
		return "", false
	}
	top := len(visiting) == 0
	visiting[annotation] = true

	var found Stereotype
	if def := r.lookup(annotation); def != nil && def.Kind == model.KindAnnotation {
		for _, a := range def.Annotations {
			if s, ok := r.metaStereotype(a.Type, visiting); ok {
				found = s
				break
			}
		}
	}
	// a miss below the top level may only be a cut-off loop
	if found != "" || top {
		r.meta[annotation] = found
	}
	return found, found != ""
}

func (r *run) component(class *model.ClassInfo) (*SpringComponentInfo, bool) {
	if class == nil || class.IsAbstract() {
		return nil, false
	}
	stereotype, marker, ok := r.stereotypeOf(class)
	if !ok {
		return nil, false
	}

	info := &SpringComponentInfo{
		ClassName:  class.Name,
		BeanName:   marker.Value(),
		Stereotype: stereotype,
		Scope:      defaultScope,
	}
	if info.BeanName == "" {
		info.BeanName = model.DecapitalizedName(class.SimpleName())
	}
	if a, ok := class.Annotation(r.markers.lazy...); ok {
		info.Lazy = a.Bool("value", true)
	}
	info.Primary = class.HasAnnotation(r.markers.primary...)
	if a, ok := class.Annotation(r.markers.scope...); ok {
		if scope := firstNonEmpty(a.Value(), a.String("scopeName")); scope != "" {
			info.Scope = scope
		}
	}
	if a, ok := class.Annotation(r.markers.qualifier...); ok && a.Value() != "" {
		info.Qualifiers = append(info.Qualifiers, a.Value())
	}

	info.Dependencies = r.dependencies(class)
	return info, true
}

func (r *run) dependencies(class *model.ClassInfo) []BeanDependency {
	var deps []BeanDependency

	if ctor, ok := r.injectionConstructor(class); ok {
		ctorLazy := r.lazyMarked(ctor.Annotations)
		for i, p := range ctor.ParameterTypes {
			params := ctor.ParameterAnnotationsAt(i)
			deps = append(deps, BeanDependency{
				TargetType: model.NormalizeType(p),
				Injection:  InjectionConstructor,
				Member:     ctor.Signature(),
				Qualifier:  r.qualifier(params),
				Lazy:       ctorLazy || r.lazyMarked(params),
			})
		}
	}

	for _, f := range class.Fields {
		if f.Modifiers.Has(model.ModStatic) || f.Modifiers.Has(model.ModSynthetic) {
			continue
		}
		if !f.HasAnnotation(r.markers.autowired...) {
			continue
		}
		deps = append(deps, BeanDependency{
			TargetType: model.NormalizeType(f.Type),
			Injection:  InjectionField,
			Member:     f.Name,
			Qualifier:  r.qualifier(f.Annotations),
			Lazy:       r.lazyMarked(f.Annotations),
		})
	}

	for _, m := range class.Methods {
		if m.IsConstructor() || m.Modifiers.Has(model.ModStatic) || m.Modifiers.Has(model.ModSynthetic) {
			continue
		}
		if !m.HasAnnotation(r.markers.autowired...) {
			continue
		}
		methodLazy := r.lazyMarked(m.Annotations)
		methodQualifier := r.qualifier(m.Annotations)
		for i, p := range m.ParameterTypes {
			params := m.ParameterAnnotationsAt(i)
			deps = append(deps, BeanDependency{
				TargetType: model.NormalizeType(p),
				Injection:  InjectionSetter,
				Member:     m.Signature(),
				Qualifier:  firstNonEmpty(r.qualifier(params), methodQualifier),
				Lazy:       methodLazy || r.lazyMarked(params),
			})
		}
	}

	return deps
}

// injectionConstructor follows the container's choice: an autowired
// constructor wins, otherwise a class with exactly one constructor uses it.
// With several unmarked constructors the no-arg one is used, which has no
// dependencies.
func (r *run) injectionConstructor(class *model.ClassInfo) (model.MethodInfo, bool) {
	var ctors []model.MethodInfo
	for _, c := range class.Constructors() {
		if !c.Modifiers.Has(model.ModSynthetic) {
			ctors = append(ctors, c)
		}
	}
	for _, c := range ctors {
		if c.HasAnnotation(r.markers.autowired...) {
			return c, true
		}
	}
	if len(ctors) == 1 {
		return ctors[0], true
	}
	return model.MethodInfo{}, false
}

func (r *run) lazyMarked(annotations []model.AnnotationInfo) bool {
	a, ok := model.FindAnnotation(annotations, r.markers.lazy...)
	return ok && a.Bool("value", true)
}

// qualifier reads @Qualifier/@Named values and the name of @Resource
func (r *run) qualifier(annotations []model.AnnotationInfo) string {
	if a, ok := model.FindAnnotation(annotations, r.markers.qualifier...); ok && a.Value() != "" {
		return a.Value()
	}
	if a, ok := model.FindAnnotation(annotations, r.markers.autowired...); ok {
		return a.String("name")
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
