package graph

import (
	"errors"
	"fmt"

	"github.com/mabhi256/jarscope/internal/model"
)

var (
	// ErrNilContent is returned synchronously when BuildDependencyGraph gets no content
	ErrNilContent = errors.New("jar content is required")

	// ErrUnresolved means the bytecode behind a type reference could not be loaded
	ErrUnresolved = errors.New("type could not be resolved")
)

// MethodSignature is the resolved return and parameter types of a method
type MethodSignature struct {
	ReturnType     string
	ParameterTypes []string
}

//go:generate mockgen -source=resolver.go -destination=mock_resolver_test.go -package=graph

// TypeResolver resolves the structural references of a class. Failures are
// reported as errors wrapping ErrUnresolved, never as panics.
type TypeResolver interface {
	ResolveSuperclass(class *model.ClassInfo) (string, error)
	ResolveInterfaces(class *model.ClassInfo) ([]string, error)
	ResolveFieldType(class *model.ClassInfo, field model.FieldInfo) (string, error)
	ResolveMethodSignature(class *model.ClassInfo, method model.MethodInfo) (MethodSignature, error)
}

// PoolResolver answers from a class pool: a class whose bytecode the pool
// cannot load has no resolvable hierarchy.
type PoolResolver struct {
	pool model.ClassPool
}

func NewPoolResolver(pool model.ClassPool) *PoolResolver {
	return &PoolResolver{pool: pool}
}

func (r *PoolResolver) load(class *model.ClassInfo) (*model.ClassInfo, error) {
	if class == nil {
		return nil, fmt.Errorf("%w: nil class", ErrUnresolved)
	}
	if r.pool == nil {
		return class, nil
	}
	loaded := r.pool.GetCachedClass(class.Name)
	if loaded == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, class.Name)
	}
	return loaded, nil
}

func (r *PoolResolver) ResolveSuperclass(class *model.ClassInfo) (string, error) {
	loaded, err := r.load(class)
	if err != nil {
		return "", err
	}
	return model.NormalizeType(loaded.SuperClass), nil
}

func (r *PoolResolver) ResolveInterfaces(class *model.ClassInfo) ([]string, error) {
	loaded, err := r.load(class)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(loaded.Interfaces))
	for _, iface := range loaded.Interfaces {
		out = append(out, model.NormalizeType(iface))
	}
	return out, nil
}

func (r *PoolResolver) ResolveFieldType(class *model.ClassInfo, field model.FieldInfo) (string, error) {
	if field.Type == "" {
		return "", fmt.Errorf("%w: field %s.%s has no type", ErrUnresolved, class.Name, field.Name)
	}
	return model.NormalizeType(field.Type), nil
}

func (r *PoolResolver) ResolveMethodSignature(class *model.ClassInfo, method model.MethodInfo) (MethodSignature, error) {
	if method.ReturnType == "" && !method.IsConstructor() {
		return MethodSignature{}, fmt.Errorf("%w: method %s.%s has no return type", ErrUnresolved, class.Name, method.Name)
	}
	sig := MethodSignature{
		ReturnType:     model.NormalizeType(method.ReturnType),
		ParameterTypes: make([]string, 0, len(method.ParameterTypes)),
	}
	for _, p := range method.ParameterTypes {
		sig.ParameterTypes = append(sig.ParameterTypes, model.NormalizeType(p))
	}
	return sig, nil
}
