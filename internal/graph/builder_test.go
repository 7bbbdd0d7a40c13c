package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mabhi256/jarscope/internal/model"
)

func class(name, super string, interfaces ...string) *model.ClassInfo {
	return &model.ClassInfo{Name: name, SuperClass: super, Interfaces: interfaces}
}

func withField(c *model.ClassInfo, name, typeName string) *model.ClassInfo {
	c.Fields = append(c.Fields, model.FieldInfo{Name: name, Type: typeName})
	return c
}

func withMethod(c *model.ClassInfo, name, ret string, params ...string) *model.ClassInfo {
	c.Methods = append(c.Methods, model.MethodInfo{Name: name, ReturnType: ret, ParameterTypes: params})
	return c
}

func sampleClasses() []*model.ClassInfo {
	service := class("com.acme.a.OrderService", "com.acme.a.BaseService", "com.acme.a.OrderApi")
	withField(service, "repository", "com.acme.b.OrderRepository")
	withField(service, "name", "java.lang.String")
	withField(service, "count", "int")
	withField(service, "self", "com.acme.a.OrderService")
	withField(service, "items", "java.util.List<com.acme.a.Order>")
	withMethod(service, "find", "com.acme.a.Order[]", "long", "com.acme.b.Criteria")
	withMethod(service, "toString", "java.lang.String")
	withMethod(service, "run", "void")

	return []*model.ClassInfo{
		service,
		class("com.acme.a.BaseService", model.RootType),
		class("com.acme.b.OrderRepository", model.RootType),
	}
}

func edgeKeys(edges []*DependencyEdge) []EdgeKey {
	keys := make([]EdgeKey, 0, len(edges))
	for _, e := range edges {
		keys = append(keys, e.Key())
	}
	return keys
}

func TestBuildDependencyGraph_NilContent(t *testing.T) {
	result, err := NewBuilder().BuildDependencyGraph(nil)
	require.ErrorIs(t, err, ErrNilContent)
	assert.Nil(t, result)
}

func TestBuildDependencyGraph_NilClasses(t *testing.T) {
	result, err := NewBuilder().BuildDependencyGraph(&model.JarContent{Source: "app.jar"})
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Empty(t, result.Nodes)
	assert.Empty(t, result.Edges)
}

func TestBuildDependencyGraph_EmptyClasses(t *testing.T) {
	result, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar", []*model.ClassInfo{}))
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.Zero(t, result.Metrics.TotalNodes)
	assert.Zero(t, result.Metrics.Density)
	assert.Zero(t, result.Metrics.AverageDegree)
}

func TestBuildDependencyGraph_Edges(t *testing.T) {
	result, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar", sampleClasses()))
	require.NoError(t, err)
	require.True(t, result.IsValid())

	assert.ElementsMatch(t, []EdgeKey{
		{"com.acme.a.OrderService", "com.acme.a.BaseService", EdgeInheritance},
		{"com.acme.a.OrderService", "com.acme.a.OrderApi", EdgeImplements},
		{"com.acme.a.OrderService", "com.acme.b.OrderRepository", EdgeComposition},
		{"com.acme.a.OrderService", "com.acme.a.Order", EdgeUses},
		{"com.acme.a.OrderService", "com.acme.b.Criteria", EdgeUses},
	}, edgeKeys(result.Edges))

	m := result.Metrics
	assert.Equal(t, 3, m.ClassNodes)
	assert.Equal(t, 2, m.PackageNodes)
	assert.Equal(t, 3, m.ExternalNodes, "OrderApi, Order and Criteria are synthesized")
	assert.Equal(t, 8, m.TotalNodes)
	assert.Equal(t, 5, m.TotalEdges)
	assert.InDelta(t, 5.0/8.0, m.AverageDegree, 1e-9)
	assert.InDelta(t, 5.0/56.0, m.Density, 1e-9)
	assert.Equal(t, 2, m.EdgesByType[EdgeUses])
	assert.Empty(t, result.CircularDependencies)

	for _, e := range result.Edges {
		assert.NotEqual(t, e.Source, e.Target, "self loop %v", e.Key())
		_, ok := result.NodeByID(e.Target)
		assert.True(t, ok, "target %s has a node", e.Target)
	}

	node, ok := result.NodeByID("com.acme.a.OrderService")
	require.True(t, ok)
	assert.Equal(t, 5, node.OutDegree)
	assert.True(t, node.Analyzed)

	api, ok := result.NodeByID("com.acme.a.OrderApi")
	require.True(t, ok)
	assert.Equal(t, NodeClass, api.Type)
	assert.Equal(t, 1, api.InDegree)
	assert.False(t, api.Analyzed)
}

func TestBuildDependencyGraph_NoDuplicateEdges(t *testing.T) {
	c := class("com.acme.Holder", model.RootType)
	withField(c, "first", "com.acme.Part")
	withField(c, "second", "com.acme.Part")
	withMethod(c, "swap", "com.acme.Part", "com.acme.Part")

	result, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar", []*model.ClassInfo{c}))
	require.NoError(t, err)

	assert.ElementsMatch(t, []EdgeKey{
		{"com.acme.Holder", "com.acme.Part", EdgeComposition},
		{"com.acme.Holder", "com.acme.Part", EdgeUses},
	}, edgeKeys(result.Edges))
}

func TestBuildDependencyGraph_Idempotent(t *testing.T) {
	classes := sampleClasses()
	builder := NewBuilder()

	first, err := builder.BuildDependencyGraph(model.NewJarContent("app.jar", classes))
	require.NoError(t, err)

	// the same class listed twice must not change anything
	doubled := append(append([]*model.ClassInfo{}, classes...), classes...)
	second, err := builder.BuildDependencyGraph(model.NewJarContent("app.jar", doubled))
	require.NoError(t, err)

	assert.Equal(t, len(first.Nodes), len(second.Nodes))
	assert.Equal(t, len(first.Edges), len(second.Edges))
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestBuildDependencyGraph_DensityBounds(t *testing.T) {
	// two classes tied by every edge type in both directions
	a := withMethod(withField(class("p.A", "p.B", "p.B"), "b", "p.B"), "use", "p.B")
	b := withMethod(withField(class("p.B", model.RootType, "p.A"), "a", "p.A"), "use", "p.A")

	result, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar", []*model.ClassInfo{a, b}))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Metrics.Density, 0.0)
	assert.LessOrEqual(t, result.Metrics.Density, 1.0)

	single, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar",
		[]*model.ClassInfo{class("Lonely", model.RootType)}))
	require.NoError(t, err)
	// one class node in the default package plus the "" package node
	assert.Equal(t, 2, single.Metrics.TotalNodes)
	assert.Zero(t, single.Metrics.TotalEdges)
	assert.Zero(t, single.Metrics.Density)
}

func TestBuildDependencyGraph_DetectsClassCycles(t *testing.T) {
	a := withField(class("com.acme.A", model.RootType), "b", "com.acme.B")
	b := withField(class("com.acme.B", model.RootType), "c", "com.acme.C")
	c := withMethod(class("com.acme.C", model.RootType), "back", "void", "com.acme.A")
	d := withField(class("com.acme.D", model.RootType), "d", "com.acme.D")

	result, err := NewBuilder().BuildDependencyGraph(model.NewJarContent("app.jar", []*model.ClassInfo{a, b, c, d}))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"com.acme.A", "com.acme.B", "com.acme.C"}}, result.CircularDependencies)
	assert.Equal(t, 1, result.Metrics.Cycles)
}

func TestBuildDependencyGraph_UnresolvableClassIsSkipped(t *testing.T) {
	known := withField(class("com.acme.Known", model.RootType), "dep", "com.acme.Dep")
	missing := withField(class("com.acme.Missing", "com.acme.Base"), "dep", "com.acme.Dep")

	content := &model.JarContent{
		Source:  "app.jar",
		Classes: []*model.ClassInfo{known, missing},
		// the pool cannot load Missing's bytecode
		Pool: model.NewClassSet([]*model.ClassInfo{known}),
	}

	result, err := NewBuilder().BuildDependencyGraph(content)
	require.NoError(t, err)
	require.True(t, result.IsValid())

	assert.Equal(t, []EdgeKey{{"com.acme.Known", "com.acme.Dep", EdgeComposition}}, edgeKeys(result.Edges))
	require.Len(t, result.Notes, 1)
	assert.Contains(t, result.Notes[0], "com.acme.Missing")

	node, ok := result.NodeByID("com.acme.Missing")
	require.True(t, ok, "the class node is still created")
	assert.Zero(t, node.OutDegree)
}

func TestBuildDependencyGraph_ResolverFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockTypeResolver(ctrl)

	broken := withField(class("com.acme.Broken", model.RootType), "target", "com.acme.Target")
	healthy := class("com.acme.Healthy", "com.acme.Base")
	withField(healthy, "target", "com.acme.Target")
	withField(healthy, "ghost", "com.acme.Ghost")

	resolver.EXPECT().ResolveSuperclass(gomock.Any()).DoAndReturn(func(c *model.ClassInfo) (string, error) {
		if c.Name == "com.acme.Broken" {
			return "", fmt.Errorf("%w: %s", ErrUnresolved, c.Name)
		}
		return c.SuperClass, nil
	}).Times(2)
	resolver.EXPECT().ResolveInterfaces(healthy).Return(nil, nil)
	resolver.EXPECT().ResolveFieldType(healthy, gomock.Any()).DoAndReturn(func(_ *model.ClassInfo, f model.FieldInfo) (string, error) {
		if f.Name == "ghost" {
			return "", ErrUnresolved
		}
		return f.Type, nil
	}).Times(2)

	result, err := NewBuilder(WithResolver(resolver)).BuildDependencyGraph(
		model.NewJarContent("app.jar", []*model.ClassInfo{broken, healthy}))
	require.NoError(t, err)
	require.True(t, result.IsValid())

	assert.ElementsMatch(t, []EdgeKey{
		{"com.acme.Healthy", "com.acme.Base", EdgeInheritance},
		{"com.acme.Healthy", "com.acme.Target", EdgeComposition},
	}, edgeKeys(result.Edges))
	assert.Len(t, result.Notes, 2)
}

func TestBuildDependencyGraph_PanicBecomesFailedResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockTypeResolver(ctrl)
	resolver.EXPECT().ResolveSuperclass(gomock.Any()).DoAndReturn(func(*model.ClassInfo) (string, error) {
		panic("corrupt metadata")
	})

	result, err := NewBuilder(WithResolver(resolver)).BuildDependencyGraph(
		model.NewJarContent("app.jar", []*model.ClassInfo{class("com.acme.A", model.RootType)}))
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Contains(t, result.ErrorMessage, "corrupt metadata")
	assert.Contains(t, result.GetSummary(), "failed")
}

func TestPoolResolver(t *testing.T) {
	base := class("com.acme.Impl", "com.acme.Base", "com.acme.Api<java.lang.String>")
	resolver := NewPoolResolver(model.NewClassSet([]*model.ClassInfo{base}))

	super, err := resolver.ResolveSuperclass(base)
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Base", super)

	ifaces, err := resolver.ResolveInterfaces(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.acme.Api"}, ifaces)

	_, err = resolver.ResolveSuperclass(class("com.acme.Other", ""))
	assert.ErrorIs(t, err, ErrUnresolved)

	_, err = resolver.ResolveFieldType(base, model.FieldInfo{Name: "untyped"})
	assert.ErrorIs(t, err, ErrUnresolved)

	sig, err := resolver.ResolveMethodSignature(base, model.MethodInfo{
		Name: "<init>", ParameterTypes: []string{"com.acme.Dep[]"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.acme.Dep"}, sig.ParameterTypes)
}
