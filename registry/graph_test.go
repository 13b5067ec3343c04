package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a -> b -> c.
func chain(t *testing.T) (*Graph, NodeID, NodeID, NodeID) {
	t.Helper()
	g := NewGraph()
	a := g.Add("a", KindCommand)
	b := g.Add("b", KindStruct)
	c := g.Add("c", KindEnum)
	g.AddDependency(a, b)
	g.AddDependency(b, c)
	return g, a, b, c
}

func TestEnablePropagatesToDependencies(t *testing.T) {
	g, a, b, c := chain(t)

	g.SetEnabled(a, true)

	for _, id := range []NodeID{a, b, c} {
		assert.True(t, g.CanGenerate(id), g.Name(id))
	}
	assert.Equal(t, []NodeID{a}, g.Subscribers(b))
	assert.Equal(t, []NodeID{b}, g.Subscribers(c))
	assert.False(t, g.IsRequired(a))
	assert.True(t, g.IsRequired(b))
}

func TestDisableReleasesDependencies(t *testing.T) {
	g, a, b, c := chain(t)
	g.SetEnabled(a, true)

	g.SetEnabled(a, false)

	for _, id := range []NodeID{a, b, c} {
		assert.False(t, g.CanGenerate(id), g.Name(id))
		assert.Empty(t, g.Subscribers(id))
	}
}

func TestSharedDependencyStaysRequired(t *testing.T) {
	g := NewGraph()
	a := g.Add("a", KindCommand)
	b := g.Add("b", KindCommand)
	shared := g.Add("shared", KindStruct)
	g.AddDependency(a, shared)
	g.AddDependency(b, shared)

	g.SetEnabled(a, true)
	g.SetEnabled(b, true)
	g.SetEnabled(a, false)

	assert.True(t, g.CanGenerate(shared))
	assert.Equal(t, []NodeID{b}, g.Subscribers(shared))

	g.SetEnabled(b, false)
	assert.False(t, g.CanGenerate(shared))
}

func TestCycleTerminates(t *testing.T) {
	g := NewGraph()
	a := g.Add("a", KindStruct)
	b := g.Add("b", KindStruct)
	c := g.Add("c", KindStruct)
	g.AddDependency(a, b)
	g.AddDependency(b, c)
	g.AddDependency(c, a)

	g.SetEnabled(a, true)
	for _, id := range []NodeID{a, b, c} {
		assert.True(t, g.CanGenerate(id), g.Name(id))
	}

	g.SetEnabled(a, false)
	for _, id := range []NodeID{a, b, c} {
		assert.False(t, g.IsEnabled(id), g.Name(id))
	}
}

func TestMutualDependencySkipsSubscriber(t *testing.T) {
	g := NewGraph()
	a := g.Add("a", KindStruct)
	b := g.Add("b", KindStruct)
	g.AddDependency(a, b)
	g.AddDependency(b, a)

	g.SetEnabled(a, true)

	// b is enabled through a; b does not subscribe back to its own subscriber
	assert.Equal(t, []NodeID{a}, g.Subscribers(b))
	assert.Empty(t, g.Subscribers(a))
	assert.True(t, g.CanGenerate(b))

	g.SetEnabled(a, false)
	assert.False(t, g.CanGenerate(a))
	assert.False(t, g.CanGenerate(b))
}

func TestSubscribeIdempotent(t *testing.T) {
	g := NewGraph()
	dep := g.Add("dep", KindStruct)
	req := g.Add("req", KindCommand)

	g.Subscribe(dep, req)
	g.Subscribe(dep, req)
	assert.Equal(t, []NodeID{req}, g.Subscribers(dep))

	g.Unsubscribe(dep, req)
	g.Unsubscribe(dep, req)
	assert.Empty(t, g.Subscribers(dep))
	assert.False(t, g.IsEnabled(dep))
}

func TestUnsupportedIsPermanent(t *testing.T) {
	g, a, b, _ := chain(t)
	g.SetUnsupported(b)

	g.SetEnabled(a, true)
	g.SetEnabled(b, true)
	g.SetForceRequired(b, true)

	assert.True(t, g.CanGenerate(a))
	assert.False(t, g.CanGenerate(b))
	assert.False(t, g.IsEnabled(b))
	// the edge is still recorded even though b will never generate
	assert.Equal(t, []NodeID{a}, g.Subscribers(b))
}

func TestUnsupportedStopsPropagation(t *testing.T) {
	g, a, b, c := chain(t)
	g.SetUnsupported(b)

	g.SetEnabled(a, true)

	assert.False(t, g.CanGenerate(c), "an unsupported node never enables its dependencies")
	_ = b
}

func TestForceRequired(t *testing.T) {
	g := NewGraph()
	id := g.Add("VkResult", KindEnum)
	assert.False(t, g.CanGenerate(id))

	g.SetForceRequired(id, true)
	assert.True(t, g.IsRequired(id))
	assert.True(t, g.CanGenerate(id))
	assert.False(t, g.IsEnabled(id))
}

func TestAddDependencyWhileEnabled(t *testing.T) {
	g := NewGraph()
	a := g.Add("a", KindCommand)
	b := g.Add("b", KindStruct)
	g.SetEnabled(a, true)

	g.AddDependency(a, b)
	g.AddDependency(a, b)

	assert.True(t, g.CanGenerate(b))
	assert.Equal(t, []NodeID{b}, g.Dependencies(a))
}

func TestGenerateSet(t *testing.T) {
	g, a, b, c := chain(t)
	other := g.Add("other", KindCommand)
	g.SetEnabled(b, true)

	set := g.GenerateSet()
	require.Len(t, set, 2)
	assert.ElementsMatch(t, []NodeID{b, c}, set)
	assert.NotContains(t, set, a)
	assert.NotContains(t, set, other)
}
