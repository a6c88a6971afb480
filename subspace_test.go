package rydberg_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"

	"rydberg"
)

func freeSites(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return g
}

func TestBlockadeSubspaceFree(t *testing.T) {
	t.Parallel()
	// Without edges every configuration survives, in ascending order.
	for n := 0; n <= 4; n++ {
		s := rydberg.BlockadeSubspace(freeSites(n))
		require.Len(t, s, 1<<n, "n=%d", n)
		for i, c := range s {
			assert.Equal(t, rydberg.Config(i), c)
		}
	}
}

func TestBlockadeSubspace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		g        *simple.UndirectedGraph
		expected []rydberg.Config
	}{
		{g: rydberg.Chain(2), expected: []rydberg.Config{0, 1, 2}},
		{g: rydberg.Ring(4), expected: []rydberg.Config{0, 1, 2, 4, 5, 8, 10}},
		{g: complete(3), expected: []rydberg.Config{0, 1, 2, 4}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.expected), func(t *testing.T) {
			t.Parallel()
			s := rydberg.BlockadeSubspace(test.g)
			assert.Equal(t, rydberg.Subspace(test.expected), s)
		})
	}
}

func complete(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}
	return g
}

// TestBlockadeProperty checks that no surviving configuration occupies both
// endpoints of any edge, and that the subspace is strictly ascending.
func TestBlockadeProperty(t *testing.T) {
	t.Parallel()
	g := rydberg.Ring(5)
	s := rydberg.BlockadeSubspace(g)

	for i := 1; i < len(s); i++ {
		require.Less(t, s[i-1], s[i])
	}

	edges := g.Edges()
	for edges.Next() {
		e := edges.Edge()
		i, j := int(e.From().ID()), int(e.To().ID())
		for _, c := range s {
			assert.False(t, c.Occupied(i) && c.Occupied(j), "config %b edge %d-%d", c, i, j)
		}
	}
}

func TestNewSubspace(t *testing.T) {
	t.Parallel()
	// The two maximal independent sets of a 4-ring generate its full subspace.
	s := rydberg.NewSubspace(4, [][]int{{0, 2}, {1, 3}})
	assert.Equal(t, rydberg.BlockadeSubspace(rydberg.Ring(4)), s)
}

func TestMaximalIndependentSets(t *testing.T) {
	t.Parallel()
	sets := rydberg.MaximalIndependentSets(rydberg.Ring(4))
	require.Len(t, sets, 2)
	assert.ElementsMatch(t, [][]int{{0, 2}, {1, 3}}, sets)
}

func TestSubspaceIndex(t *testing.T) {
	t.Parallel()
	s := rydberg.BlockadeSubspace(rydberg.Ring(4))

	for i, c := range s {
		k, ok := s.Index(c)
		require.True(t, ok)
		assert.Equal(t, i, k)
	}

	_, ok := s.Index(3)
	assert.False(t, ok)
	_, ok = s.Index(15)
	assert.False(t, ok)
}

func TestConfig(t *testing.T) {
	t.Parallel()
	c := rydberg.Config(0b1010)
	assert.False(t, c.Occupied(0))
	assert.True(t, c.Occupied(1))
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, rydberg.Config(0b1011), c.Flip(0))
	assert.Equal(t, rydberg.Config(0b0010), c.Flip(3))
}

func TestLattices(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		g     *simple.UndirectedGraph
		nodes int
		edges int
	}{
		{name: "chain", g: rydberg.Chain(5), nodes: 5, edges: 4},
		{name: "ring", g: rydberg.Ring(5), nodes: 5, edges: 5},
		{name: "ring2", g: rydberg.Ring(2), nodes: 2, edges: 1},
		{name: "grid", g: rydberg.Grid(3, 4), nodes: 12, edges: 17},
		{name: "disk", g: rydberg.UnitDisk([][2]float64{{0, 0}, {1, 0}, {5, 0}}, 1.5), nodes: 3, edges: 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.nodes, test.g.Nodes().Len())
			assert.Equal(t, test.edges, test.g.Edges().Len())
		})
	}
}
