package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond is the two-branch graph: A-B-D at level 0, A-C-D at level 2.
func diamond(t *testing.T) *Graph {
	t.Helper()
	g, err := Build([]string{"A", "B", "C", "D"}, []Edge{
		{From: "A", To: "B", Weight: 1, Level: 0},
		{From: "B", To: "D", Weight: 1, Level: 0},
		{From: "A", To: "C", Weight: 1, Level: 2},
		{From: "C", To: "D", Weight: 1, Level: 2},
	})
	require.NoError(t, err)
	return g
}

func TestShortestPath_Diamond(t *testing.T) {
	g := diamond(t)

	route, err := g.ShortestPath("A", "D", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, route.Nodes)
	assert.Equal(t, 2.0, route.Cost)

	first, err := g.ShortestPath("A", "D", 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, first.Cost)

	for range 10 {
		again, err := g.ShortestPath("A", "D", 2)
		require.NoError(t, err)
		assert.Equal(t, first, again, "tie-break must be deterministic")
	}
	assert.Equal(t, []string{"A", "B", "D"}, first.Nodes, "first discovered branch wins on ties")
}

func TestShortestPath_SameNode(t *testing.T) {
	g := diamond(t)

	route, err := g.ShortestPath("C", "C", 0)
	require.NoError(t, err)
	assert.Equal(t, Route{Nodes: []string{"C"}}, route)
	assert.Equal(t, "C", route.Source())
	assert.Equal(t, "C", route.Destination())
}

func TestShortestPath_UnknownNode(t *testing.T) {
	g := diamond(t)

	_, err := g.ShortestPath("A", "Z", 5)
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = g.ShortestPath("Z", "Z", 5)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestShortestPath_NegativeLevel(t *testing.T) {
	_, err := diamond(t).ShortestPath("A", "D", -1)
	assert.ErrorIs(t, err, ErrNegativeLevel)
}

func TestShortestPath_UnlockedByLevel(t *testing.T) {
	// The only way to E goes through a level 3 ramp.
	g, err := Build([]string{"A", "B", "E"}, []Edge{
		{From: "A", To: "B", Weight: 1},
		{From: "B", To: "E", Weight: 4, Level: 3},
	})
	require.NoError(t, err)

	_, err = g.ShortestPath("A", "E", 2)
	assert.ErrorIs(t, err, ErrUnreachable)

	route, err := g.ShortestPath("A", "E", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "E"}, route.Nodes)
	assert.Equal(t, 5.0, route.Cost)

	lvl, err := g.MinimumLevel("A", "E")
	require.NoError(t, err)
	assert.Equal(t, Level(3), lvl)
}

func TestShortestPath_Disconnected(t *testing.T) {
	g, err := Build([]string{"A", "B", "Island"}, []Edge{{From: "A", To: "B", Weight: 1}})
	require.NoError(t, err)

	_, err = g.ShortestPath("A", "Island", 100)
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = g.MinimumLevel("A", "Island")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestShortestPath_PrefersCheaperLongerRoute(t *testing.T) {
	g, err := Build([]string{"A", "B", "C", "D"}, []Edge{
		{From: "A", To: "D", Weight: 10},
		{From: "A", To: "B", Weight: 2},
		{From: "B", To: "C", Weight: 2},
		{From: "C", To: "D", Weight: 2},
	})
	require.NoError(t, err)

	route, err := g.ShortestPath("A", "D", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, route.Nodes)
	assert.Equal(t, 6.0, route.Cost)
	assert.Equal(t, 4, route.Len())

	back, err := g.ShortestPath("D", "A", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "B", "A"}, back.Nodes)
}
