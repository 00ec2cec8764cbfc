package routing

import (
	"fmt"
	"slices"
)

// Level is an accessibility level. Higher levels unlock a superset of edges.
type Level int

// Edge is a connection record between two locations.
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
	Level  Level   `json:"level" yaml:"level"`
}

// arc is one direction of an Edge.
type arc struct {
	to     string
	weight float64
	level  Level
}

// Graph maps a node id to its outgoing arcs in insertion order.
type Graph struct {
	nodes []string
	adj   map[string][]arc
}

// Build validates the records and assembles an undirected graph.
// Every endpoint must be listed in nodes.
func Build(nodes []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]string, 0, len(nodes)),
		adj:   make(map[string][]arc, len(nodes)),
	}

	for _, id := range nodes {
		if _, exists := g.adj[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		}
		g.adj[id] = nil
		g.nodes = append(g.nodes, id)
	}
	slices.Sort(g.nodes)

	seen := make(map[[2]string]bool, len(edges))
	for i, e := range edges {
		if err := g.check(e, seen); err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
		g.adj[e.From] = append(g.adj[e.From], arc{to: e.To, weight: e.Weight, level: e.Level})
		g.adj[e.To] = append(g.adj[e.To], arc{to: e.From, weight: e.Weight, level: e.Level})
	}

	return g, nil
}

func (g *Graph) check(e Edge, seen map[[2]string]bool) error {
	for _, id := range []string{e.From, e.To} {
		if _, ok := g.adj[id]; !ok {
			return fmt.Errorf("%w: %q (%s -> %s)", ErrDanglingEndpoint, id, e.From, e.To)
		}
	}
	if !(e.Weight > 0) {
		return fmt.Errorf("%w: %s -> %s has weight %v", ErrNonPositiveWeight, e.From, e.To, e.Weight)
	}
	if e.Level < 0 {
		return fmt.Errorf("%w: %s -> %s has level %d", ErrNegativeLevel, e.From, e.To, e.Level)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: self loop on %q", ErrDuplicateEdge, e.From)
	}

	key := [2]string{e.From, e.To}
	if e.To < e.From {
		key = [2]string{e.To, e.From}
	}
	if seen[key] {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, e.From, e.To)
	}
	seen[key] = true
	return nil
}

// Nodes returns the node ids in ascending order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Edges returns the outgoing edges of id in insertion order.
func (g *Graph) Edges(id string) []Edge {
	arcs := g.adj[id]
	out := make([]Edge, 0, len(arcs))
	for _, a := range arcs {
		out = append(out, Edge{From: id, To: a.to, Weight: a.weight, Level: a.level})
	}
	return out
}

// Levels returns the distinct required levels present in the graph, ascending.
func (g *Graph) Levels() []Level {
	var levels []Level
	for _, arcs := range g.adj {
		for _, a := range arcs {
			if !slices.Contains(levels, a.level) {
				levels = append(levels, a.level)
			}
		}
	}
	slices.Sort(levels)
	return levels
}
