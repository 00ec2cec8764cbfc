package routing

import (
	"container/heap"
	"fmt"
	"slices"
)

// Route is an ordered sequence of node ids from source to destination inclusive.
type Route struct {
	Nodes []string `json:"nodes"`
	Cost  float64  `json:"cost"`
}

// Len returns the number of nodes in the route.
func (r Route) Len() int {
	return len(r.Nodes)
}

// Source returns the first node of the route.
func (r Route) Source() string {
	if len(r.Nodes) == 0 {
		return ""
	}
	return r.Nodes[0]
}

// Destination returns the last node of the route.
func (r Route) Destination() string {
	if len(r.Nodes) == 0 {
		return ""
	}
	return r.Nodes[len(r.Nodes)-1]
}

// ShortestPath returns the minimum-cost route between source and destination
// using only edges whose required level is at most level.
func (g *Graph) ShortestPath(source, destination string, level Level) (Route, error) {
	if level < 0 {
		return Route{}, fmt.Errorf("%w: %d", ErrNegativeLevel, level)
	}
	for _, id := range []string{source, destination} {
		if !g.Has(id) {
			return Route{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
	}
	if source == destination {
		return Route{Nodes: []string{source}}, nil
	}

	dist := map[string]float64{source: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	var seq uint64
	pq := &queue{}
	heap.Push(pq, &item{node: source})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*item)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true

		if cur.node == destination {
			return Route{Nodes: walkBack(prev, source, destination), Cost: cur.dist}, nil
		}

		for _, a := range g.adj[cur.node] {
			if a.level > level || done[a.to] {
				continue
			}
			nd := cur.dist + a.weight
			if old, seen := dist[a.to]; seen && nd >= old {
				continue
			}
			dist[a.to] = nd
			prev[a.to] = cur.node
			seq++
			heap.Push(pq, &item{node: a.to, dist: nd, seq: seq})
		}
	}

	return Route{}, fmt.Errorf("%w: %s -> %s at level %d", ErrUnreachable, source, destination, level)
}

// MinimumLevel reports the lowest level at which destination is reachable from source.
// It is meant for operator diagnostics; it does not alter any routing decision.
func (g *Graph) MinimumLevel(source, destination string) (Level, error) {
	levels := g.Levels()
	if len(levels) == 0 || levels[0] > 0 {
		levels = append([]Level{0}, levels...)
	}
	var lastErr error
	for _, l := range levels {
		_, err := g.ShortestPath(source, destination, l)
		if err == nil {
			return l, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func walkBack(prev map[string]string, source, destination string) []string {
	nodes := []string{destination}
	for n := destination; n != source; {
		n = prev[n]
		nodes = append(nodes, n)
	}
	slices.Reverse(nodes)
	return nodes
}

type item struct {
	node string
	dist float64
	seq  uint64
}

// queue is a min-heap ordered by (dist, seq).
type queue []*item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
