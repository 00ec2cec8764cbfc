/*
Package routing holds the location graph and the accessibility-constrained router.

The graph is undirected by construction: every Edge record produces two directed
edges that share weight and required level. It is built once with Build and is
read-only afterwards, so a *Graph is safe for concurrent queries.

ShortestPath runs Dijkstra over the subgraph of edges whose required level does
not exceed the caller's level. Ties are broken by discovery order: adjacency is
iterated in insertion order, the queue is ordered by (distance, discovery sequence)
and a node's predecessor only changes on a strictly shorter distance.
*/
package routing
