// Package search implements the mutable route representation and local
// search operators that the driver iterates until convergence (spec.md
// §4.3-§4.5). Routes own their nodes; nodes reference their owning route
// but never hold a pointer back through a second allocation, so there is
// no cyclic ownership graph to garbage-collect around (spec.md §9).
package search

// Node is a handle to one visit (depot or client) inside a Route's
// sequence. It is valid only while its owning Route is not mutated; after
// Insert/Remove/Swap, node handles obtained before the mutation must be
// re-fetched via Route.At.
type Node struct {
	route *Route
	idx   int
	loc   int
}

// Route returns the route that owns this node.
func (n *Node) Route() *Route { return n.route }

// Idx returns the node's current position within its route, in [0, size+1].
func (n *Node) Idx() int { return n.idx }

// Location returns the problem-data location index this node visits.
func (n *Node) Location() int { return n.loc }

// IsDepot reports whether this node is the route's start or end depot.
func (n *Node) IsDepot() bool { return n.idx == 0 || n.idx == len(n.route.nodes)-1 }

// Pred returns the preceding node. Panics if n is the start depot.
func (n *Node) Pred() *Node {
	if n.idx == 0 {
		panic("search: node has no predecessor (it is the start depot)")
	}
	return n.route.nodes[n.idx-1]
}

// Succ returns the following node. Panics if n is the end depot.
func (n *Node) Succ() *Node {
	if n.idx == len(n.route.nodes)-1 {
		panic("search: node has no successor (it is the end depot)")
	}
	return n.route.nodes[n.idx+1]
}
