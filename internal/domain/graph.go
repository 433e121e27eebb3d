package domain

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Edge is an undirected edge stored with U <= V.
type Edge struct {
	U NodeID `json:"u" msgpack:"u"`
	V NodeID `json:"v" msgpack:"v"`
}

func normalize(e Edge) Edge {
	if e.V < e.U {
		e.U, e.V = e.V, e.U
	}
	return e
}

// Graph is an immutable undirected graph over nodes 0..Order-1.
type Graph struct {
	order int
	edges []Edge
	adj   *simple.UndirectedGraph
}

// NewGraph copies edges, normalizes and sorts them. It does not enforce the
// puzzle invariants; see the validator package for that.
func NewGraph(order int, edges []Edge) *Graph {
	es := make([]Edge, len(edges))
	for i, e := range edges {
		es[i] = normalize(e)
	}
	sort.Slice(es, func(i, j int) bool {
		if es[i].U != es[j].U {
			return es[i].U < es[j].U
		}
		return es[i].V < es[j].V
	})

	adj := simple.NewUndirectedGraph()
	for i := 0; i < order; i++ {
		adj.AddNode(simple.Node(i))
	}
	for _, e := range es {
		// simple graphs reject loops and out-of-range ends; the validator reports them
		if e.U == e.V || e.U < 0 || int(e.V) >= order {
			continue
		}
		adj.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return &Graph{order: order, edges: es, adj: adj}
}

// FromUndirected converts a gonum graph, renumbering nodes to 0..n-1 in
// ascending id order.
func FromUndirected(u graph.Undirected) *Graph {
	nodes := graph.NodesOf(u.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	index := make(map[int64]NodeID, len(ids))
	for i, id := range ids {
		index[id] = NodeID(i)
	}

	var edges []Edge
	for _, id := range ids {
		to := u.From(id)
		for to.Next() {
			other := to.Node().ID()
			if other < id {
				continue
			}
			edges = append(edges, Edge{U: index[id], V: index[other]})
		}
	}
	return NewGraph(len(ids), edges)
}

func (g *Graph) Order() int { return g.order }

// Edges returns a copy of the sorted edge list.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns 0..Order-1.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, g.order)
	for i := range out {
		out[i] = NodeID(i)
	}
	return out
}

func (g *Graph) HasEdge(u, v NodeID) bool {
	return g.adj.HasEdgeBetween(int64(u), int64(v))
}

func (g *Graph) Degree(id NodeID) int {
	if id < 0 || int(id) >= g.order {
		return 0
	}
	return g.adj.From(int64(id)).Len()
}

// Connected reports whether the graph has exactly one component.
func (g *Graph) Connected() bool {
	if g.order == 0 {
		return false
	}
	return len(topo.ConnectedComponents(g.adj)) == 1
}
