package domain

import "gonum.org/v1/gonum/spatial/r2"

// NodeID identifies a node; an order-n graph uses 0..n-1.
type NodeID int

// NoNode marks the absence of a node (e.g. nothing is being dragged).
const NoNode NodeID = -1

// Point is a screen coordinate in pixels.
type Point = r2.Vec

// Layout assigns a coordinate to every node.
type Layout map[NodeID]Point

// Rect is an axis-aligned rectangle; X,Y is the top-left corner.
type Rect struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Contains reports whether p lies inside r (edges inclusive on the top-left).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Event is one discrete input event. Pointer events carry X,Y; control
// activations carry Control.
type Event struct {
	Kind    EventKind `json:"kind" msgpack:"kind"`
	X       float64   `json:"x,omitempty" msgpack:"x,omitempty"`
	Y       float64   `json:"y,omitempty" msgpack:"y,omitempty"`
	Control Control   `json:"control,omitempty" msgpack:"control,omitempty"`
}

func (e Event) Point() Point { return Point{X: e.X, Y: e.Y} }

// NodePoint is a node coordinate as it appears in a snapshot.
type NodePoint struct {
	ID NodeID  `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
}

// NodeView is a draggable node with its current state.
type NodeView struct {
	ID    NodeID    `json:"id" msgpack:"id"`
	X     float64   `json:"x" msgpack:"x"`
	Y     float64   `json:"y" msgpack:"y"`
	State NodeState `json:"state" msgpack:"state"`
}

// ControlView describes a button for the renderer.
type ControlView struct {
	Control Control `json:"control" msgpack:"control"`
	Rect    Rect    `json:"rect" msgpack:"rect"`
	Enabled bool    `json:"enabled" msgpack:"enabled"`
}

// Snapshot is the read-only state published after every tick. Slices are
// ordered by node id.
type Snapshot struct {
	SessionID        string        `json:"sessionId" msgpack:"sessionId"`
	Level            int           `json:"level" msgpack:"level"`
	NodeCount        int           `json:"nodeCount" msgpack:"nodeCount"`
	Edges            []Edge        `json:"edges" msgpack:"edges"`
	ReferencePos     []NodePoint   `json:"referencePos" msgpack:"referencePos"`
	DropPos          []NodePoint   `json:"dropPos" msgpack:"dropPos"`
	Nodes            []NodeView    `json:"nodes" msgpack:"nodes"`
	Dragging         NodeID        `json:"dragging" msgpack:"dragging"`
	Phase            Phase         `json:"phase" msgpack:"phase"`
	Answered         bool          `json:"answered" msgpack:"answered"`
	Revealed         bool          `json:"revealed,omitempty" msgpack:"revealed,omitempty"`
	Score            int           `json:"score" msgpack:"score"`
	ElapsedSeconds   int           `json:"elapsedSeconds" msgpack:"elapsedSeconds"`
	NextLevelEnabled bool          `json:"nextLevelEnabled" msgpack:"nextLevelEnabled"`
	Controls         []ControlView `json:"controls" msgpack:"controls"`
	NodeRadius       float64       `json:"nodeRadius" msgpack:"nodeRadius"`
	Done             bool          `json:"done,omitempty" msgpack:"done,omitempty"`
}

// Hint points at a node that still needs placing.
type Hint struct {
	Message string    `json:"message,omitempty"`
	Node    NodeID    `json:"node"`
	Degree  int       `json:"degree"`
	From    NodePoint `json:"from"`
	To      NodePoint `json:"to"`
}

// Result records one completed level.
type Result struct {
	SessionID      string `json:"sessionId"`
	Level          int    `json:"level"`
	NodeCount      int    `json:"nodeCount"`
	Score          int    `json:"score"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Revealed       bool   `json:"revealed"` // completed through show-answer
	CompletedAt    int64  `json:"completedAt"`
}
