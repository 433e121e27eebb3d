// Package layout places nodes on circles.
package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"svw.info/isopuzzle/internal/domain"
)

// Circle places nodes[i] at angle 2πi/len(nodes) around center. The angle
// depends on the position in the sequence, not on the id value.
func Circle(nodes []domain.NodeID, center domain.Point, radius float64) domain.Layout {
	out := make(domain.Layout, len(nodes))
	for i, id := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		out[id] = r2.Add(center, r2.Scale(radius, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
	}
	return out
}

// Identity returns the ordering 0..n-1 shared by the reference and drop circles.
func Identity(n int) []domain.NodeID {
	out := make([]domain.NodeID, n)
	for i := range out {
		out[i] = domain.NodeID(i)
	}
	return out
}
