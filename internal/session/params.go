package session

import "svw.info/isopuzzle/internal/domain"

// Params holds the board geometry shared by the engine and its hit tests.
type Params struct {
	Width        float64
	Height       float64
	NodeRadius   float64 // pick radius of a draggable node
	Tolerance    float64 // snap distance to the drop target
	LayoutRadius float64
}

// DefaultParams is a 900x600 board with 15px nodes and a 30px snap.
func DefaultParams() Params {
	return Params{
		Width:        900,
		Height:       600,
		NodeRadius:   15,
		Tolerance:    30,
		LayoutRadius: 120,
	}
}

func (p Params) ReferenceCenter() domain.Point {
	return domain.Point{X: p.Width / 4, Y: p.Height / 2}
}

func (p Params) DropCenter() domain.Point {
	return domain.Point{X: 3 * p.Width / 4, Y: p.Height / 2}
}

// ControlRect returns the button rectangle for c. Reset has no on-screen
// button; it is bound to a key by the input collaborator.
func (p Params) ControlRect(c domain.Control) (domain.Rect, bool) {
	switch c {
	case domain.ShowAnswer:
		return domain.Rect{X: p.Width/2 - 60, Y: p.Height - 50, W: 120, H: 40}, true
	case domain.NextLevel:
		return domain.Rect{X: p.Width/2 + 100, Y: p.Height - 50, W: 160, H: 40}, true
	default:
		return domain.Rect{}, false
	}
}

// startRegion is the integer box, inclusive, that initial draggable
// positions are drawn from: the half of the board holding the drop circle.
func (p Params) startRegion() (minX, maxX, minY, maxY int) {
	minX, maxX = int(p.Width/2)+20, int(p.Width)-40
	minY, maxY = 20, int(p.Height)-60
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return minX, maxX, minY, maxY
}
