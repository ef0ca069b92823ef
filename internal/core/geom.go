// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a center-anchored axis-aligned box in world units.
// Unlike Rect, its edges are inclusive: a point lying exactly on an edge
// is inside, and two boxes sharing an edge overlap.
type Box struct {
	CX, CY       float64 // Center
	HalfW, HalfH float64 // Half extents
}

// NewBox creates a box centered at (cx, cy) with the given full width and height.
func NewBox(cx, cy, w, h float64) Box {
	return Box{CX: cx, CY: cy, HalfW: w / 2, HalfH: h / 2}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.CX - b.HalfW }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.CX + b.HalfW }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.CY - b.HalfH }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.CY + b.HalfH }

// Contains reports whether (x, y) lies inside the box or on its edge.
func (b Box) Contains(x, y float64) bool {
	return Within(x, b.CX, b.HalfW) && Within(y, b.CY, b.HalfH)
}

// Overlaps reports whether two boxes overlap or touch.
func (b Box) Overlaps(other Box) bool {
	if b.Right() < other.Left() || other.Right() < b.Left() {
		return false
	}
	if b.Bottom() < other.Top() || other.Bottom() < b.Top() {
		return false
	}
	return true
}

// Within reports whether v lies in [center-half, center+half].
func Within(v, center, half float64) bool {
	return v >= center-half && v <= center+half
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
