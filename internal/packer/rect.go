package packer

// Rect is an axis-aligned rectangle occupying the half-open region
// [X, X+W) x [Y, Y+H) over non-negative integer pixel coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Area returns W*H.
func (r Rect) Area() int {
	return r.W * r.H
}

// Intersects reports whether the open interiors of r and other overlap.
// Edge-touching rectangles do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X+r.W > other.X && other.X+other.W > r.X &&
		r.Y+r.H > other.Y && other.Y+other.H > r.Y
}

// Contains reports whether every point of other lies within r.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && other.X+other.W <= r.X+r.W &&
		r.Y <= other.Y && other.Y+other.H <= r.Y+r.H
}

// Subtract returns the axis-aligned strips covering r once cut is removed from it.
//
// Up to four strips (left, right, top, bottom) are produced independently of one
// another, so adjacent strips may overlap -- that's intentional, the caller's index
// is responsible for pruning redundant rects on insert. When none of the four strips
// apply and r does not intersect cut, r is returned unchanged. When none apply and r
// is fully contained in cut, no strips are returned.
func (r Rect) Subtract(cut Rect) []Rect {
	var strips []Rect

	if r.X < cut.X && cut.X < r.X+r.W {
		strips = append(strips, Rect{X: r.X, Y: r.Y, W: cut.X - r.X, H: r.H})
	}
	if r.X < cut.X+cut.W && cut.X+cut.W < r.X+r.W {
		strips = append(strips, Rect{X: cut.X + cut.W, Y: r.Y, W: r.X + r.W - (cut.X + cut.W), H: r.H})
	}
	if r.Y < cut.Y && cut.Y < r.Y+r.H {
		strips = append(strips, Rect{X: r.X, Y: r.Y, W: r.W, H: cut.Y - r.Y})
	}
	if r.Y < cut.Y+cut.H && cut.Y+cut.H < r.Y+r.H {
		strips = append(strips, Rect{X: r.X, Y: cut.Y + cut.H, W: r.W, H: r.Y + r.H - (cut.Y + cut.H)})
	}

	if len(strips) == 0 && !r.Intersects(cut) {
		return []Rect{r}
	}

	return strips
}
