// Package geom holds the small integer 2D geometry types shared by
// the atlas, ingest, manifest and player packages.
package geom

// Point is a signed 2D integer coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a non-negative 2D integer extent.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned integer rectangle with non-negative width
// and height; its origin may be negative.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Max returns the exclusive bottom-right corner of r.
func (r Rect) Max() Point { return Point{r.X + r.Width, r.Y + r.Height} }

// Within reports whether r lies entirely inside bounds.
func (r Rect) Within(bounds Rect) bool {
	m, bm := r.Max(), bounds.Max()
	return r.X >= bounds.X && r.Y >= bounds.Y && m.X <= bm.X && m.Y <= bm.Y
}
