package kdtile

// Filter decides, per child, whether subdivision continues into it. Apply
// returns the triangle to keep (normally the argument itself) and true, or
// false to prune the child and its whole subtree.
type Filter interface {
	Apply(t Triangle) (Triangle, bool)
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(Triangle) (Triangle, bool)

func (f FilterFunc) Apply(t Triangle) (Triangle, bool) { return f(t) }

// AcceptAll keeps every triangle.
type AcceptAll struct{}

func (AcceptAll) Apply(t Triangle) (Triangle, bool) { return t, true }

// RegionBounded keeps triangles that overlap Rect within Tolerance.
type RegionBounded struct {
	Rect      Rect
	Tolerance float64
}

// NewRegionBounded returns a RegionBounded filter using the default
// Tolerance.
func NewRegionBounded(r Rect) RegionBounded {
	return RegionBounded{Rect: r, Tolerance: Tolerance}
}

func (f RegionBounded) Apply(t Triangle) (Triangle, bool) {
	return t, OverlapsWithin(t, f.Rect, f.Tolerance)
}
