package popover

// Geometry value types shared by the layout solver and the animation
// backends. All values are in logical (device-independent) units; the
// host adapter is responsible for converting to physical pixels.

// Bounds is an axis-aligned rectangle in the shared logical coordinate space.
type Bounds struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Right returns the X coordinate of the right edge.
func (b Bounds) Right() float32 { return b.X + b.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (b Bounds) Bottom() float32 { return b.Y + b.Height }

// Contains reports whether the point (x, y) falls inside the rectangle.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Intersects reports whether two rectangles overlap.
func (b Bounds) Intersects(other Bounds) bool {
	return !(b.X+b.Width < other.X || other.X+other.Width < b.X ||
		b.Y+b.Height < other.Y || other.Y+other.Height < b.Y)
}

// Inset shrinks the rectangle by the given insets. Width and height are
// clamped at zero so degenerate insets never produce a negative rectangle.
func (b Bounds) Inset(in Insets) Bounds {
	return Bounds{
		X:      b.X + in.Left,
		Y:      b.Y + in.Top,
		Width:  maxf(0, b.Width-in.Left-in.Right),
		Height: maxf(0, b.Height-in.Top-in.Bottom),
	}
}

// Size returns the rectangle's dimensions.
func (b Bounds) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Insets is a four-sided thickness, used both for user padding and for
// platform safe-area margins.
type Insets struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// UniformInsets returns insets with the same thickness on all four sides.
func UniformInsets(v float32) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns the combined left and right thickness.
func (in Insets) Horizontal() float32 { return in.Left + in.Right }

// Vertical returns the combined top and bottom thickness.
func (in Insets) Vertical() float32 { return in.Top + in.Bottom }

// IsZero reports whether all four sides are zero.
func (in Insets) IsZero() bool {
	return in.Left == 0 && in.Top == 0 && in.Right == 0 && in.Bottom == 0
}

// Size is a width/height pair.
type Size struct {
	Width  float32
	Height float32
}

// Point is an x/y position.
type Point struct {
	X float32
	Y float32
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// clampf restricts v to the range [lo, hi].
func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
