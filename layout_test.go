package popover

import "testing"

func fptr(v float32) *float32 { return &v }

func TestComputePositionAlignments(t *testing.T) {
	parent := Bounds{X: 0, Y: 0, Width: 400, Height: 800}
	size := Size{Width: 100, Height: 50}

	tests := []struct {
		name  string
		h, v  Alignment
		wantX float32
		wantY float32
	}{
		{"start/start", AlignStart, AlignStart, 0, 0},
		{"center/center", AlignCenter, AlignCenter, 150, 375},
		{"end/end", AlignEnd, AlignEnd, 300, 750},
		{"fill/fill centers", AlignFill, AlignFill, 150, 375},
		{"start/end", AlignStart, AlignEnd, 0, 750},
		{"end/start", AlignEnd, AlignStart, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPopup(nil)
			p.HorizontalAlignment = tt.h
			p.VerticalAlignment = tt.v

			got := ComputePosition(p, size, parent, Insets{})
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("got (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}

			// The placed rectangle must stay inside the parent.
			if got.X < parent.X || got.Y < parent.Y ||
				got.X+size.Width > parent.Right() || got.Y+size.Height > parent.Bottom() {
				t.Errorf("rectangle at (%v, %v) escapes parent bounds", got.X, got.Y)
			}
		})
	}
}

func TestComputePositionSafeArea(t *testing.T) {
	// Centered within the inset-reduced 400x740 area starting at (0, 40):
	// y = 40 + (740-100)/2 = 360, leaving equal margins inside the safe
	// area. Centering is relative to the safe area itself, never the full
	// bounds shifted by the insets.
	parent := Bounds{X: 0, Y: 0, Width: 400, Height: 800}
	safeArea := Insets{Top: 40, Bottom: 20}

	p := NewPopup(nil)
	got := ComputePosition(p, Size{Width: 200, Height: 100}, parent, safeArea)
	if got.X != 100 || got.Y != 360 {
		t.Errorf("got (%v, %v), want (100, 360)", got.X, got.Y)
	}
}

func TestComputePositionIgnoresSafeAreaOutsideDefaultMode(t *testing.T) {
	parent := Bounds{X: 0, Y: 0, Width: 400, Height: 800}
	safeArea := Insets{Top: 40, Bottom: 20}

	for _, mode := range []DisplayMode{DisplayCover, DisplayFullScreen} {
		p := NewPopup(nil)
		p.Mode = mode
		p.VerticalAlignment = AlignStart

		got := ComputePosition(p, Size{Width: 200, Height: 100}, parent, safeArea)
		if got.Y != 0 {
			t.Errorf("%s: start alignment got y=%v, want true screen edge 0", mode, got.Y)
		}
	}
}

func TestComputeContentSizeExplicit(t *testing.T) {
	parent := Bounds{Width: 400, Height: 800}

	tests := []struct {
		name    string
		w, h    float32
		padding Insets
		want    Size
	}{
		{"fits", 200, 100, Insets{}, Size{200, 100}},
		{"clamped to bounds", 600, 900, Insets{}, Size{400, 800}},
		{"clamped to padded bounds", 600, 900, UniformInsets(10), Size{400, 800}},
		{"padding added", 100, 50, UniformInsets(10), Size{120, 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPopup(nil)
			p.Width = fptr(tt.w)
			p.Height = fptr(tt.h)
			p.Padding = tt.padding

			got := ComputeContentSize(p, parent, Insets{})
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.Width > parent.Width || got.Height > parent.Height {
				t.Errorf("size %+v exceeds bounds", got)
			}
		})
	}
}

func TestComputeContentSizeMeasured(t *testing.T) {
	parent := Bounds{Width: 400, Height: 800}

	p := NewPopup(nil)
	p.Measure = func(maxW, maxH float32) Size {
		if maxW != Inf || maxH != Inf {
			t.Errorf("free axes should measure unconstrained, got (%v, %v)", maxW, maxH)
		}
		return Size{Width: 200, Height: 100}
	}

	got := ComputeContentSize(p, parent, Insets{})
	if (got != Size{Width: 200, Height: 100}) {
		t.Errorf("got %+v, want natural 200x100", got)
	}
}

func TestComputeContentSizeFillAxis(t *testing.T) {
	parent := Bounds{Width: 400, Height: 800}

	p := NewPopup(nil)
	p.HorizontalAlignment = AlignFill
	p.Padding = UniformInsets(10)
	p.Measure = func(maxW, maxH float32) Size {
		if maxW != 380 {
			t.Errorf("fill axis should measure at the padded bound, got %v", maxW)
		}
		return Size{Width: 300, Height: 100}
	}

	got := ComputeContentSize(p, parent, Insets{})
	if got.Width != 400 {
		t.Errorf("fill width = %v, want full bound 400", got.Width)
	}
	if got.Height != 120 {
		t.Errorf("height = %v, want measured 100 + padding 20", got.Height)
	}
}

func TestComputeContentSizeRemeasuresAtClampedWidth(t *testing.T) {
	// Wrapping content: wider than the bounds on the first pass, taller on
	// the second once constrained. The second measurement must happen.
	parent := Bounds{Width: 400, Height: 800}

	var calls int
	p := NewPopup(nil)
	p.Measure = func(maxW, maxH float32) Size {
		calls++
		if maxW >= 600 {
			return Size{Width: 600, Height: 50}
		}
		return Size{Width: maxW, Height: 80}
	}

	got := ComputeContentSize(p, parent, Insets{})
	if calls != 2 {
		t.Fatalf("expected a re-measure at the clamped width, got %d call(s)", calls)
	}
	if (got != Size{Width: 400, Height: 80}) {
		t.Errorf("got %+v, want 400x80 (height from second pass)", got)
	}
}

func TestComputeContentSizeSafeArea(t *testing.T) {
	parent := Bounds{Width: 400, Height: 800}
	safeArea := Insets{Top: 40, Bottom: 20}

	p := NewPopup(nil)
	p.Width = fptr(600)
	p.Height = fptr(900)

	got := ComputeContentSize(p, parent, safeArea)
	if (got != Size{Width: 400, Height: 740}) {
		t.Errorf("got %+v, want clamp to safe area 400x740", got)
	}
}

func TestComputeAnchoredPosition(t *testing.T) {
	parent := Bounds{X: 0, Y: 0, Width: 400, Height: 800}

	tests := []struct {
		name    string
		anchor  Bounds
		content Size
		want    Point
	}{
		{
			name:    "below anchor, centered",
			anchor:  Bounds{X: 100, Y: 100, Width: 100, Height: 40},
			content: Size{Width: 150, Height: 200},
			want:    Point{X: 75, Y: 140},
		},
		{
			name:    "flips above when below overflows",
			anchor:  Bounds{X: 50, Y: 700, Width: 100, Height: 40},
			content: Size{Width: 150, Height: 200},
			want:    Point{X: 25, Y: 500},
		},
		{
			name:    "clamps x to left bound",
			anchor:  Bounds{X: 0, Y: 100, Width: 40, Height: 40},
			content: Size{Width: 150, Height: 100},
			want:    Point{X: 0, Y: 140},
		},
		{
			name:    "clamps x to right bound",
			anchor:  Bounds{X: 360, Y: 100, Width: 40, Height: 40},
			content: Size{Width: 150, Height: 100},
			want:    Point{X: 250, Y: 140},
		},
		{
			name:    "centers vertically when neither side fits",
			anchor:  Bounds{X: 100, Y: 300, Width: 100, Height: 40},
			content: Size{Width: 150, Height: 700},
			want:    Point{X: 75, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPopup(nil)
			got := ComputeAnchoredPosition(p, tt.content, tt.anchor, parent)
			if got != tt.want {
				t.Errorf("got (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
			if got.X < parent.X || got.X > parent.Right()-tt.content.Width {
				t.Errorf("x=%v outside [%v, %v]", got.X, parent.X, parent.Right()-tt.content.Width)
			}
		})
	}
}

func TestFillWithOversizedExplicitSize(t *testing.T) {
	// Known boundary case: a host may pass a size that never went through
	// ComputeContentSize (explicit override larger than the bounds).
	// Positioning accepts it rather than correcting it - the override is
	// the host's unchecked escape hatch - so the rectangle may escape the
	// parent. This pins that behavior down so nobody "fixes" it silently.
	parent := Bounds{Width: 400, Height: 800}

	p := NewPopup(nil)
	p.HorizontalAlignment = AlignFill
	p.VerticalAlignment = AlignFill

	got := ComputePosition(p, Size{Width: 600, Height: 900}, parent, Insets{})
	if got.X != -100 || got.Y != -50 {
		t.Errorf("got (%v, %v), want centered overflow (-100, -50)", got.X, got.Y)
	}
}

func TestPaddingRoundTrip(t *testing.T) {
	sizes := []Size{{0, 0}, {100, 50}, {333, 1}, {1024, 768}}
	paddings := []Insets{{}, UniformInsets(8), {Left: 1, Top: 2, Right: 3, Bottom: 4}}

	for _, s := range sizes {
		for _, in := range paddings {
			if got := ApplyPadding(AddPadding(s, in), in); got != s {
				t.Errorf("ApplyPadding(AddPadding(%+v, %+v)) = %+v", s, in, got)
			}
		}
	}
}

func TestApplyPaddingClampsAtZero(t *testing.T) {
	got := ApplyPadding(Size{Width: 10, Height: 10}, UniformInsets(20))
	if (got != Size{}) {
		t.Errorf("got %+v, want zero size", got)
	}
}

func TestLayoutIsPure(t *testing.T) {
	parent := Bounds{Width: 400, Height: 800}
	safeArea := Insets{Top: 40, Bottom: 20}

	p := NewPopup(nil)
	p.Padding = UniformInsets(12)
	p.Measure = func(maxW, maxH float32) Size { return Size{Width: 180, Height: 90} }

	s1 := ComputeContentSize(p, parent, safeArea)
	s2 := ComputeContentSize(p, parent, safeArea)
	if s1 != s2 {
		t.Errorf("ComputeContentSize not idempotent: %+v vs %+v", s1, s2)
	}

	p1 := ComputePosition(p, s1, parent, safeArea)
	p2 := ComputePosition(p, s1, parent, safeArea)
	if p1 != p2 {
		t.Errorf("ComputePosition not idempotent: %+v vs %+v", p1, p2)
	}
}

func TestLayoutDegenerateInputs(t *testing.T) {
	p := NewPopup(nil)
	p.Padding = UniformInsets(10)

	size := ComputeContentSize(p, Bounds{}, Insets{})
	if size.Width != 0 || size.Height != 0 {
		t.Errorf("zero bounds should yield zero size, got %+v", size)
	}

	// No measurer at all: still a valid (zero) size, no panic.
	pos := ComputePosition(p, size, Bounds{}, Insets{})
	if pos.X != 0 || pos.Y != 0 {
		t.Errorf("degenerate position = %+v, want origin", pos)
	}
}
