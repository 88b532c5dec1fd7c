package popover

import "math"

// Layout solver. All functions here are pure: no side effects, no I/O,
// and no failure paths. Degenerate inputs (zero bounds, missing measurer)
// produce degenerate-but-valid output; layout recovers on the next pass
// once real measurements arrive. These run on every layout pass on every
// platform, so exception-driven control flow is off the table.

// Inf is the unconstrained measurement bound passed to a Measurer on axes
// the layout does not restrict.
var Inf = float32(math.Inf(1))

// effectiveBounds returns the region a popup may occupy: the parent bounds
// shrunk by the safe-area insets when the display mode honors them, the raw
// parent bounds otherwise.
func effectiveBounds(mode DisplayMode, parent Bounds, safeArea Insets) Bounds {
	if mode.honorsSafeArea() {
		return parent.Inset(safeArea)
	}
	return parent
}

// ComputeContentSize computes the popup's total size (content plus padding)
// within the hosting surface. Each returned dimension is at most the
// corresponding effective-bounds dimension.
//
// Explicit Width/Height overrides win over measurement, clamped to the
// available space. Otherwise the content is measured with the padded bound
// on Fill axes and an unconstrained bound elsewhere; when the measured
// width has to be clamped down, the content is re-measured at the clamped
// width so variable-height content (wrapping text) reports the height it
// will actually have. Skipping that second pass is a visible layout bug.
func ComputeContentSize(p *Popup, parent Bounds, safeArea Insets) Size {
	eff := effectiveBounds(p.Mode, parent, safeArea)

	availW := maxf(0, eff.Width-p.Padding.Horizontal())
	availH := maxf(0, eff.Height-p.Padding.Vertical())

	explicitW := p.Width != nil
	explicitH := p.Height != nil

	var contentW, contentH float32

	if explicitW {
		contentW = clampf(*p.Width, 0, availW)
	}
	if explicitH {
		contentH = clampf(*p.Height, 0, availH)
	}

	if !explicitW || !explicitH {
		// Measurement constraints: Fill axes get the padded bound, free
		// axes are unconstrained, explicit axes constrain the other axis's
		// measurement at their clamped value.
		constraintW := Inf
		constraintH := Inf
		if p.HorizontalAlignment == AlignFill {
			constraintW = availW
		}
		if p.VerticalAlignment == AlignFill {
			constraintH = availH
		}
		if explicitW {
			constraintW = contentW
		}
		if explicitH {
			constraintH = contentH
		}

		natural := measure(p, constraintW, constraintH)

		if !explicitW {
			if p.HorizontalAlignment == AlignFill {
				contentW = availW
			} else {
				contentW = minf(natural.Width, availW)
				if natural.Width > availW {
					// Width was clamped: re-measure at the final width to
					// pick up the dependent height.
					natural = measure(p, contentW, constraintH)
				}
			}
		}
		if !explicitH {
			if p.VerticalAlignment == AlignFill {
				contentH = availH
			} else {
				contentH = minf(natural.Height, availH)
			}
		}
	}

	return Size{
		Width:  minf(contentW+p.Padding.Horizontal(), eff.Width),
		Height: minf(contentH+p.Padding.Vertical(), eff.Height),
	}
}

func measure(p *Popup, maxW, maxH float32) Size {
	if p.Measure == nil {
		return Size{}
	}
	return p.Measure(maxW, maxH)
}

// ComputePosition places a popup of the given size within the hosting
// surface per its per-axis alignment. Start pins to the left/top of the
// effective bounds (the true screen edge when the display mode ignores the
// safe area), End to the right/bottom, Center and Fill center the popup.
//
// Whenever size came from ComputeContentSize on the same inputs, the
// resulting rectangle is fully contained in the parent bounds for Start,
// Center, and End. Fill with an oversized explicit override may exceed the
// bounds; that is accepted, not corrected.
func ComputePosition(p *Popup, size Size, parent Bounds, safeArea Insets) Point {
	eff := effectiveBounds(p.Mode, parent, safeArea)
	return Point{
		X: alignAxis(p.HorizontalAlignment, eff.X, eff.Width, size.Width),
		Y: alignAxis(p.VerticalAlignment, eff.Y, eff.Height, size.Height),
	}
}

func alignAxis(a Alignment, origin, extent, length float32) float32 {
	switch a {
	case AlignStart:
		return origin
	case AlignEnd:
		return origin + extent - length
	default: // Center and Fill
		return origin + (extent-length)/2
	}
}

// ComputeAnchoredPosition places a popup relative to an anchor element.
// Default placement is horizontally centered under the anchor, flush with
// its bottom edge. Overflow handling is a fixed three-tier fallback, not a
// constraint solver: clamp X into the parent, flip above the anchor when
// the popup would run past the bottom, and center vertically when the
// flipped placement would run past the top. It deliberately does not pick
// whichever side has more room.
func ComputeAnchoredPosition(p *Popup, size Size, anchor Bounds, parent Bounds) Point {
	x := anchor.X + (anchor.Width-size.Width)/2
	x = clampf(x, parent.X, maxf(parent.X, parent.Right()-size.Width))

	y := anchor.Bottom()
	if y+size.Height > parent.Bottom() {
		y = anchor.Y - size.Height
		if y < parent.Y {
			y = parent.Y + (parent.Height-size.Height)/2
		}
	}
	return Point{X: x, Y: y}
}

// AddPadding grows a content size to a total popup size by adding the
// four-sided padding.
func AddPadding(s Size, in Insets) Size {
	return Size{
		Width:  maxf(0, s.Width+in.Horizontal()),
		Height: maxf(0, s.Height+in.Vertical()),
	}
}

// ApplyPadding shrinks a total popup size to the space available to
// content by removing the four-sided padding, clamped at zero.
func ApplyPadding(s Size, in Insets) Size {
	return Size{
		Width:  maxf(0, s.Width-in.Horizontal()),
		Height: maxf(0, s.Height-in.Vertical()),
	}
}
