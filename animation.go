package popover

import (
	"fmt"
	"math"
	"time"
)

// AnimationKind selects the content transform played when a popup enters
// and exits. The overlay beneath the content is not affected by the kind:
// it always fades linearly between 0 and 1 over the same duration.
//
// Every kind is defined by a single hidden ("fully dismissed") transform
// plus an easing; the entrance animates hidden -> identity and the exit
// animates the *current* transform -> hidden. Exit is a symmetric
// transition, not a reverse playback of a recorded timeline, so closing a
// popup mid-entrance starts from wherever the content currently is.
type AnimationKind int

const (
	// AnimationDefault defers to the engine's configured default kind.
	// The lifecycle engine resolves it before any driver sees it, so
	// drivers never have to handle this value.
	AnimationDefault AnimationKind = iota

	// AnimationNone shows and hides the popup with no content motion.
	AnimationNone

	// AnimationFade fades content opacity.
	AnimationFade

	// AnimationZoom scales content in from the center.
	AnimationZoom

	// Directional slides from each screen edge.
	AnimationSlideLeft
	AnimationSlideRight
	AnimationSlideTop
	AnimationSlideBottom

	// Spring variants of the slides: same paths with overshoot easing.
	AnimationSpringLeft
	AnimationSpringRight
	AnimationSpringTop
	AnimationSpringBottom

	// Shrink-then-settle bounces: scale overshoots past 1.0 before
	// settling. The axis variants squash only one dimension.
	AnimationBounce
	AnimationBounceHorizontal
	AnimationBounceVertical

	// 3D-style flips about the horizontal or vertical axis.
	AnimationFlipHorizontal
	AnimationFlipVertical

	// AnimationWhirl combines scale with several full rotations. Enforces
	// a minimum duration so the rotations stay legible.
	AnimationWhirl
)

func (k AnimationKind) String() string {
	switch k {
	case AnimationDefault:
		return "default"
	case AnimationNone:
		return "none"
	case AnimationFade:
		return "fade"
	case AnimationZoom:
		return "zoom"
	case AnimationSlideLeft:
		return "slide-left"
	case AnimationSlideRight:
		return "slide-right"
	case AnimationSlideTop:
		return "slide-top"
	case AnimationSlideBottom:
		return "slide-bottom"
	case AnimationSpringLeft:
		return "spring-left"
	case AnimationSpringRight:
		return "spring-right"
	case AnimationSpringTop:
		return "spring-top"
	case AnimationSpringBottom:
		return "spring-bottom"
	case AnimationBounce:
		return "bounce"
	case AnimationBounceHorizontal:
		return "bounce-horizontal"
	case AnimationBounceVertical:
		return "bounce-vertical"
	case AnimationFlipHorizontal:
		return "flip-horizontal"
	case AnimationFlipVertical:
		return "flip-vertical"
	case AnimationWhirl:
		return "whirl"
	default:
		return fmt.Sprintf("animation(%d)", int(k))
	}
}

// AnimationKindByName returns the kind for a config/markup name.
// The second result is false for unknown names. "default" does not
// resolve: the sentinel is for Popup fields, not for naming a concrete
// kind in config.
func AnimationKindByName(name string) (AnimationKind, bool) {
	for k := AnimationNone; k <= AnimationWhirl; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return AnimationNone, false
}

// whirlMinDuration keeps the multi-rotation entrance from degenerating
// into a blur at short configured durations.
const whirlMinDuration = 1000 * time.Millisecond

// whirlRotations is how many full turns the whirl entrance plays.
const whirlRotations = 3

// Transform is the visual state of popup content relative to its laid-out
// position: translation in logical units, per-axis scale, rotation about
// each axis in radians, and opacity.
type Transform struct {
	TranslateX float32
	TranslateY float32
	ScaleX     float32
	ScaleY     float32
	RotateX    float32
	RotateY    float32
	RotateZ    float32
	Opacity    float32
}

// IdentityTransform is the fully-shown state: no offset, unit scale, no
// rotation, full opacity.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// LerpTransform interpolates componentwise between two transforms. t may
// fall outside [0,1] when driven by an overshooting easing.
func LerpTransform(from, to Transform, t float32) Transform {
	return Transform{
		TranslateX: lerp(from.TranslateX, to.TranslateX, t),
		TranslateY: lerp(from.TranslateY, to.TranslateY, t),
		ScaleX:     lerp(from.ScaleX, to.ScaleX, t),
		ScaleY:     lerp(from.ScaleY, to.ScaleY, t),
		RotateX:    lerp(from.RotateX, to.RotateX, t),
		RotateY:    lerp(from.RotateY, to.RotateY, t),
		RotateZ:    lerp(from.RotateZ, to.RotateZ, t),
		Opacity:    lerp(from.Opacity, to.Opacity, t),
	}
}

// lerp linearly interpolates between two float32 values.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// InitialTransform returns the hidden pre-entrance transform for this kind
// given the content size and the hosting surface bounds. Slides translate
// by the full parent extent so the content starts off-canvas regardless of
// where layout placed it.
func (k AnimationKind) InitialTransform(content Size, parent Bounds) Transform {
	t := IdentityTransform()
	switch k {
	case AnimationDefault, AnimationNone:
		// fully shown, no motion
	case AnimationFade:
		t.Opacity = 0
	case AnimationZoom:
		t.ScaleX = 0.3
		t.ScaleY = 0.3
		t.Opacity = 0
	case AnimationSlideLeft, AnimationSpringLeft:
		t.TranslateX = -(parent.Width + content.Width)
	case AnimationSlideRight, AnimationSpringRight:
		t.TranslateX = parent.Width + content.Width
	case AnimationSlideTop, AnimationSpringTop:
		t.TranslateY = -(parent.Height + content.Height)
	case AnimationSlideBottom, AnimationSpringBottom:
		t.TranslateY = parent.Height + content.Height
	case AnimationBounce:
		t.ScaleX = 0
		t.ScaleY = 0
	case AnimationBounceHorizontal:
		t.ScaleX = 0
	case AnimationBounceVertical:
		t.ScaleY = 0
	case AnimationFlipHorizontal:
		t.RotateX = -float32(math.Pi) / 2
	case AnimationFlipVertical:
		t.RotateY = -float32(math.Pi) / 2
	case AnimationWhirl:
		t.ScaleX = 0
		t.ScaleY = 0
		t.RotateZ = -whirlRotations * 2 * float32(math.Pi)
		t.Opacity = 0
	}
	return t
}

// contentEasing resolves the easing applied to the content path. Spring
// and bounce kinds own their overshoot curve; the popup's configured
// easing applies to everything else.
func (k AnimationKind) contentEasing(configured EasingFunc) EasingFunc {
	switch k {
	case AnimationSpringLeft, AnimationSpringRight, AnimationSpringTop, AnimationSpringBottom:
		return EaseOutBack
	case AnimationBounce, AnimationBounceHorizontal, AnimationBounceVertical:
		return EaseOutBack
	default:
		if configured != nil {
			return configured
		}
		return EaseOutCubic
	}
}

// effectiveDuration applies per-kind minimums to a configured duration.
func (k AnimationKind) effectiveDuration(d time.Duration) time.Duration {
	if k == AnimationWhirl && d < whirlMinDuration {
		return whirlMinDuration
	}
	return d
}
