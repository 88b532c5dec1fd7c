package popover

import (
	"context"
	"sync"
	"time"
)

// AnimationDriver is the narrow contract between the lifecycle engine and
// a rendering backend's animation machinery. One implementation exists per
// backend; the engine depends only on this interface.
//
// Contract notes:
//   - SetInitialState must run before the surface is visible to the user,
//     leaving the content in the kind's hidden transform and the overlay
//     fully transparent.
//   - PlayEnter and PlayExit block until the transition completes or is
//     interrupted, and must leave a valid terminal visual state (fully
//     shown or fully hidden) when cancelled - never a mid-transform limbo.
//     The engine runs no corrective animation after a cancellation.
//   - Cancel interrupts an in-flight transition and is safe to call with
//     none in flight.
type AnimationDriver interface {
	SetInitialState(kind AnimationKind)
	PlayEnter(ctx context.Context, kind AnimationKind, d time.Duration, easing EasingFunc) error
	PlayExit(ctx context.Context, kind AnimationKind, d time.Duration, easing EasingFunc) error
	Cancel()
	Cleanup()
}

// SurfaceBackend is the primitive surface a SequenceDriver animates. A
// rendering backend implements only these operations; the keyframe
// sequencing for every animation kind lives once in SequenceDriver rather
// than being reimplemented per platform.
type SurfaceBackend interface {
	// ContentSize returns the measured size of the popup content.
	ContentSize() Size

	// ParentBounds returns the bounds of the hosting surface.
	ParentBounds() Bounds

	// SetContentTransform applies a transform (including opacity) to the
	// popup content.
	SetContentTransform(Transform)

	// SetOverlayOpacity sets the dimming overlay's opacity, 0-1.
	SetOverlayOpacity(float32)
}

// defaultFrameInterval approximates 60 FPS.
const defaultFrameInterval = 16 * time.Millisecond

// SequenceDriver implements AnimationDriver on top of a SurfaceBackend by
// ticking interpolated keyframes on a frame clock. The content follows the
// kind's easing; the overlay always fades on a linear curve synchronized
// to the same duration.
type SequenceDriver struct {
	backend  SurfaceBackend
	interval time.Duration

	playMu sync.Mutex // serializes transitions; exit waits out a cancelled enter

	mu      sync.Mutex // guards current, overlay, cancel
	current Transform
	overlay float32
	cancel  context.CancelFunc
}

// NewSequenceDriver creates a driver animating the given backend at the
// default frame rate.
func NewSequenceDriver(backend SurfaceBackend) *SequenceDriver {
	return &SequenceDriver{
		backend:  backend,
		interval: defaultFrameInterval,
		current:  IdentityTransform(),
	}
}

// SetFrameInterval overrides the frame clock interval. Must be called
// before any transition plays.
func (d *SequenceDriver) SetFrameInterval(interval time.Duration) {
	if interval > 0 {
		d.interval = interval
	}
}

// Current returns the transform most recently applied to the content.
func (d *SequenceDriver) Current() Transform {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// SetInitialState puts the content in the kind's hidden transform and
// forces the overlay fully transparent.
func (d *SequenceDriver) SetInitialState(kind AnimationKind) {
	hidden := kind.InitialTransform(d.backend.ContentSize(), d.backend.ParentBounds())

	d.mu.Lock()
	d.current = hidden
	d.overlay = 0
	d.mu.Unlock()

	d.backend.SetContentTransform(hidden)
	d.backend.SetOverlayOpacity(0)
}

// PlayEnter animates the content from its current transform to identity
// and the overlay linearly to 1.
func (d *SequenceDriver) PlayEnter(ctx context.Context, kind AnimationKind, dur time.Duration, easing EasingFunc) error {
	return d.play(ctx, IdentityTransform(), 1, kind.effectiveDuration(dur), kind.contentEasing(easing))
}

// PlayExit animates the content from its current transform to the kind's
// hidden transform and the overlay linearly to 0. Starting from the
// current transform is what makes closing mid-entrance seamless.
func (d *SequenceDriver) PlayExit(ctx context.Context, kind AnimationKind, dur time.Duration, easing EasingFunc) error {
	hidden := kind.InitialTransform(d.backend.ContentSize(), d.backend.ParentBounds())
	return d.play(ctx, hidden, 0, kind.effectiveDuration(dur), kind.contentEasing(easing))
}

// Cancel interrupts the in-flight transition, if any. The transition snaps
// to its destination state before its Play call returns.
func (d *SequenceDriver) Cancel() {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Cleanup releases the driver after teardown.
func (d *SequenceDriver) Cleanup() {
	d.Cancel()
}

func (d *SequenceDriver) play(ctx context.Context, target Transform, overlayTo float32, dur time.Duration, easing EasingFunc) error {
	d.playMu.Lock()
	defer d.playMu.Unlock()

	// A transition cancelled before it starts must not touch the surface:
	// whatever terminal state the previous transition settled stays.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	from := d.current
	overlayFrom := d.overlay
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
	}()

	apply := func(t Transform, overlay float32) {
		d.mu.Lock()
		d.current = t
		d.overlay = overlay
		d.mu.Unlock()
		d.backend.SetContentTransform(t)
		d.backend.SetOverlayOpacity(overlay)
	}

	interrupted := false
	if dur > 0 {
		start := time.Now()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

	frames:
		for {
			select {
			case <-playCtx.Done():
				interrupted = true
				break frames
			case now := <-ticker.C:
				elapsed := now.Sub(start)
				if elapsed >= dur {
					break frames
				}
				progress := float64(elapsed) / float64(dur)
				apply(
					LerpTransform(from, target, float32(easing(progress))),
					lerp(overlayFrom, overlayTo, float32(progress)),
				)
			}
		}
	}

	// Terminal frame is exact, including after an interruption: the backend
	// is guaranteed a clean fully-shown or fully-hidden end state.
	apply(target, overlayTo)

	if interrupted {
		return playCtx.Err()
	}
	return nil
}
