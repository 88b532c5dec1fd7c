package popover

import (
	"context"
	"time"

	"github.com/agiangrant/popover/internal/ffi"
)

// LoadNativeEngine opens the native overlay engine library. Hosts that
// render popups through the shared native engine call this once at
// startup; hosts with their own SurfaceBackend never need it.
func LoadNativeEngine(path string) error {
	return ffi.Load(path)
}

// NativeSurface is a SurfaceBackend over a surface owned by the native
// overlay engine. The native side renders content and overlay; this side
// only drives the primitive transform/opacity operations, so all keyframe
// sequencing stays in SequenceDriver.
type NativeSurface struct {
	id     ffi.SurfaceID
	parent Bounds
}

// NewNativeSurface creates a native overlay surface covering the given
// parent bounds with the given overlay tint.
func NewNativeSurface(parent Bounds, overlayRGBA uint32) (*NativeSurface, error) {
	id, err := ffi.CreateSurface(parent.X, parent.Y, parent.Width, parent.Height, overlayRGBA)
	if err != nil {
		return nil, err
	}
	return &NativeSurface{id: id, parent: parent}, nil
}

// ContentSize returns the measured content size, zero until the native
// side finishes its first layout pass.
func (s *NativeSurface) ContentSize() Size {
	w, h, err := ffi.SurfaceSize(s.id)
	if err != nil {
		debugLog("surface %d size query: %v", s.id, err)
		return Size{}
	}
	return Size{Width: w, Height: h}
}

// ParentBounds returns the bounds of the hosting surface.
func (s *NativeSurface) ParentBounds() Bounds { return s.parent }

// SetContentTransform applies a content transform on the native surface.
func (s *NativeSurface) SetContentTransform(t Transform) {
	err := ffi.SetTransform(s.id,
		t.TranslateX, t.TranslateY,
		t.ScaleX, t.ScaleY,
		t.RotateX, t.RotateY, t.RotateZ,
		t.Opacity)
	if err != nil {
		debugLog("surface %d transform: %v", s.id, err)
	}
}

// SetOverlayOpacity sets the dimming layer opacity on the native surface.
func (s *NativeSurface) SetOverlayOpacity(opacity float32) {
	if err := ffi.SetOverlayOpacity(s.id, opacity); err != nil {
		debugLog("surface %d overlay: %v", s.id, err)
	}
}

// Destroy tears down the native surface.
func (s *NativeSurface) Destroy() error {
	return ffi.DestroySurface(s.id)
}

// ReadySignal returns a channel that closes once the surface reports a
// nonzero measured size, polling at the given interval. The poll stops
// when ctx is cancelled; the engine's own ready timeout bounds how long
// an open waits on the result.
func (s *NativeSurface) ReadySignal(ctx context.Context, poll time.Duration) <-chan struct{} {
	if poll <= 0 {
		poll = defaultFrameInterval
	}
	ready := make(chan struct{})
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		for {
			sz := s.ContentSize()
			if sz.Width > 0 && sz.Height > 0 {
				close(ready)
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ready
}

// SizingContext assembles the standard sizing context for this surface:
// a SequenceDriver over the native primitives, the polled ready signal,
// and surface teardown.
func (s *NativeSurface) SizingContext(ctx context.Context) SizingContext {
	return SizingContext{
		Driver:   NewSequenceDriver(s),
		Ready:    s.ReadySignal(ctx, defaultFrameInterval),
		Teardown: s.Destroy,
	}
}
