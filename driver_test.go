package popover

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend records every primitive operation a driver applies.
type fakeBackend struct {
	mu         sync.Mutex
	content    Size
	parent     Bounds
	transforms []Transform
	overlays   []float32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		content: Size{Width: 100, Height: 50},
		parent:  Bounds{Width: 400, Height: 800},
	}
}

func (b *fakeBackend) ContentSize() Size    { return b.content }
func (b *fakeBackend) ParentBounds() Bounds { return b.parent }

func (b *fakeBackend) SetContentTransform(t Transform) {
	b.mu.Lock()
	b.transforms = append(b.transforms, t)
	b.mu.Unlock()
}

func (b *fakeBackend) SetOverlayOpacity(v float32) {
	b.mu.Lock()
	b.overlays = append(b.overlays, v)
	b.mu.Unlock()
}

func (b *fakeBackend) lastTransform() Transform {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.transforms) == 0 {
		return Transform{}
	}
	return b.transforms[len(b.transforms)-1]
}

func (b *fakeBackend) lastOverlay() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.overlays) == 0 {
		return -1
	}
	return b.overlays[len(b.overlays)-1]
}

func (b *fakeBackend) frameCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.transforms)
}

func newTestDriver(b *fakeBackend) *SequenceDriver {
	d := NewSequenceDriver(b)
	d.SetFrameInterval(2 * time.Millisecond)
	return d
}

func TestSequenceDriverInitialState(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationFade)

	if got := b.lastTransform(); got.Opacity != 0 {
		t.Errorf("initial content opacity = %v, want 0", got.Opacity)
	}
	if got := b.lastOverlay(); got != 0 {
		t.Errorf("initial overlay = %v, want 0", got)
	}
}

func TestSequenceDriverEnterCompletes(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationZoom)
	if err := d.PlayEnter(context.Background(), AnimationZoom, 30*time.Millisecond, EaseLinear); err != nil {
		t.Fatalf("PlayEnter: %v", err)
	}

	if got := b.lastTransform(); got != IdentityTransform() {
		t.Errorf("entrance must settle at identity, got %+v", got)
	}
	if got := b.lastOverlay(); got != 1 {
		t.Errorf("overlay must settle at 1, got %v", got)
	}
	if b.frameCount() < 3 {
		t.Errorf("expected interpolated frames, got %d", b.frameCount())
	}
}

func TestSequenceDriverZeroDurationSnaps(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationFade)
	frames := b.frameCount()

	if err := d.PlayEnter(context.Background(), AnimationFade, 0, nil); err != nil {
		t.Fatalf("PlayEnter: %v", err)
	}
	if b.frameCount() != frames+1 {
		t.Errorf("zero duration should apply exactly the terminal frame")
	}
	if got := b.lastTransform(); got != IdentityTransform() {
		t.Errorf("got %+v, want identity", got)
	}
}

func TestSequenceDriverCancelLeavesTerminalState(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationSlideBottom)

	done := make(chan error, 1)
	go func() {
		done <- d.PlayEnter(context.Background(), AnimationSlideBottom, time.Second, EaseLinear)
	}()

	time.Sleep(20 * time.Millisecond)
	d.Cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled enter should report cancellation, got %v", err)
	}

	// No mid-transform limbo: the target terminal state is on screen.
	if got := b.lastTransform(); got != IdentityTransform() {
		t.Errorf("cancel left %+v, want fully shown", got)
	}
	if got := b.lastOverlay(); got != 1 {
		t.Errorf("cancel left overlay %v, want 1", got)
	}
}

func TestSequenceDriverExitStartsFromCurrent(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationSlideBottom)

	go func() {
		_ = d.PlayEnter(context.Background(), AnimationSlideBottom, time.Second, EaseLinear)
	}()
	time.Sleep(20 * time.Millisecond)
	d.Cancel()

	// Exit is a fresh symmetric transition from wherever the content is,
	// not a rewind of the entrance recording.
	if err := d.PlayExit(context.Background(), AnimationSlideBottom, 20*time.Millisecond, EaseLinear); err != nil {
		t.Fatalf("PlayExit: %v", err)
	}

	hidden := AnimationSlideBottom.InitialTransform(b.ContentSize(), b.ParentBounds())
	if got := b.lastTransform(); got != hidden {
		t.Errorf("exit must settle hidden, got %+v", got)
	}
	if got := b.lastOverlay(); got != 0 {
		t.Errorf("exit overlay must settle at 0, got %v", got)
	}
}

func TestSequenceDriverRefusesPreCancelledTransition(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	d.SetInitialState(AnimationFade)
	frames := b.frameCount()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.PlayEnter(ctx, AnimationFade, 20*time.Millisecond, nil); err == nil {
		t.Fatal("expected an error for a pre-cancelled transition")
	}
	if b.frameCount() != frames {
		t.Error("a transition that never started must not touch the surface")
	}
}

func TestSequenceDriverOverlayIsLinear(t *testing.T) {
	b := newFakeBackend()
	d := newTestDriver(b)

	// Content runs an overshooting curve; the overlay must not.
	d.SetInitialState(AnimationSpringBottom)
	if err := d.PlayEnter(context.Background(), AnimationSpringBottom, 50*time.Millisecond, nil); err != nil {
		t.Fatalf("PlayEnter: %v", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range b.overlays {
		if v < 0 || v > 1 {
			t.Fatalf("overlay opacity %v outside [0,1]; linear fade never overshoots", v)
		}
	}
}
