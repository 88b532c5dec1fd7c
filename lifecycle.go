package popover

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var lifecycleDebug = false // Set to true for debug logging

func debugLog(format string, args ...interface{}) {
	if lifecycleDebug {
		log.Printf("popover: "+format, args...)
	}
}

// Errors returned by the lifecycle engine.
var (
	// ErrNotOpen is returned when RequestClose is called for a popup the
	// engine is not tracking.
	ErrNotOpen = errors.New("popover: popup not open")

	// ErrNoDriver is returned when Open is called without an animation
	// driver in the sizing context.
	ErrNoDriver = errors.New("popover: sizing context has no animation driver")
)

// SizingContext bundles everything the host adapter supplies for one open
// popup: the backend's animation driver, the surface-ready signal, and the
// native teardown hook.
type SizingContext struct {
	// Driver animates the popup's surface. Required.
	Driver AnimationDriver

	// Ready is closed once the native surface has nonzero measured width
	// and height. Starting a transform animation against an unsized target
	// produces a visually broken jump, so the engine waits on this before
	// playing the entrance. Nil means the surface is already sized.
	Ready <-chan struct{}

	// ReadyTimeout bounds the wait on Ready. On timeout the engine
	// proceeds anyway rather than failing the open. Zero means the
	// engine's configured default.
	ReadyTimeout time.Duration

	// Teardown destroys the native surface after the exit transition.
	// Failures (including panics) are logged, never propagated: a popup
	// stuck in the registry is worse than a best-effort cleanup.
	Teardown func() error
}

// session tracks one open popup inside the engine.
type session struct {
	driver      AnimationDriver
	teardown    func() error
	cancelEnter context.CancelFunc
}

// Engine owns the open/close sequence of popups. It invokes the layout
// solver's callers for placement, drives the backend's AnimationDriver for
// motion, and keeps the registry consistent on every close path.
type Engine struct {
	stack *PopupStack
	cfg   *Config

	mu       sync.Mutex
	sessions map[*Popup]*session
}

// NewEngine creates an engine over the given registry. A nil config uses
// the package defaults. The engine installs itself as the registry's close
// requester so Clear drains through the full exit sequence.
func NewEngine(stack *PopupStack, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		stack:    stack,
		cfg:      cfg,
		sessions: make(map[*Popup]*session),
	}
	stack.SetCloseRequester(func(p *Popup) {
		go func() {
			if err := e.RequestClose(context.Background(), p, nil); err != nil {
				debugLog("clear: close of popup %d: %v", p.ID(), err)
			}
		}()
	})
	return e
}

// Stack returns the registry this engine drains through.
func (e *Engine) Stack() *PopupStack { return e.stack }

// Open runs a popup's entrance sequence: register it, put the surface in
// its hidden initial state before it is visible, wait for a valid measured
// size, then play the entrance transition. Blocks until the popup is
// visible. Returns ErrInterrupted when a close request lands before the
// entrance completes; the close path owns the rest of the lifecycle in
// that case.
func (e *Engine) Open(ctx context.Context, p *Popup, sc SizingContext) error {
	if sc.Driver == nil {
		return ErrNoDriver
	}

	openCtx, cancelEnter := context.WithCancel(ctx)
	defer cancelEnter()

	// Register the session before the popup becomes discoverable so a
	// close request racing the open always finds it.
	e.mu.Lock()
	if _, exists := e.sessions[p]; exists {
		e.mu.Unlock()
		return ErrAlreadyOpen
	}
	e.sessions[p] = &session{
		driver:      sc.Driver,
		teardown:    sc.Teardown,
		cancelEnter: cancelEnter,
	}
	e.mu.Unlock()

	unregister := func() {
		e.mu.Lock()
		delete(e.sessions, p)
		e.mu.Unlock()
	}

	if err := e.stack.Push(p); err != nil {
		unregister()
		return err
	}
	if !p.transition(StatePreparing) {
		e.stack.Remove(p)
		unregister()
		return ErrAlreadyOpen
	}

	// Hidden initial state and a transparent overlay must be in place
	// before the host shows the surface.
	kind := e.animationKind(p)
	sc.Driver.SetInitialState(kind)

	if err := e.waitSurfaceReady(openCtx, sc); err != nil {
		// Unwind through the standard close path. If a racing close caused
		// the cancellation this just awaits it; if the caller abandoned the
		// open, this runs the exit itself so nothing is left in Preparing.
		_ = e.RequestClose(context.Background(), p, nil)
		return ErrInterrupted
	}

	if !p.transition(StateEntering) {
		return ErrInterrupted
	}

	debugLog("popup %d entering (%s, %v)", p.ID(), kind, e.duration(p))
	err := sc.Driver.PlayEnter(openCtx, kind, e.duration(p), e.easing(p))

	if !p.transition(StateVisible) {
		// A close raced the entrance; its exit picks up from the current
		// transform.
		return ErrInterrupted
	}
	if err != nil {
		// The enter was interrupted without a close in flight (caller
		// cancellation). The driver snapped to the fully-shown terminal
		// state, so Visible is what is actually on screen.
		debugLog("popup %d enter interrupted: %v", p.ID(), err)
	}
	if p.OnOpened != nil {
		p.OnOpened()
	}
	return nil
}

// waitSurfaceReady blocks until the surface reports a nonzero measured
// size, the bounded timeout elapses (proceed anyway), or the open is
// cancelled by a racing close.
func (e *Engine) waitSurfaceReady(ctx context.Context, sc SizingContext) error {
	if sc.Ready == nil {
		return nil
	}
	timeout := sc.ReadyTimeout
	if timeout <= 0 {
		timeout = e.cfg.surfaceReadyTimeout()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-sc.Ready:
		return nil
	case <-timer.C:
		log.Printf("popover: surface not sized after %v, proceeding", timeout)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestClose runs a popup's exit sequence and resolves its result with
// the supplied value. Blocks until the popup is fully closed. Re-entrant
// calls while an exit is in flight simply await the same completion.
// Teardown failures are logged, never returned: the close always
// completes and the registry entry always goes away.
func (e *Engine) RequestClose(ctx context.Context, p *Popup, result any) error {
	e.mu.Lock()
	sess := e.sessions[p]
	e.mu.Unlock()

	if sess == nil {
		if p.State() == StateClosed {
			// The owning close deleted the session after reaching Closed
			// but may not have resolved the result yet. Await it so the
			// caller never sees a closed popup without its result.
			select {
			case <-p.Closed():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return ErrNotOpen
	}

	if !p.transition(StateExiting) {
		// Already exiting (or closed): await the owning close.
		select {
		case <-p.Closed():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// Interrupt a still-running entrance before starting the exit. The
	// driver guarantees a clean terminal state on cancellation and
	// serializes the two transitions.
	sess.cancelEnter()
	sess.driver.Cancel()

	debugLog("popup %d exiting", p.ID())
	if err := sess.driver.PlayExit(ctx, e.animationKind(p), e.duration(p), e.easing(p)); err != nil {
		debugLog("popup %d exit interrupted: %v", p.ID(), err)
	}

	e.teardown(p, sess)

	if !p.transition(StateClosed) {
		// Unreachable by construction: only this goroutine owns Exiting.
		log.Printf("popover: popup %d failed transition to closed from %s", p.ID(), p.State())
	}

	e.mu.Lock()
	delete(e.sessions, p)
	e.mu.Unlock()
	e.stack.Remove(p)

	p.resolve(result)
	return nil
}

// teardown destroys the native surface, swallowing errors and panics. A
// disposed or missing surface during teardown is a recoverable condition.
func (e *Engine) teardown(p *Popup, sess *session) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("popover: teardown of popup %d panicked: %v", p.ID(), r)
		}
	}()
	if sess.teardown != nil {
		if err := sess.teardown(); err != nil {
			log.Printf("popover: teardown of popup %d: %v", p.ID(), err)
		}
	}
	sess.driver.Cleanup()
}

// OutsideTap reports a user tap on the overlay outside the content
// bounds. Dismisses the popup when it opts in and its close-validation
// hook (if any) does not veto. Blocks until the close completes when one
// is initiated.
func (e *Engine) OutsideTap(ctx context.Context, p *Popup) error {
	if !p.CloseOnOutsideTap {
		return nil
	}
	switch p.State() {
	case StateEntering, StateVisible:
	default:
		return nil
	}
	if !allowClose(p) {
		debugLog("popup %d close vetoed", p.ID())
		return nil
	}
	return e.RequestClose(ctx, p, nil)
}

// allowClose consults the close-validation hook. A panicking hook counts
// as a veto: failing safe keeps the popup open.
func allowClose(p *Popup) (ok bool) {
	if p.CanClose == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("popover: close validation for popup %d panicked: %v", p.ID(), r)
			ok = false
		}
	}()
	return p.CanClose()
}

// CloseAllAndWait initiates a close for every open popup, top of the
// stack first, and blocks until all exit transitions have completed.
// Unlike PopupStack.Clear this is the synchronous variant for hosts that
// need the screen empty before proceeding (window teardown, navigation
// resets).
func (e *Engine) CloseAllAndWait(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range e.stack.Snapshot() {
		p := p
		g.Go(func() error {
			if err := e.RequestClose(ctx, p, nil); err != nil && !errors.Is(err, ErrNotOpen) {
				return fmt.Errorf("close popup %d: %w", p.ID(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// animationKind resolves a popup's transition kind against the configured
// default. Drivers never see AnimationDefault.
func (e *Engine) animationKind(p *Popup) AnimationKind {
	if p.Animation == AnimationDefault {
		return e.cfg.DefaultKind()
	}
	return p.Animation
}

// duration resolves a popup's transition duration against the configured
// default.
func (e *Engine) duration(p *Popup) time.Duration {
	if p.Duration > 0 {
		return p.Duration
	}
	return e.cfg.animationDuration()
}

// easing resolves a popup's content easing against the configured default.
func (e *Engine) easing(p *Popup) EasingFunc {
	if p.Easing != nil {
		return p.Easing
	}
	return e.cfg.animationEasing()
}

// OverlayColor resolves a popup's overlay tint against the configured
// default. Host adapters use this when creating the dimming layer.
func (e *Engine) OverlayColor(p *Popup) uint32 {
	if p.OverlayColor != 0 {
		return p.OverlayColor
	}
	return e.cfg.overlayColor()
}
