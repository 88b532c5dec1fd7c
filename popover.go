// Package popover is a layout and lifecycle engine for transient overlay
// surfaces ("popups") shown above a host application's view tree.
//
// The package has three parts:
//   - a pure geometry solver that computes popup size and position from
//     alignment, anchor, padding, and safe-area inputs (layout.go)
//   - a lifecycle state machine that sequences entrance and exit
//     transitions through a narrow AnimationDriver contract (lifecycle.go)
//   - a lock-protected LIFO registry of open popups (stack.go)
//
// Rendering of popup content, markup parsing, and per-platform window
// plumbing are the host adapter's job; the core only hands it geometry
// and drives its animation primitives.
package popover

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// PopupID uniquely identifies a popup for debug output. Popup identity for
// registry purposes is the object reference, not the ID.
type PopupID uint64

var nextPopupID atomic.Uint64

func newPopupID() PopupID {
	return PopupID(nextPopupID.Add(1))
}

// Alignment positions a popup along one axis of its parent bounds.
type Alignment int

const (
	// AlignCenter centers the popup within the effective bounds (default).
	AlignCenter Alignment = iota

	// AlignStart pins the popup to the left/top edge of the effective bounds.
	AlignStart

	// AlignEnd pins the popup to the right/bottom edge of the effective bounds.
	AlignEnd

	// AlignFill stretches the popup across the effective bounds. An explicit
	// size override still wins over the fill, even when it exceeds the
	// available space - that is the host's unchecked escape hatch.
	AlignFill
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignFill:
		return "fill"
	default:
		return fmt.Sprintf("alignment(%d)", int(a))
	}
}

// DisplayMode controls how a popup relates to system UI (status bars,
// notches, navigation bars).
type DisplayMode int

const (
	// DisplayDefault keeps the popup inside the safe area.
	DisplayDefault DisplayMode = iota

	// DisplayCover lets the popup extend under system UI without hiding it.
	DisplayCover

	// DisplayFullScreen hides system UI while the popup is shown. Downgrades
	// to DisplayCover on platforms that cannot hide system UI.
	DisplayFullScreen
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayDefault:
		return "default"
	case DisplayCover:
		return "cover"
	case DisplayFullScreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("displaymode(%d)", int(m))
	}
}

// honorsSafeArea reports whether layout should shrink the parent bounds by
// the safe-area insets for this mode.
func (m DisplayMode) honorsSafeArea() bool { return m == DisplayDefault }

// LifecycleState tracks where a popup is in its open/close sequence.
// Transitions are strictly forward: Idle -> Preparing -> Entering ->
// Visible -> Exiting -> Closed, except that Exiting may be entered early
// from Preparing or Entering when a popup is closed before it is fully
// shown. Preparing can be entered only once per popup instance.
type LifecycleState int32

const (
	StateIdle LifecycleState = iota
	StatePreparing
	StateEntering
	StateVisible
	StateExiting
	StateClosed
)

func (s LifecycleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Measurer returns the natural size of a popup's content under the given
// constraints. Either constraint may be +Inf, meaning "unconstrained on
// this axis". Supplied by the host's rendering pipeline.
type Measurer func(maxWidth, maxHeight float32) Size

// Sentinel errors shared across the package.
var (
	// ErrAlreadyOpen is returned when Open is called on a popup that has
	// already begun its lifecycle.
	ErrAlreadyOpen = errors.New("popover: popup already open")

	// ErrAlreadyStacked is returned when a popup is pushed onto a stack
	// that already contains it.
	ErrAlreadyStacked = errors.New("popover: popup already on stack")

	// ErrInterrupted is returned from Open when a close request lands
	// before the entrance transition finishes.
	ErrInterrupted = errors.New("popover: open interrupted by close")
)

// Popup describes one transient overlay surface. The zero value is not
// usable; construct with NewPopup and adjust fields before calling
// Engine.Open. Fields must not be mutated after Open.
type Popup struct {
	id PopupID

	// Content is the host's opaque content handle. The popup owns it while
	// open; the core never inspects it.
	Content any

	// Anchor is an opaque reference to a host UI element the popup is
	// positioned relative to. The core only uses it as a key for a bounds
	// lookup; it never manages the anchor's lifetime. Nil means absolute
	// alignment positioning.
	Anchor any

	HorizontalAlignment Alignment
	VerticalAlignment   Alignment

	// Padding is inset between the popup's edge and its content.
	Padding Insets

	// Width and Height are explicit size overrides in logical units.
	// Nil means "derive from content". Explicit sizes are clamped by
	// ComputeContentSize but honored unclamped on Fill axes.
	Width  *float32
	Height *float32

	Mode DisplayMode

	// Measure returns the content's natural size. Nil content measurement
	// yields a zero size, which is valid layout output.
	Measure Measurer

	// Animation selects the enter/exit transition. The zero value
	// AnimationDefault uses the engine's configured default kind; use
	// AnimationNone to explicitly disable motion.
	Animation AnimationKind

	// Duration of the entrance and exit transitions. Zero means "use the
	// engine's configured default". Kinds with a minimum duration (Whirl)
	// extend shorter values.
	Duration time.Duration

	// Easing applied to the content transform. The overlay fade is always
	// linear regardless of this value. Nil means the engine default.
	Easing EasingFunc

	// OverlayColor is the RGBA tint of the dimming layer beneath the
	// content, packed 0xRRGGBBAA like widget colors elsewhere in the
	// framework. Zero means the engine default.
	OverlayColor uint32

	// CloseOnOutsideTap dismisses the popup when the user taps the overlay
	// outside the content bounds.
	CloseOnOutsideTap bool

	// CanClose, when non-nil, is consulted before an outside-tap dismissal
	// and may veto it by returning false. A panicking hook counts as a
	// veto - failing safe keeps the popup open.
	CanClose func() bool

	// OnOpened fires after the entrance transition completes.
	OnOpened func()

	mu       sync.Mutex
	state    LifecycleState
	prepared bool // Preparing is a once-per-instance state
	result   any
	closed   chan struct{}
}

// NewPopup creates a popup wrapping the given content handle, centered on
// both axes with no animation overrides.
func NewPopup(content any) *Popup {
	return &Popup{
		id:                  newPopupID(),
		Content:             content,
		HorizontalAlignment: AlignCenter,
		VerticalAlignment:   AlignCenter,
		closed:              make(chan struct{}),
	}
}

// ID returns the popup's debug identifier.
func (p *Popup) ID() PopupID { return p.id }

// State returns the popup's current lifecycle state.
func (p *Popup) State() LifecycleState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Closed returns a channel that is closed once the popup reaches
// StateClosed and its result is resolved.
func (p *Popup) Closed() <-chan struct{} { return p.closed }

// Result returns the value supplied to RequestClose. Valid once Closed()
// is signalled; nil before that.
func (p *Popup) Result() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// transition attempts to move the popup to a new lifecycle state,
// enforcing the forward-only transition rules. Returns false when the
// transition is not legal from the current state.
func (p *Popup) transition(to LifecycleState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transitionLocked(to)
}

func (p *Popup) transitionLocked(to LifecycleState) bool {
	from := p.state
	ok := false
	switch to {
	case StatePreparing:
		ok = from == StateIdle && !p.prepared
		if ok {
			p.prepared = true
		}
	case StateEntering:
		ok = from == StatePreparing
	case StateVisible:
		ok = from == StateEntering
	case StateExiting:
		ok = from == StatePreparing || from == StateEntering || from == StateVisible
	case StateClosed:
		ok = from == StateExiting
	}
	if ok {
		p.state = to
	}
	return ok
}

// resolve records the close result and signals Closed. Safe to call once;
// the lifecycle engine guarantees single resolution via its close path.
func (p *Popup) resolve(result any) {
	p.mu.Lock()
	p.result = result
	p.mu.Unlock()
	close(p.closed)
}
