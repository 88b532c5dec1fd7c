package popover

import "sync"

// PopupStack is a lock-protected LIFO registry of open popups, used for
// global dismissal and introspection. It is an explicitly constructed
// object rather than a hidden package global so tests and multi-window
// hosts can run independent stacks.
//
// Every operation holds one exclusive lock for its whole call. Operations
// are O(depth) and called on open/close only, so coarse locking beats any
// finer scheme here. No operation waits on popup animation: Clear only
// initiates closes, the lifecycle engine owns awaiting their completion.
type PopupStack struct {
	mu    sync.Mutex
	items []*Popup

	// requestClose initiates a close for a popup drained by Clear.
	// Wired by the engine; fire-and-forget from the stack's point of view.
	requestClose func(*Popup)
}

// NewPopupStack creates an empty registry.
func NewPopupStack() *PopupStack {
	return &PopupStack{}
}

// SetCloseRequester wires the callback Clear uses to initiate closes.
// The engine installs its own close path here.
func (s *PopupStack) SetCloseRequester(fn func(*Popup)) {
	s.mu.Lock()
	s.requestClose = fn
	s.mu.Unlock()
}

// Push appends a popup to the top of the stack. Pushing a popup that is
// already present is a caller error and returns ErrAlreadyStacked.
func (s *PopupStack) Push(p *Popup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it == p {
			return ErrAlreadyStacked
		}
	}
	s.items = append(s.items, p)
	return nil
}

// Pop removes and returns the topmost popup, or nil if the stack is empty.
func (s *PopupStack) Pop() *Popup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return top
}

// Peek returns the topmost popup without removing it, or nil if empty.
func (s *PopupStack) Peek() *Popup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Remove takes a specific popup out of the stack wherever it sits,
// preserving the relative order of the rest. Popups close out of LIFO
// order (a buried popup can be dismissed programmatically), and two
// independent observers may both report the same close, so removing an
// absent popup is a no-op.
func (s *PopupStack) Remove(p *Popup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drain and rebuild rather than splicing by index: the popup may have
	// moved or already be gone by the time this runs.
	kept := s.items[:0]
	for _, it := range s.items {
		if it != p {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
}

// Clear drains the stack top to bottom, initiating a close for each entry.
// It does not wait for exit animations; Count is 0 as soon as Clear
// returns regardless of how long the closes take to finish.
func (s *PopupStack) Clear() {
	s.mu.Lock()
	drained := make([]*Popup, len(s.items))
	for i := range s.items {
		drained[i] = s.items[len(s.items)-1-i]
		s.items[len(s.items)-1-i] = nil
	}
	s.items = s.items[:0]
	closer := s.requestClose
	s.mu.Unlock()

	if closer == nil {
		return
	}
	for _, p := range drained {
		closer(p)
	}
}

// Count returns the current stack depth.
func (s *PopupStack) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns the stack contents top-first. The copy is detached;
// mutating the stack afterwards does not affect it.
func (s *PopupStack) Snapshot() []*Popup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Popup, len(s.items))
	for i := range s.items {
		out[i] = s.items[len(s.items)-1-i]
	}
	return out
}
