// Package hover tracks whether a transient brightness control should be
// shown, given pointer enter and leave events over the control's trigger
// and over the floating control itself.
package hover

import (
	"sync"
	"time"
)

// State is the visibility of the floating control.
type State int

const (
	Hidden State = iota
	Visible
	PendingHide
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case PendingHide:
		return "pending-hide"
	default:
		return "unknown"
	}
}

// Target is the element an event refers to.
type Target int

const (
	// Trigger is the panel icon that reveals the control.
	Trigger Target = iota
	// Control is the floating control.
	Control
)

func (t Target) String() string {
	switch t {
	case Trigger:
		return "trigger"
	case Control:
		return "control"
	default:
		return "unknown"
	}
}

// ParseTarget returns the Target named s.
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "trigger":
		return Trigger, true
	case "control":
		return Control, true
	default:
		return 0, false
	}
}

// DefaultDelay is the time the pointer has to cross from the trigger to
// the control before it is hidden.
const DefaultDelay = 100 * time.Millisecond

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Machine is the show/hide debounce state machine. At most one hide is
// pending at a time; a new hide request replaces the previous one.
type Machine struct {
	mu          sync.Mutex
	state       State
	overControl bool
	delay       time.Duration
	pending     Timer
	gen         uint64
	closed      bool

	after    AfterFunc
	onShow   func()
	onChange func(State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithDelay sets the hide delay.
func WithDelay(d time.Duration) Option {
	return func(m *Machine) { m.delay = d }
}

// WithAfterFunc sets the timer source.
func WithAfterFunc(f AfterFunc) Option {
	return func(m *Machine) { m.after = f }
}

// OnShow sets a function called when the control goes from hidden to
// visible from the trigger, before the change is reported.
func OnShow(f func()) Option {
	return func(m *Machine) { m.onShow = f }
}

// OnChange sets a function called with each new state.
func OnChange(f func(State)) Option {
	return func(m *Machine) { m.onChange = f }
}

// New returns a Machine in the Hidden state.
func New(opts ...Option) *Machine {
	m := &Machine{delay: DefaultDelay, after: afterFunc}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetDelay changes the hide delay for later hide requests.
func (m *Machine) SetDelay(d time.Duration) {
	m.mu.Lock()
	m.delay = d
	m.mu.Unlock()
}

// Enter reports the pointer entering t.
func (m *Machine) Enter(t Target) State {
	m.mu.Lock()
	if m.closed {
		defer m.mu.Unlock()
		return m.state
	}
	prev := m.state
	m.cancel()
	if t == Control {
		m.overControl = true
	}
	show := t == Trigger && prev == Hidden
	m.state = Visible
	m.mu.Unlock()

	if show && m.onShow != nil {
		m.onShow()
	}
	m.changed(prev, Visible)
	return Visible
}

// Leave reports the pointer leaving t.
func (m *Machine) Leave(t Target) State {
	m.mu.Lock()
	if m.closed {
		defer m.mu.Unlock()
		return m.state
	}
	prev := m.state
	switch t {
	case Trigger:
		if m.overControl || m.state != Visible {
			m.mu.Unlock()
			return prev
		}
	case Control:
		m.overControl = false
		if m.state == Hidden {
			m.mu.Unlock()
			return prev
		}
	}
	m.hide()
	m.mu.Unlock()

	m.changed(prev, PendingHide)
	return PendingHide
}

// hide schedules a transition to Hidden, replacing any pending one.
// It must be called with m.mu held.
func (m *Machine) hide() {
	m.cancel()
	m.state = PendingHide
	gen := m.gen
	m.pending = m.after(m.delay, func() { m.expire(gen) })
}

func (m *Machine) expire(gen uint64) {
	m.mu.Lock()
	if m.closed || gen != m.gen || m.state != PendingHide || m.overControl {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.state = Hidden
	m.mu.Unlock()

	m.changed(PendingHide, Hidden)
}

// cancel stops the pending hide, if any. It must be called with m.mu held.
func (m *Machine) cancel() {
	m.gen++
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

func (m *Machine) changed(prev, next State) {
	if prev != next && m.onChange != nil {
		m.onChange(next)
	}
}

// Close cancels any pending hide. Events after Close are ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancel()
	m.closed = true
}
