package hover

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// elapse fires every timer that has not been stopped.
func (c *fakeClock) elapse() {
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func (c *fakeClock) active() int {
	var n int
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type event struct {
	enter  bool
	target Target
	elapse bool
}

var (
	enterTrigger = event{enter: true, target: Trigger}
	leaveTrigger = event{target: Trigger}
	enterControl = event{enter: true, target: Control}
	leaveControl = event{target: Control}
	elapse       = event{elapse: true}
)

var machineTests = []struct {
	name   string
	events []event

	want        State
	wantChanges []State
	wantShows   int
	wantActive  int
}{
	{
		name:        "show",
		events:      []event{enterTrigger},
		want:        Visible,
		wantChanges: []State{Visible},
		wantShows:   1,
	},
	{
		name:        "show_once",
		events:      []event{enterTrigger, enterTrigger},
		want:        Visible,
		wantChanges: []State{Visible},
		wantShows:   1,
	},
	{
		name:        "leave_pending",
		events:      []event{enterTrigger, leaveTrigger},
		want:        PendingHide,
		wantChanges: []State{Visible, PendingHide},
		wantShows:   1,
		wantActive:  1,
	},
	{
		name:        "leave_hides",
		events:      []event{enterTrigger, leaveTrigger, elapse},
		want:        Hidden,
		wantChanges: []State{Visible, PendingHide, Hidden},
		wantShows:   1,
	},
	{
		name:        "reenter_cancels",
		events:      []event{enterTrigger, leaveTrigger, enterTrigger, elapse},
		want:        Visible,
		wantChanges: []State{Visible, PendingHide, Visible},
		wantShows:   1,
	},
	{
		name:        "cross_to_control",
		events:      []event{enterTrigger, leaveTrigger, enterControl, elapse},
		want:        Visible,
		wantChanges: []State{Visible, PendingHide, Visible},
		wantShows:   1,
	},
	{
		name:        "leave_control_hides",
		events:      []event{enterTrigger, leaveTrigger, enterControl, leaveControl, elapse},
		want:        Hidden,
		wantChanges: []State{Visible, PendingHide, Visible, PendingHide, Hidden},
		wantShows:   1,
	},
	{
		name:        "trigger_leave_while_over_control",
		events:      []event{enterControl, enterTrigger, leaveTrigger, elapse},
		want:        Visible,
		wantChanges: []State{Visible},
		wantShows:   0,
	},
	{
		name:        "control_from_hidden",
		events:      []event{enterControl},
		want:        Visible,
		wantChanges: []State{Visible},
	},
	{
		name:   "leave_while_hidden",
		events: []event{leaveTrigger, leaveControl, elapse},
		want:   Hidden,
	},
	{
		name:        "show_again",
		events:      []event{enterTrigger, leaveTrigger, elapse, enterTrigger},
		want:        Visible,
		wantChanges: []State{Visible, PendingHide, Hidden, Visible},
		wantShows:   2,
	},
	{
		name:        "hide_replaces_pending",
		events:      []event{enterControl, leaveControl, enterControl, leaveControl},
		want:        PendingHide,
		wantChanges: []State{Visible, PendingHide, Visible, PendingHide},
		wantActive:  1,
	},
	{
		name:        "repeated_hide_request",
		events:      []event{enterControl, leaveControl, leaveControl},
		want:        PendingHide,
		wantChanges: []State{Visible, PendingHide},
		wantActive:  1,
	},
}

func TestMachine(t *testing.T) {
	for _, test := range machineTests {
		t.Run(test.name, func(t *testing.T) {
			var (
				clock   fakeClock
				changes []State
				shows   int
			)
			m := New(
				WithAfterFunc(clock.AfterFunc),
				OnShow(func() { shows++ }),
				OnChange(func(s State) { changes = append(changes, s) }),
			)
			for _, e := range test.events {
				switch {
				case e.elapse:
					clock.elapse()
				case e.enter:
					m.Enter(e.target)
				default:
					m.Leave(e.target)
				}
			}
			if got := m.State(); got != test.want {
				t.Errorf("unexpected state: got:%s want:%s", got, test.want)
			}
			if !cmp.Equal(test.wantChanges, changes) {
				t.Errorf("unexpected state changes:\n--- want:\n+++ got:\n%s", cmp.Diff(test.wantChanges, changes))
			}
			if shows != test.wantShows {
				t.Errorf("unexpected number of show calls: got:%d want:%d", shows, test.wantShows)
			}
			if got := clock.active(); got != test.wantActive {
				t.Errorf("unexpected number of pending timers: got:%d want:%d", got, test.wantActive)
			}
		})
	}
}

func TestDelay(t *testing.T) {
	var clock fakeClock
	m := New(WithAfterFunc(clock.AfterFunc))
	m.Enter(Trigger)
	m.Leave(Trigger)
	m.SetDelay(250 * time.Millisecond)
	m.Enter(Trigger)
	m.Leave(Trigger)
	want := []time.Duration{DefaultDelay, 250 * time.Millisecond}
	var got []time.Duration
	for _, t := range clock.timers {
		got = append(got, t.d)
	}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected timer delays:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestStaleTimer(t *testing.T) {
	var clock fakeClock
	m := New(WithAfterFunc(clock.AfterFunc))
	m.Enter(Trigger)
	m.Leave(Trigger)
	stale := clock.timers[0]
	m.Enter(Trigger)

	// A callback that raced with its cancellation must not hide.
	stale.f()
	if got := m.State(); got != Visible {
		t.Errorf("stale timer changed state: got:%s want:%s", got, Visible)
	}
}

func TestClose(t *testing.T) {
	var clock fakeClock
	m := New(WithAfterFunc(clock.AfterFunc))
	m.Enter(Trigger)
	m.Leave(Trigger)
	m.Close()
	if got := clock.active(); got != 0 {
		t.Errorf("pending hide not cancelled on close: %d active", got)
	}
	clock.timers[0].f()
	if got := m.State(); got != PendingHide {
		t.Errorf("state changed after close: got:%s want:%s", got, PendingHide)
	}
	m.Enter(Trigger)
	m.Leave(Control)
	if got := m.State(); got != PendingHide {
		t.Errorf("event handled after close: got:%s want:%s", got, PendingHide)
	}
}

func TestRealTimer(t *testing.T) {
	var (
		mu      sync.Mutex
		changes []State
	)
	hidden := make(chan struct{})
	m := New(OnChange(func(s State) {
		mu.Lock()
		changes = append(changes, s)
		mu.Unlock()
		if s == Hidden {
			close(hidden)
		}
	}))
	defer m.Close()

	m.Enter(Trigger)
	m.Leave(Trigger)
	time.Sleep(DefaultDelay / 5)
	m.Enter(Trigger)
	time.Sleep(3 * DefaultDelay)
	if got := m.State(); got != Visible {
		t.Fatalf("re-entry did not cancel hide: got:%s want:%s", got, Visible)
	}

	start := time.Now()
	m.Leave(Trigger)
	select {
	case <-hidden:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for hide")
	}
	if elapsed := time.Since(start); elapsed < DefaultDelay {
		t.Errorf("hidden too early: %v", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []State{Visible, PendingHide, Visible, PendingHide, Hidden}
	if !cmp.Equal(want, changes) {
		t.Errorf("unexpected state changes:\n--- want:\n+++ got:\n%s", cmp.Diff(want, changes))
	}
}
