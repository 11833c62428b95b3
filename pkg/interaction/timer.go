package interaction

import "time"

// HandleTimeout is how long resize handles stay visible without being hidden
// by a click elsewhere or a second double-click.
const HandleTimeout = 5 * time.Second

// HandleTimer tracks the auto-hide deadline of the resize handles. It does
// not own a goroutine: Arm hands out a token for the host to schedule, and
// only the most recently armed token is honoured when it comes back.
type HandleTimer struct {
	gen    uint64
	armed  bool
	closed bool
}

// Arm starts a new deadline and returns its token. It returns false once the
// timer is closed.
func (t *HandleTimer) Arm() (uint64, bool) {
	if t.closed {
		return 0, false
	}
	t.gen++
	t.armed = true
	return t.gen, true
}

// Cancel drops the pending deadline. Its token becomes stale.
func (t *HandleTimer) Cancel() {
	if t.armed {
		t.gen++
		t.armed = false
	}
}

// Expire consumes token. It reports true only for the live deadline.
func (t *HandleTimer) Expire(token uint64) bool {
	if t.closed || !t.armed || token != t.gen {
		return false
	}
	t.armed = false
	return true
}

// Armed reports whether a deadline is pending.
func (t *HandleTimer) Armed() bool {
	return t.armed
}

// Close cancels the deadline for good.
func (t *HandleTimer) Close() {
	t.Cancel()
	t.closed = true
}
