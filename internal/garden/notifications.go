package garden

import (
	"sync"
	"time"
)

// NotificationKind distinguishes success banners from error banners.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is the single user-facing banner a garden shows at a time.
type Notification struct {
	Message string
	Kind    NotificationKind
	At      time.Time
}

// Notifications is a single-slot notification holder. Publishing replaces
// whatever is currently shown and restarts the expiry timer; the slot clears
// itself after the TTL unless superseded first.
type Notifications struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	seq     uint64
}

// NewNotifications creates a holder whose banners expire after ttl.
func NewNotifications(ttl time.Duration) *Notifications {
	return &Notifications{
		ttl: ttl,
		now: time.Now,
	}
}

// Publish replaces the current banner and restarts the expiry timer.
func (n *Notifications) Publish(kind NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.seq++
	seq := n.seq
	n.current = &Notification{
		Message: message,
		Kind:    kind,
		At:      n.now(),
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(seq)
	})
}

// expire clears the slot only if it still holds the banner the timer was
// armed for. A banner published after the timer fired but before this ran
// must survive.
func (n *Notifications) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.seq == seq {
		n.current = nil
		n.timer = nil
	}
}

// Current returns a copy of the displayed banner, or nil when the slot is empty.
func (n *Notifications) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}

// Dismiss clears the banner immediately.
func (n *Notifications) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.current = nil
}
