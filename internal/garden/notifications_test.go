package garden

import (
	"testing"
	"time"
)

func TestNotifications_ExpiresAfterTTL(t *testing.T) {
	n := NewNotifications(30 * time.Millisecond)

	n.Publish(NotificationSuccess, "Figgy has been watered")
	if n.Current() == nil {
		t.Fatal("expected banner right after publish")
	}

	deadline := time.After(2 * time.Second)
	for n.Current() != nil {
		select {
		case <-deadline:
			t.Fatal("banner never expired")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNotifications_NewBannerReplacesAndRestartsTimer(t *testing.T) {
	n := NewNotifications(60 * time.Millisecond)

	n.Publish(NotificationSuccess, "first")
	time.Sleep(40 * time.Millisecond)
	n.Publish(NotificationError, "second")

	// The first banner's timer would have fired by now; the second must
	// survive it.
	time.Sleep(40 * time.Millisecond)

	got := n.Current()
	if got == nil {
		t.Fatal("replacement banner expired on the old timer")
	}
	if got.Message != "second" || got.Kind != NotificationError {
		t.Fatalf("unexpected banner: %+v", got)
	}
}

func TestNotifications_Dismiss(t *testing.T) {
	n := NewNotifications(time.Hour)

	n.Publish(NotificationError, "Could not water Figgy")
	n.Dismiss()

	if n.Current() != nil {
		t.Fatal("expected empty slot after dismiss")
	}
}

func TestNotifications_CurrentReturnsCopy(t *testing.T) {
	n := NewNotifications(time.Hour)
	n.Publish(NotificationSuccess, "original")

	c := n.Current()
	c.Message = "mutated"

	if got := n.Current(); got.Message != "original" {
		t.Fatalf("caller mutation leaked into the slot: %q", got.Message)
	}
}
