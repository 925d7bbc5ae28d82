package schedule

import (
	"testing"
	"time"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

func plantWateredAt(lastWatered time.Time, freq int) domain.Plant {
	return domain.Plant{
		OwnerID:            "alice@example.com",
		Name:               "Figgy",
		Species:            "Fiddle Leaf Fig",
		WaterFrequencyDays: freq,
		LastWateredDate:    lastWatered,
	}
}

func TestEvaluate_DueTodayRegardlessOfTimeOfDay(t *testing.T) {
	t.Parallel()

	// Watered exactly freq days ago; "now" sweeps across the whole day.
	lastWatered := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	p := plantWateredAt(lastWatered, 7)

	for _, hour := range []int{0, 9, 10, 15, 23} {
		now := time.Date(2024, time.January, 8, hour, 0, 0, 0, time.UTC)
		ev := Evaluate(p, now)
		if ev.State != DueToday {
			t.Errorf("hour %d: state = %v, want DueToday", hour, ev.State)
		}
	}
}

func TestEvaluate_OverdueByOneDay(t *testing.T) {
	t.Parallel()

	// Watered freq+1 days ago.
	lastWatered := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	p := plantWateredAt(lastWatered, 7)
	now := time.Date(2024, time.January, 9, 8, 0, 0, 0, time.UTC)

	ev := Evaluate(p, now)
	if ev.State != Overdue {
		t.Errorf("state = %v, want Overdue", ev.State)
	}
	if ev.DaysUntil != -1 {
		t.Errorf("daysUntil = %d, want -1", ev.DaysUntil)
	}
}

func TestEvaluate_UpcomingByOneDay(t *testing.T) {
	t.Parallel()

	// Watered freq-1 days ago.
	lastWatered := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	p := plantWateredAt(lastWatered, 7)
	now := time.Date(2024, time.January, 7, 20, 0, 0, 0, time.UTC)

	ev := Evaluate(p, now)
	if ev.State != Upcoming {
		t.Errorf("state = %v, want Upcoming", ev.State)
	}
	if ev.DaysUntil != 1 {
		t.Errorf("daysUntil = %d, want 1", ev.DaysUntil)
	}
}

// Mirrors the lifecycle of one plant across a watering: due today before,
// upcoming for a full week after.
func TestEvaluate_WateringResetsSchedule(t *testing.T) {
	t.Parallel()

	p := plantWateredAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 7)

	now := time.Date(2024, time.January, 8, 15, 0, 0, 0, time.UTC)
	ev := Evaluate(p, now)
	if ev.State != DueToday {
		t.Fatalf("before watering: state = %v, want DueToday", ev.State)
	}
	if !IsThirsty(p, now) {
		t.Fatal("plant due today should be thirsty")
	}

	// Water at 15:00, re-evaluate the same evening.
	p.LastWateredDate = now
	evening := time.Date(2024, time.January, 8, 23, 0, 0, 0, time.UTC)

	ev = Evaluate(p, evening)
	if ev.State != Upcoming {
		t.Errorf("after watering: state = %v, want Upcoming", ev.State)
	}
	if ev.DaysUntil != 7 {
		t.Errorf("after watering: daysUntil = %d, want 7", ev.DaysUntil)
	}
	wantDue := time.Date(2024, time.January, 15, 15, 0, 0, 0, time.UTC)
	if !ev.DueDate.Equal(wantDue) {
		t.Errorf("after watering: dueDate = %v, want %v", ev.DueDate, wantDue)
	}
}

func TestIsThirstyIsHealthyDisjoint(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	for daysAgo := 0; daysAgo <= 14; daysAgo++ {
		p := plantWateredAt(now.AddDate(0, 0, -daysAgo), 7)
		thirsty := IsThirsty(p, now)
		healthy := IsHealthy(p, now)
		if thirsty == healthy {
			t.Errorf("watered %d days ago: thirsty=%v healthy=%v, want exactly one", daysAgo, thirsty, healthy)
		}
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	cases := map[State]string{
		Overdue:  "overdue",
		DueToday: "due_today",
		Upcoming: "upcoming",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
