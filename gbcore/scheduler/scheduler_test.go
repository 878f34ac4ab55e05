package scheduler

import "testing"

func TestEventsFireInTimestampOrder(t *testing.T) {
	s := New()
	var order []string

	s.Add(12, func(any) { order = append(order, "third") }, nil)
	s.Add(4, func(any) { order = append(order, "first") }, nil)
	s.Add(8, func(any) { order = append(order, "second") }, nil)

	for i := 0; i < 3; i++ {
		s.Step()
	}

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestEqualTimestampsFireFIFO(t *testing.T) {
	s := New()
	var order []string

	s.Add(4, func(any) { order = append(order, "a") }, nil)
	s.Add(4, func(any) { order = append(order, "b") }, nil)
	s.Add(4, func(any) { order = append(order, "c") }, nil)

	s.Step()

	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestDeleteCancelsPendingEvent(t *testing.T) {
	s := New()
	fired := false
	h, _ := s.Add(4, func(any) { fired = true }, nil)

	s.Delete(h)
	s.Step()

	if fired {
		t.Fatal("deleted event fired")
	}
	if s.EventCount() != 0 {
		t.Fatalf("expected 0 pending events, got %d", s.EventCount())
	}
}

func TestDeleteIsNoopForAlreadyFiredHandle(t *testing.T) {
	s := New()
	h, _ := s.Add(4, func(any) {}, nil)
	s.Step()

	// Deleting the fired handle, whose slot is free again, should not panic.
	s.Delete(h)
}

func TestReentrantAddDoesNotFireWithinSameStep(t *testing.T) {
	s := New()
	var fired int

	var reenter Callback
	reenter = func(any) {
		fired++
		if fired == 1 {
			// delay 0 means "due right now" by timestamp, but must not
			// fire until a later Step call.
			s.Add(0, reenter, nil)
		}
	}
	s.Add(4, reenter, nil)

	s.Step()
	if fired != 1 {
		t.Fatalf("expected exactly 1 fire in the triggering Step, got %d", fired)
	}

	s.Step()
	if fired != 2 {
		t.Fatalf("expected the reentrant event to fire on the next Step, got %d fires", fired)
	}
}

func TestAddReturnsErrorWhenFull(t *testing.T) {
	s := New()
	for i := 0; i < MaxEvents; i++ {
		if _, err := s.Add(100, func(any) {}, nil); err != nil {
			t.Fatalf("unexpected error scheduling event %d: %v", i, err)
		}
	}

	if _, err := s.Add(100, func(any) {}, nil); err != ErrSchedulerFull {
		t.Fatalf("expected ErrSchedulerFull, got %v", err)
	}
}

func TestStepAdvancesByExactlyFourTicks(t *testing.T) {
	s := New()
	before := s.CurrentTS()
	s.Step()
	if s.CurrentTS()-before != 4 {
		t.Fatalf("expected CurrentTS to advance by 4, advanced by %d", s.CurrentTS()-before)
	}
}

func TestUserDataIsPassedThrough(t *testing.T) {
	s := New()
	var got any
	s.Add(4, func(u any) { got = u }, "payload")
	s.Step()

	if got != "payload" {
		t.Fatalf("got %v, want %q", got, "payload")
	}
}
