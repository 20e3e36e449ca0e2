package reactive

import (
	"sync"
	"testing"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if got := s.Get(); got != 1 {
		t.Errorf("Get() = %d, want 1", got)
	}
	s.Set(2)
	if got := s.Get(); got != 2 {
		t.Errorf("Get() = %d, want 2", got)
	}
}

func TestSubscribeDeliversCurrentImmediately(t *testing.T) {
	s := NewSignal("hello")
	var got []string
	unsub := s.Subscribe(func(v string) {
		got = append(got, v)
	})
	defer unsub()

	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("immediate delivery = %v, want [hello]", got)
	}

	s.Set("world")
	if len(got) != 2 || got[1] != "world" {
		t.Errorf("after Set, got = %v, want [hello world]", got)
	}
}

func TestSetUnchangedDoesNotNotify(t *testing.T) {
	s := NewSignal(7)
	count := 0
	unsub := s.Subscribe(func(int) { count++ })
	defer unsub()

	s.Set(7)
	if count != 1 {
		t.Errorf("notifications = %d, want only the immediate one", count)
	}
}

func TestUpdate(t *testing.T) {
	s := NewSignal(10)
	s.Update(func(v int) int { return v + 5 })
	if got := s.Get(); got != 15 {
		t.Errorf("Get() = %d, want 15", got)
	}

	// Returning the current value unchanged must not notify.
	count := 0
	unsub := s.Subscribe(func(int) { count++ })
	defer unsub()
	s.Update(func(v int) int { return v })
	if count != 1 {
		t.Errorf("notifications = %d, want only the immediate one", count)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := NewSignal(0)
	count := 0
	unsub := s.Subscribe(func(int) { count++ })
	unsub()

	s.Set(1)
	if count != 1 {
		t.Errorf("notifications after unsubscribe = %d, want 1", count)
	}
}

func TestWithEquals(t *testing.T) {
	// Treat all even values as equal to suppress redundant updates.
	s := NewSignal(2).WithEquals(func(a, b int) bool {
		return a%2 == 0 && b%2 == 0
	})
	count := 0
	unsub := s.Subscribe(func(int) { count++ })
	defer unsub()

	s.Set(4)
	if count != 1 {
		t.Errorf("even-to-even Set notified, count = %d", count)
	}
	s.Set(3)
	if count != 2 {
		t.Errorf("even-to-odd Set did not notify, count = %d", count)
	}
}

func TestConcurrentSetters(t *testing.T) {
	s := NewSignal(0)
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Set(v)
		}(i)
	}
	wg.Wait()

	got := s.Get()
	if got < 1 || got > 50 {
		t.Errorf("Get() = %d, want one of the written values", got)
	}
}

func TestSubscriberMayUnsubscribeDuringNotify(t *testing.T) {
	s := NewSignal(0)
	var unsub func()
	calls := 0
	unsub = s.Subscribe(func(v int) {
		calls++
		if v == 1 {
			unsub()
		}
	})

	s.Set(1)
	s.Set(2)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (immediate + first Set)", calls)
	}
}
