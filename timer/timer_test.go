package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedule_OneShot(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	fired := make(chan struct{})
	m.Schedule(10*time.Millisecond, 0, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("One-shot task never fired")
	}
}

func TestSchedule_Repeating(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var count int64
	id := m.Schedule(10*time.Millisecond, 20*time.Millisecond, func() {
		atomic.AddInt64(&count, 1)
	})

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt64(&count) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("Repeating task fired only %d times", atomic.LoadInt64(&count))
		}
		time.Sleep(5 * time.Millisecond)
	}
	m.Cancel(id)
}

func TestCancel(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int64
	id := m.Schedule(200*time.Millisecond, 0, func() {
		atomic.AddInt64(&fired, 1)
	})
	m.Cancel(id)

	time.Sleep(400 * time.Millisecond)
	if atomic.LoadInt64(&fired) != 0 {
		t.Error("Cancelled task should not fire")
	}
}
