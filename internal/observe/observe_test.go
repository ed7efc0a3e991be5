package observe

import (
	"sync"
	"testing"
)

func TestListAppendNotifies(t *testing.T) {
	l := NewList[string]()

	var got []string
	l.Subscribe(func(items []string) { got = append([]string(nil), items...) })

	l.Append("a")
	l.Append("b", "c")

	if len(got) != 3 {
		t.Fatalf("snapshot after mutations = %v, want 3 items", got)
	}
	if snap := l.Snapshot(); len(snap) != 3 || snap[0] != "a" {
		t.Errorf("Snapshot() = %v", snap)
	}
}

func TestListRemoveFunc(t *testing.T) {
	l := NewList[int]()
	l.Replace([]int{1, 2, 3, 4})

	notified := 0
	l.Subscribe(func([]int) { notified++ })

	if n := l.RemoveFunc(func(v int) bool { return v%2 == 0 }); n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	if snap := l.Snapshot(); len(snap) != 2 || snap[0] != 1 || snap[1] != 3 {
		t.Errorf("Snapshot() = %v, want [1 3]", snap)
	}
	if notified != 1 {
		t.Errorf("notifications = %d, want 1", notified)
	}

	// No match, no notification.
	if n := l.RemoveFunc(func(v int) bool { return v > 100 }); n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}
	if notified != 1 {
		t.Errorf("notifications = %d after no-op removal, want 1", notified)
	}
}

func TestListUnsubscribe(t *testing.T) {
	l := NewList[int]()
	calls := 0
	unsub := l.Subscribe(func([]int) { calls++ })
	l.Append(1)
	unsub()
	l.Append(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestListConcurrentAppend(t *testing.T) {
	l := NewList[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			l.Append(v)
		}(i)
	}
	wg.Wait()
	if n := l.Len(); n != 50 {
		t.Errorf("Len() = %d, want 50", n)
	}
}

func TestCell(t *testing.T) {
	c := NewCell(1)
	if c.Get() != 1 {
		t.Errorf("Get() = %d, want 1", c.Get())
	}

	var got int
	unsub := c.Subscribe(func(v int) { got = v })
	c.Set(7)
	if got != 7 || c.Get() != 7 {
		t.Errorf("after Set: got %d, Get() = %d, want 7", got, c.Get())
	}

	unsub()
	c.Set(9)
	if got != 7 {
		t.Errorf("listener ran after unsubscribe: got %d", got)
	}
}
