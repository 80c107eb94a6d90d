package dispatch

import (
	"sync"
	"testing"
	"time"
)

func TestRing_PushPop(t *testing.T) {
	r := NewRing[int](2)

	for i := 1; i <= 5; i++ {
		if !r.Push(i) {
			t.Fatalf("Push(%d) returned false", i)
		}
	}
	if got := r.Len(); got != 5 {
		t.Errorf("Len = %d, want 5", got)
	}

	// Order survives growth.
	for i := 1; i <= 5; i++ {
		got, ok := r.Pop()
		if !ok {
			t.Fatalf("Pop %d: closed early", i)
		}
		if got != i {
			t.Errorf("Pop = %d, want %d", got, i)
		}
	}
}

func TestRing_TryPopEmpty(t *testing.T) {
	r := NewRing[string](4)

	if _, ok := r.TryPop(); ok {
		t.Error("TryPop on empty ring returned ok")
	}
}

func TestRing_Drain(t *testing.T) {
	r := NewRing[int](4)
	r.Push(1)
	r.Push(2)
	r.Push(3)

	got := r.Drain()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Drain = %v, want [1 2 3]", got)
	}
	if r.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", r.Len())
	}
}

func TestRing_Close(t *testing.T) {
	r := NewRing[int](4)
	r.Push(1)
	r.Close()

	if r.Push(2) {
		t.Error("Push after Close returned true")
	}

	got, ok := r.Pop()
	if !ok || got != 1 {
		t.Errorf("Pop = %d,%v, want 1,true", got, ok)
	}
	if _, ok := r.Pop(); ok {
		t.Error("Pop on closed empty ring returned ok")
	}
}

func TestRing_BlockingPop(t *testing.T) {
	r := NewRing[int](4)

	var wg sync.WaitGroup
	wg.Add(1)
	result := make(chan int, 1)
	go func() {
		defer wg.Done()
		got, ok := r.Pop()
		if ok {
			result <- got
		}
	}()

	time.Sleep(20 * time.Millisecond)
	r.Push(42)
	wg.Wait()

	select {
	case got := <-result:
		if got != 42 {
			t.Errorf("Pop = %d, want 42", got)
		}
	default:
		t.Error("blocked Pop never received the pushed item")
	}
}

func TestRing_WrapAroundGrowth(t *testing.T) {
	r := NewRing[int](3)

	// Advance head so growth has to copy a wrapped buffer.
	r.Push(1)
	r.Push(2)
	r.Pop()
	r.Pop()
	for i := 3; i <= 8; i++ {
		r.Push(i)
	}

	for i := 3; i <= 8; i++ {
		got, ok := r.Pop()
		if !ok || got != i {
			t.Fatalf("Pop = %d,%v, want %d,true", got, ok, i)
		}
	}
}
