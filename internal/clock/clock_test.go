package clock

import (
	"testing"
	"time"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time           { return f.t }
func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClock(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewWithSource(ft.now)

	if got := c.Elapsed(); got != 0 {
		t.Fatalf("Elapsed at start = %g, want 0", got)
	}
	ft.advance(1500 * time.Millisecond)
	if got := c.Elapsed(); got != 1.5 {
		t.Fatalf("Elapsed = %g, want 1.5", got)
	}

	c.Toggle()
	ft.advance(10 * time.Second)
	if got := c.Elapsed(); got != 1.5 {
		t.Errorf("Elapsed while paused = %g, want 1.5", got)
	}
	if !c.Paused() {
		t.Error("Paused() = false after Toggle")
	}

	c.Toggle()
	ft.advance(500 * time.Millisecond)
	if got := c.Elapsed(); got != 2 {
		t.Errorf("Elapsed after resume = %g, want 2", got)
	}

	c.Reset()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Reset = %g, want 0", got)
	}
	ft.advance(time.Second)
	if got := c.Elapsed(); got != 1 {
		t.Errorf("Elapsed = %g, want 1", got)
	}
}

func TestClockMonotonic(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewWithSource(ft.now)
	prev := c.Elapsed()
	for i := 0; i < 100; i++ {
		ft.advance(time.Duration(i%7) * time.Millisecond)
		if i%13 == 0 {
			c.Toggle()
		}
		cur := c.Elapsed()
		if cur < prev {
			t.Fatalf("step %d: Elapsed went back from %g to %g", i, prev, cur)
		}
		prev = cur
	}
}
