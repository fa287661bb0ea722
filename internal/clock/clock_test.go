package clock

import (
	"testing"
	"time"
)

func TestManualScript(t *testing.T) {
	c := NewManual(10*time.Millisecond, 0, 5*time.Millisecond)

	if d := c.Elapsed(); d != 10*time.Millisecond {
		t.Errorf("first Elapsed() = %v, expected 10ms", d)
	}
	if d := c.Elapsed(); d != 0 {
		t.Errorf("second Elapsed() = %v, expected 0", d)
	}
	if c.Remaining() != 1 {
		t.Errorf("Remaining() = %d, expected 1", c.Remaining())
	}
	if d := c.Elapsed(); d != 5*time.Millisecond {
		t.Errorf("third Elapsed() = %v, expected 5ms", d)
	}

	// Script exhausted: no time passes on its own
	if d := c.Elapsed(); d != 0 {
		t.Errorf("Elapsed() after script = %v, expected 0", d)
	}
	if c.Total() != 15*time.Millisecond {
		t.Errorf("Total() = %v, expected 15ms", c.Total())
	}
}

func TestManualAdvanceAndSleep(t *testing.T) {
	c := NewManual(time.Millisecond)

	c.Advance(3 * time.Millisecond)
	c.Sleep(2 * time.Millisecond)

	// Advanced and slept time are added to the scripted sample
	if d := c.Elapsed(); d != 6*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 6ms", d)
	}

	sleeps := c.Sleeps()
	if len(sleeps) != 1 || sleeps[0] != 2*time.Millisecond {
		t.Errorf("Sleeps() = %v, expected [2ms]", sleeps)
	}

	// Non-positive sleeps are recorded but pass no time
	c.Sleep(-time.Millisecond)
	if d := c.Elapsed(); d != 0 {
		t.Errorf("Elapsed() after negative sleep = %v, expected 0", d)
	}
}

func TestSystemElapsedNonNegative(t *testing.T) {
	c := NewSystem()
	for i := 0; i < 100; i++ {
		if d := c.Elapsed(); d < 0 {
			t.Fatalf("Elapsed() = %v, expected non-negative", d)
		}
	}
}
