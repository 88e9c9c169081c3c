package clock

import "time"

// Clock abstracts time.Now so transition timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock hands out a fixed instant that tests advance explicitly.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time { return c.now }

// Set pins the clock to t.
func (c *MockClock) Set(t time.Time) { c.now = t }

// Add moves the clock forward by d.
func (c *MockClock) Add(d time.Duration) { c.now = c.now.Add(d) }
