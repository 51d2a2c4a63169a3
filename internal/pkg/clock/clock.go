// Package clock abstracts wall time. Quote validity, request expiry and
// cancellation lead-day arithmetic all depend on "now", so use cases take a
// Clock instead of calling time.Now and tests pin the workflow to a fixed
// instant.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

// Now is always UTC; every timestamp the workflow stores is UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock reports a caller-controlled instant. Not safe for concurrent
// mutation; set it up before the code under test runs.
type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
