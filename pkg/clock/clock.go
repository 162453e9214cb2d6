package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock implements the Clock interface using the system clock
type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
