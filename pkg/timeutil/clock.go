package timeutil

import "time"

// Clock abstracts the wall clock so components that reason about
// time (expiry checks, timestamps) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

var _ Clock = SystemClock{}
