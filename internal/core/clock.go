package core

import "time"

// Nower supplies the current time. Expiry checks read it instead of the
// wall clock so tests can pin "today".
type Nower interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns T.
func (c FixedClock) Now() time.Time { return c.T }
