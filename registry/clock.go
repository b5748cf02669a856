package registry

import "time"

// Clock supplies the current time for phase gating. It is injected so tests
// can advance virtual time deterministically instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
