package clock

import "time"

// Clock abstracts "today" so calendar lookups stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// At returns a Fixed clock pinned to the given instant.
func At(t time.Time) Fixed {
	return Fixed{Instant: t}
}
