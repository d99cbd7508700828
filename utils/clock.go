package utils

import "time"

// Clock supplies "now" so services stay testable. All callers get UTC
// instants; conversion to a display timezone happens client-side only.
type Clock interface {
	Now() time.Time
}

type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
