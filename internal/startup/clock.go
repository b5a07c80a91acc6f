// SPDX-License-Identifier: MPL-2.0

package startup

import "time"

type (
	// Clock is the time source of a run. The header's start time comes from
	// it, so tests can substitute a fixed clock.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	// RealClock reads the system time.
	RealClock struct{}
)

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }
