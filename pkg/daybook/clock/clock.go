// Package clock provides the calendar-day source used by streak and trend
// calculations, kept behind an interface so tests can pin "today".
package clock

import (
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
)

// Clock supplies the current calendar day.
type Clock interface {
	Today() time.Time
}

// System reads the wall clock.
type System struct{}

// Today returns the current day, normalized the same way entry dates are.
func (System) Today() time.Time {
	return models.Day(time.Now())
}

// Fixed always reports the same day. Useful in tests.
type Fixed struct {
	Day time.Time
}

func (f Fixed) Today() time.Time {
	return models.Day(f.Day)
}
