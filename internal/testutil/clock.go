package testutil

import (
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// DateAt returns the UTC instant at hour on a YYYY-MM-DD date, panicking on a bad date.
func DateAt(date string, hour int) time.Time {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return day.Add(time.Duration(hour) * time.Hour)
}
