package service

import "time"

// WeekBounds returns the Monday and Sunday of the calendar week containing
// the reference instant, in the server's local time zone. Both bounds are
// dates (midnight, no time component) for use as an inclusive range.
func WeekBounds(reference time.Time) (time.Time, time.Time) {
	local := reference.Local()
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

	// time.Weekday numbers Sunday 0; shift so Monday is offset 0.
	offset := (int(date.Weekday()) + 6) % 7

	start := date.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}
