package service_test

import (
	"testing"
	"time"

	"github.com/Totenem/Time-Tracker-App/internal/track/service"
)

func TestWeekBounds(t *testing.T) {
	testCases := []struct {
		name      string
		reference time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday mid week",
			reference: time.Date(2025, time.March, 12, 15, 30, 45, 0, time.Local),
			wantStart: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.March, 16, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "monday maps to itself",
			reference: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
			wantStart: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.March, 16, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "sunday belongs to the preceding monday",
			reference: time.Date(2025, time.March, 16, 23, 59, 59, 0, time.Local),
			wantStart: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.March, 16, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "week spanning a month boundary",
			reference: time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local),
			wantStart: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, time.April, 6, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := service.WeekBounds(tc.reference)
			if !start.Equal(tc.wantStart) {
				t.Errorf("start: expected %v, got %v", tc.wantStart, start)
			}
			if !end.Equal(tc.wantEnd) {
				t.Errorf("end: expected %v, got %v", tc.wantEnd, end)
			}
			if start.Weekday() != time.Monday {
				t.Errorf("week must start on Monday, got %v", start.Weekday())
			}
			if end.Weekday() != time.Sunday {
				t.Errorf("week must end on Sunday, got %v", end.Weekday())
			}
		})
	}
}
