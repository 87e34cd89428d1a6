package usecase

import (
	"testing"
	"time"

	"medibook/internal/domain/entity"
)

func TestWithinAvailability(t *testing.T) {
	// 2026-03-16 is a Monday.
	monday := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	entries := []entity.DoctorAvailability{
		{Day: "Monday", StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{Day: "Tuesday", StartTime: "09:00", EndTime: "12:00", IsAvailable: false},
	}

	tests := []struct {
		name      string
		date      time.Time
		timeOfDay string
		want      bool
	}{
		{"inside window", monday, "10:30", true},
		{"at opening time", monday, "09:00", true},
		{"just before close", monday, "16:59", true},
		{"at closing time is rejected", monday, "17:00", false},
		{"before opening", monday, "08:59", false},
		{"day without template", sunday, "10:00", false},
		{"unavailable day", time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinAvailability(entries, tt.date, tt.timeOfDay); got != tt.want {
				t.Errorf("withinAvailability(%s, %s) = %v, want %v", tt.date.Weekday(), tt.timeOfDay, got, tt.want)
			}
		})
	}
}
