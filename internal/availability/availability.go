// Package availability computes whether a restaurant should be open from its
// weekly opening hours and holiday list.
package availability

import (
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

const clockLayout = "15:04"

// ComputeStatus evaluates the schedule at now. Times are compared as
// zero-padded HH:MM strings, so a window must not cross midnight.
func ComputeStatus(hours []domain.OpeningHours, holidays []time.Time, now time.Time) domain.AvailabilityStatus {
	currentDay := now.Weekday().String()
	currentTime := now.Format(clockLayout)
	today := dateOf(now)

	var status domain.AvailabilityStatus

	for _, h := range holidays {
		d := holidayDate(h)
		if d.Equal(today) {
			status.IsHoliday = true
		}
		if d.After(today) && (status.NextHoliday == nil || d.Before(*status.NextHoliday)) {
			next := d
			status.NextHoliday = &next
		}
	}

	for i := range hours {
		if hours[i].Day == currentDay {
			h := hours[i]
			status.TodayHours = &h
			break
		}
	}

	status.ShouldBeOpen = status.TodayHours != nil &&
		!status.TodayHours.IsClosed &&
		!status.IsHoliday &&
		currentTime >= status.TodayHours.Open &&
		currentTime <= status.TodayHours.Close

	return status
}

// OpenCheck combines the schedule with the staff-controlled flag.
func OpenCheck(status domain.AvailabilityStatus, isOpenNow bool) domain.OpenCheck {
	return domain.OpenCheck{
		IsOpen:         status.ShouldBeOpen && isOpenNow,
		ShouldBeOpen:   status.ShouldBeOpen,
		IsOpenNow:      isOpenNow,
		ManualOverride: isOpenNow != status.ShouldBeOpen,
	}
}

// dateOf truncates t to its calendar date in t's own location, expressed as
// UTC midnight so it compares with stored holiday dates.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// holidayDate takes the stored calendar date; holidays are persisted as UTC
// midnight.
func holidayDate(t time.Time) time.Time {
	return dateOf(t.UTC())
}
