package baseline

import "time"

// ExpandCalendar builds the forecast date range from an anchor delivery
// date: every date strictly after the anchor through the last day of the
// anchor's month, empty when the anchor is already the last day. With
// includeNextMonth set it continues through the whole following month,
// handling the December rollover.
//
// Each emitted date is tagged with its weekday (Monday=0..Sunday=6) for
// the downstream join against per-weekday baseline rows.
func ExpandCalendar(anchor time.Time, includeNextMonth bool) []CalendarDay {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	var days []CalendarDay

	// Walk forward while the next date stays inside the anchor's month.
	for day.Month() == day.AddDate(0, 0, 1).Month() {
		day = day.AddDate(0, 0, 1)
		days = append(days, calendarDay(day))
	}

	if includeNextMonth {
		year, month := day.Year(), int(day.Month())
		year += month / 12
		month = month%12 + 1
		day = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

		for day.Month() == day.AddDate(0, 0, 1).Month() {
			days = append(days, calendarDay(day))
			day = day.AddDate(0, 0, 1)
		}
		// The loop condition excludes the month's last day.
		days = append(days, calendarDay(day))
	}
	return days
}

func calendarDay(d time.Time) CalendarDay {
	return CalendarDay{Date: d, Weekday: Weekday(d)}
}
