package calendar

import "time"

// MonthGrid returns the days of month's month for a Sunday-first grid. The
// leading nil entries pad the first week.
func MonthGrid(month time.Time) []*time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	days := first.AddDate(0, 1, -1).Day()

	grid := make([]*time.Time, 0, int(first.Weekday())+days)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, nil)
	}
	for d := 1; d <= days; d++ {
		day := first.AddDate(0, 0, d-1)
		grid = append(grid, &day)
	}
	return grid
}

// WeekDays returns Sunday through Saturday of the week containing date.
func WeekDays(date time.Time) []time.Time {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
