package temporal

import "github.com/otherjamesbrown/chatpulse/pkg/timeline"

// Busiest returns the first bucket holding the maximum count. Ties keep the
// earliest bucket in the series' own order. It reports false when no bucket
// has a positive count.
func Busiest(series []Bucket) (Bucket, bool) {
	best := -1
	for i, b := range series {
		if b.MessageCount > 0 && (best < 0 || b.MessageCount > series[best].MessageCount) {
			best = i
		}
	}
	if best < 0 {
		return Bucket{}, false
	}
	return series[best], true
}

// BusyDay is the calendar date with the most messages.
func BusyDay(v timeline.View) (Bucket, bool) {
	return Busiest(Daily(v))
}

// BusyWeekday is the weekday with the most messages.
func BusyWeekday(v timeline.View) (Bucket, bool) {
	return Busiest(Weekly(v))
}

// BusyMonth is the month name with the most messages.
func BusyMonth(v timeline.View) (Bucket, bool) {
	return Busiest(Monthly(v))
}

// BusyHour is the hour of day with the most messages.
func BusyHour(v timeline.View) (Bucket, bool) {
	return Busiest(Hourly(v))
}
