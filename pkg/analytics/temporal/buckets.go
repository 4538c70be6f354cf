package temporal

import (
	"sort"
	"strconv"
	"time"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Bucket is one row of a bucketed activity series.
type Bucket struct {
	Bucket       string `json:"bucket"`
	MessageCount int    `json:"message_count"`
}

// Weekdays is the display order of the weekly series.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) buckets(keys []string) []Bucket {
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Bucket: k, MessageCount: c.counts[k]})
	}
	return out
}

func (c *counter) sorted() []Bucket {
	keys := append([]string(nil), c.order...)
	sort.Strings(keys)
	return c.buckets(keys)
}

// Daily counts messages per calendar date, oldest first.
func Daily(v timeline.View) []Bucket {
	c := newCounter()
	for e := range v.Participants().Events() {
		c.add(e.DateKey())
	}
	return c.sorted()
}

// Hourly counts messages per hour of day for the hours that occur.
func Hourly(v timeline.View) []Bucket {
	var counts [24]int
	for e := range v.Participants().Events() {
		counts[e.Hour]++
	}
	out := make([]Bucket, 0, 24)
	for h, n := range counts {
		if n > 0 {
			out = append(out, Bucket{Bucket: strconv.Itoa(h), MessageCount: n})
		}
	}
	return out
}

// Weekly counts messages per weekday. It always returns seven rows,
// Monday first, with absent days zero-filled.
func Weekly(v timeline.View) []Bucket {
	c := newCounter()
	for e := range v.Participants().Events() {
		c.add(e.Weekday)
	}
	return c.buckets(Weekdays)
}

// Monthly counts messages per month name, ordered by month number. Months
// from different years share a row.
func Monthly(v timeline.View) []Bucket {
	var counts [13]int
	for e := range v.Participants().Events() {
		counts[e.MonthNum]++
	}
	out := make([]Bucket, 0, 12)
	for m := 1; m <= 12; m++ {
		if counts[m] > 0 {
			out = append(out, Bucket{Bucket: time.Month(m).String(), MessageCount: counts[m]})
		}
	}
	return out
}

// Quarterly counts messages per year-quarter label ("2024Q1"), sorted.
func Quarterly(v timeline.View) []Bucket {
	c := newCounter()
	for e := range v.Participants().Events() {
		c.add(e.Quarter())
	}
	return c.sorted()
}

// Yearly counts messages per year, ascending.
func Yearly(v timeline.View) []Bucket {
	counts := make(map[int]int)
	years := make([]int, 0)
	for e := range v.Participants().Events() {
		if _, ok := counts[e.Year]; !ok {
			years = append(years, e.Year)
		}
		counts[e.Year]++
	}
	sort.Ints(years)
	out := make([]Bucket, 0, len(years))
	for _, y := range years {
		out = append(out, Bucket{Bucket: strconv.Itoa(y), MessageCount: counts[y]})
	}
	return out
}

// Heatmap counts messages per weekday (Monday first) and hour.
func Heatmap(v timeline.View) [7][24]int {
	var grid [7][24]int
	for e := range v.Participants().Events() {
		// time.Weekday starts on Sunday.
		d := (int(e.Timestamp.Weekday()) + 6) % 7
		grid[d][e.Hour]++
	}
	return grid
}
