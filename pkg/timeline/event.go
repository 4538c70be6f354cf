// Package timeline holds the canonical, time-ordered event stream of a chat
// transcript and the read-only per-author views every analytic consumes.
package timeline

import (
	"strconv"
	"time"
)

const (
	// NotificationAuthor is the author of system lines (joins, leaves,
	// encryption notices) that carry no "name: " prefix.
	NotificationAuthor = "group_notification"

	// Overall selects the identity view of a timeline.
	Overall = "Overall"

	// MediaPlaceholder is the text an export writes in place of an attachment.
	MediaPlaceholder = "<Media omitted>"

	// DateLayout formats the calendar date of an event.
	DateLayout = "2006-01-02"
)

// Event is one transcript message with its derived calendar fields.
type Event struct {
	Seq       int       `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Year      int       `json:"year"`
	Month     string    `json:"month"`
	MonthNum  int       `json:"month_num"`
	Day       int       `json:"day"`
	Weekday   string    `json:"weekday_name"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
}

// NewEvent builds an Event and derives its calendar fields from ts.
// An empty author is replaced with NotificationAuthor.
func NewEvent(ts time.Time, author, text string) Event {
	if author == "" {
		author = NotificationAuthor
	}
	return Event{
		Timestamp: ts,
		Author:    author,
		Text:      text,
		Year:      ts.Year(),
		Month:     ts.Month().String(),
		MonthNum:  int(ts.Month()),
		Day:       ts.Day(),
		Weekday:   ts.Weekday().String(),
		Hour:      ts.Hour(),
		Minute:    ts.Minute(),
	}
}

// IsNotification reports whether the event is a system line.
func (e Event) IsNotification() bool {
	return e.Author == NotificationAuthor
}

// IsMedia reports whether the event is an attachment placeholder.
func (e Event) IsMedia() bool {
	return e.Text == MediaPlaceholder
}

// DateKey returns the event's calendar date as YYYY-MM-DD.
func (e Event) DateKey() string {
	return e.Timestamp.Format(DateLayout)
}

// Date returns midnight of the event's calendar date in its own location.
func (e Event) Date() time.Time {
	y, m, d := e.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Timestamp.Location())
}

// Quarter returns the year-quarter label, e.g. "2024Q1".
func (e Event) Quarter() string {
	q := (e.MonthNum-1)/3 + 1
	return strconv.Itoa(e.Year) + "Q" + strconv.Itoa(q)
}
