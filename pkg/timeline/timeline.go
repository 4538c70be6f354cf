package timeline

import (
	"iter"
	"sort"
	"time"
)

// Timeline is an immutable sequence of events sorted by timestamp,
// stable on ties (original transcript order).
type Timeline struct {
	events []Event
}

// New copies events, sorts the copy by timestamp and renumbers Seq so that
// Seq equals the event's position in the timeline.
func New(events []Event) *Timeline {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	for i := range sorted {
		sorted[i].Seq = i
	}
	return &Timeline{events: sorted}
}

// Len returns the number of events.
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

// At returns the event at position i.
func (t *Timeline) At(i int) Event {
	return t.events[i]
}

// Empty reports whether the timeline has no events.
func (t *Timeline) Empty() bool {
	return t.Len() == 0
}

// All returns the identity view.
func (t *Timeline) All() View {
	return View{tl: t, author: Overall}
}

// Filter returns the view restricted to author, or the identity view for Overall.
func (t *Timeline) Filter(author string) View {
	return t.All().Filter(author)
}

// Authors returns the distinct non-notification authors, sorted.
func (t *Timeline) Authors() []string {
	seen := make(map[string]bool)
	authors := make([]string, 0)
	for i := 0; i < t.Len(); i++ {
		a := t.events[i].Author
		if a == NotificationAuthor || seen[a] {
			continue
		}
		seen[a] = true
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}

// Users returns Overall followed by the sorted authors.
func (t *Timeline) Users() []string {
	return append([]string{Overall}, t.Authors()...)
}

// HasAuthor reports whether author wrote at least one event.
func (t *Timeline) HasAuthor(author string) bool {
	for i := 0; i < t.Len(); i++ {
		if t.events[i].Author == author {
			return true
		}
	}
	return false
}

// Events iterates over every event in order.
func (t *Timeline) Events() iter.Seq[Event] {
	return t.All().Events()
}

// Span returns the first and last timestamps.
func (t *Timeline) Span() (first, last time.Time, ok bool) {
	return t.All().Span()
}
