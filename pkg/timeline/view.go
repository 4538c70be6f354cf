package timeline

import (
	"iter"
	"time"
)

// View is a read-only projection of a Timeline. The zero View is empty.
// A View never mutates its Timeline and any number of views may coexist.
type View struct {
	tl     *Timeline
	author string
	// idx lists timeline positions; nil together with full means identity.
	idx  []int
	full bool
}

// Author returns the author the view is filtered to, or Overall.
func (v View) Author() string {
	if v.author == "" {
		return Overall
	}
	return v.author
}

// IsOverall reports whether the view is unfiltered by author.
func (v View) IsOverall() bool {
	return v.Author() == Overall
}

// Timeline returns the timeline the view reads from.
func (v View) Timeline() *Timeline {
	return v.tl
}

func (v View) identity() bool {
	return v.idx == nil && !v.full && v.author == Overall
}

// Len returns the number of events in the view.
func (v View) Len() int {
	if v.tl == nil {
		return 0
	}
	if v.identity() {
		return v.tl.Len()
	}
	return len(v.idx)
}

// At returns the i-th event of the view.
func (v View) At(i int) Event {
	if v.identity() {
		return v.tl.At(i)
	}
	return v.tl.At(v.idx[i])
}

// Events iterates over the view's events in timeline order.
func (v View) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := v.Len()
		for i := 0; i < n; i++ {
			if !yield(v.At(i)) {
				return
			}
		}
	}
}

// Filter restricts the view to author. Filtering is idempotent: Overall
// returns the view unchanged and filtering an author view to the same author
// returns it unchanged.
func (v View) Filter(author string) View {
	if author == Overall || author == "" || author == v.author {
		return v
	}
	out := View{tl: v.tl, author: author, idx: make([]int, 0), full: true}
	n := v.Len()
	for i := 0; i < n; i++ {
		e := v.At(i)
		if e.Author == author {
			out.idx = append(out.idx, e.Seq)
		}
	}
	return out
}

// Participants drops notification rows, keeping the view's author label.
func (v View) Participants() View {
	out := View{tl: v.tl, author: v.Author(), idx: make([]int, 0, v.Len()), full: true}
	n := v.Len()
	for i := 0; i < n; i++ {
		e := v.At(i)
		if !e.IsNotification() {
			out.idx = append(out.idx, e.Seq)
		}
	}
	return out
}

// Span returns the first and last timestamps of the view.
func (v View) Span() (first, last time.Time, ok bool) {
	n := v.Len()
	if n == 0 {
		return time.Time{}, time.Time{}, false
	}
	return v.At(0).Timestamp, v.At(n - 1).Timestamp, true
}

// Slice returns a copy of the view's events.
func (v View) Slice() []Event {
	out := make([]Event, 0, v.Len())
	for e := range v.Events() {
		out = append(out, e)
	}
	return out
}
