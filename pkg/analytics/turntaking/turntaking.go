// Package turntaking scans adjacent messages for responses and the first
// message of each day. The scan runs once over the whole timeline and is
// projected per author afterwards.
package turntaking

import (
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Analysis is the result of one adjacency scan. It is read-only once built.
type Analysis struct {
	latencySum map[string]float64
	responses  map[string]int
	initiators map[string]int
	// dayInitiator maps a calendar date to its first author.
	dayInitiator map[string]string
	dates        []string
	// order lists authors in first-seen order.
	order []string
	rows  int
}

// Analyze scans the non-notification rows of tl in timeline order. A row whose
// author differs from the previous row's is a response by that author, with
// latency equal to the gap in minutes.
func Analyze(tl *timeline.Timeline) *Analysis {
	a := &Analysis{
		latencySum:   make(map[string]float64),
		responses:    make(map[string]int),
		initiators:   make(map[string]int),
		dayInitiator: make(map[string]string),
	}
	if tl == nil {
		return a
	}

	seen := make(map[string]bool)
	var prev *timeline.Event
	for e := range tl.All().Participants().Events() {
		a.rows++
		if !seen[e.Author] {
			seen[e.Author] = true
			a.order = append(a.order, e.Author)
		}

		day := e.DateKey()
		if _, ok := a.dayInitiator[day]; !ok {
			a.dayInitiator[day] = e.Author
			a.dates = append(a.dates, day)
			a.initiators[e.Author]++
		}

		if prev != nil && prev.Author != e.Author {
			a.responses[e.Author]++
			a.latencySum[e.Author] += e.Timestamp.Sub(prev.Timestamp).Minutes()
		}
		ev := e
		prev = &ev
	}
	return a
}

// Authors returns the authors seen by the scan, in first-seen order.
func (a *Analysis) Authors() []string {
	return append([]string(nil), a.order...)
}

// Rows is the number of non-notification rows scanned.
func (a *Analysis) Rows() int {
	return a.rows
}

// MeanLatency returns mean response latency in minutes per responder. For
// Overall it returns every responder; for an author it returns at most that
// author. Fewer than two rows, or no author changes, yield an empty map.
func (a *Analysis) MeanLatency(author string) map[string]float64 {
	out := make(map[string]float64)
	for who, n := range a.responses {
		if n == 0 || !matches(author, who) {
			continue
		}
		out[who] = a.latencySum[who] / float64(n)
	}
	return out
}

// Latency returns one author's mean response latency.
func (a *Analysis) Latency(author string) (float64, bool) {
	n := a.responses[author]
	if n == 0 {
		return 0, false
	}
	return a.latencySum[author] / float64(n), true
}

// Responses returns response counts, projected like MeanLatency.
func (a *Analysis) Responses(author string) map[string]int {
	return project(a.responses, author)
}

// Initiations returns initiated-day counts, projected like MeanLatency.
func (a *Analysis) Initiations(author string) map[string]int {
	return project(a.initiators, author)
}

// Initiator returns the first author of a calendar date (YYYY-MM-DD).
func (a *Analysis) Initiator(date string) (string, bool) {
	who, ok := a.dayInitiator[date]
	return who, ok
}

// Dates returns the calendar dates scanned, oldest first.
func (a *Analysis) Dates() []string {
	return append([]string(nil), a.dates...)
}

func project(m map[string]int, author string) map[string]int {
	out := make(map[string]int)
	for who, n := range m {
		if n > 0 && matches(author, who) {
			out[who] = n
		}
	}
	return out
}

func matches(author, who string) bool {
	return author == timeline.Overall || author == "" || author == who
}
