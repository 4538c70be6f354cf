// Package temporal computes message counts, bucketed activity and the
// "busiest" reductions over a timeline view. Notification rows are excluded
// from every result.
package temporal

import (
	"regexp"
	"strings"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

var linkRegex = regexp.MustCompile(`https?://\S+|www\.\S+`)

// BasicStats are the headline counts for a view.
type BasicStats struct {
	Messages int `json:"total_messages"`
	Words    int `json:"total_words"`
	Media    int `json:"total_media"`
}

// Basic counts messages, whitespace-separated words and media placeholders.
func Basic(v timeline.View) BasicStats {
	var s BasicStats
	for e := range v.Participants().Events() {
		s.Messages++
		s.Words += len(strings.Fields(e.Text))
		if e.IsMedia() {
			s.Media++
		}
	}
	return s
}

// LinkCount counts URL matches; a message with two links counts two.
func LinkCount(v timeline.View) int {
	n := 0
	for e := range v.Participants().Events() {
		n += CountLinks(e.Text)
	}
	return n
}

// CountLinks counts URL matches in text.
func CountLinks(text string) int {
	return len(linkRegex.FindAllStringIndex(text, -1))
}

// contentEvents are the non-notification, non-media events of v.
func contentEvents(v timeline.View) []timeline.Event {
	out := make([]timeline.Event, 0, v.Len())
	for e := range v.Participants().Events() {
		if !e.IsMedia() {
			out = append(out, e)
		}
	}
	return out
}
