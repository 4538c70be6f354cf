package temporal

import (
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// UserActivity is an author's message count and share of all messages.
type UserActivity struct {
	Author   string  `json:"user"`
	Messages int     `json:"message_count"`
	Percent  float64 `json:"percent"`
}

// MostActiveUsers ranks authors by message count, ties in first-seen order.
func MostActiveUsers(v timeline.View, topN int) []UserActivity {
	authors := make([]string, 0, v.Len())
	for e := range v.Participants().Events() {
		authors = append(authors, e.Author)
	}
	ranked := rank(authors, topN)
	out := make([]UserActivity, len(ranked))
	for i, r := range ranked {
		out[i] = UserActivity{
			Author:   r.Word,
			Messages: r.Count,
			Percent:  stats.Round(float64(r.Count)/float64(len(authors))*100, 2),
		}
	}
	return out
}
