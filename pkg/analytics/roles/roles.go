// Package roles ranks authors into behavioural archetypes.
package roles

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/temporal"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/turntaking"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// DefaultTopN is how many authors each role lists.
const DefaultTopN = 3

// Metrics are the per-author inputs to role scoring.
type Metrics struct {
	Author     string  `json:"user"`
	Messages   int     `json:"msg_count"`
	AvgChars   float64 `json:"avg_chars"`
	AvgWords   float64 `json:"avg_words"`
	Starts     int     `json:"starts"`
	Responses  int     `json:"responses"`
	MediaLinks int     `json:"media_links"`
}

// ResponderScore rewards replies relative to initiations.
func (m Metrics) ResponderScore() float64 {
	return float64(m.Responses) / float64(max(1, m.Starts))
}

// ListenerScore is highest for low-volume, short-message authors.
func (m Metrics) ListenerScore() float64 {
	return -(float64(m.Messages) * m.AvgWords)
}

// Ranked is one author listed under a role.
type Ranked struct {
	Author string `json:"user"`
	Value  string `json:"value"`
}

// Assignment is a role's ranked authors and its static metadata.
type Assignment struct {
	Top         []Ranked `json:"top"`
	Description string   `json:"description"`
	Label       string   `json:"label"`
}

// rule describes one role: how authors are scored and how the listed value
// is formatted.
type rule struct {
	role        string
	label       string
	description string
	score       func(Metrics) float64
	format      func(Metrics) string
}

// Rules in output order.
var rules = []rule{
	{
		role:        "Initiator",
		label:       "Start Power",
		description: "Starts conversations frequently, setting the pace for everyone.",
		score:       func(m Metrics) float64 { return float64(m.Starts) },
		format:      func(m Metrics) string { return fmt.Sprintf("%d starts", m.Starts) },
	},
	{
		role:        "Responder",
		label:       "Reply Count",
		description: "Mostly replies and keeps the thread alive without initiating much.",
		score:       Metrics.ResponderScore,
		format:      func(m Metrics) string { return fmt.Sprintf("%d replies", m.Responses) },
	},
	{
		role:        "Driver",
		label:       "Total Activity",
		description: "The engine of the chat. Keeps conversation going with heavy engagement.",
		score:       func(m Metrics) float64 { return float64(m.Messages) },
		format:      func(m Metrics) string { return fmt.Sprintf("%d msgs", m.Messages) },
	},
	{
		role:        "Listener",
		label:       "Avg Length",
		description: "Quiet observer. Prefers short replies and low overall message volume.",
		score:       Metrics.ListenerScore,
		format:      func(m Metrics) string { return fmt.Sprintf("%.1f words", m.AvgWords) },
	},
	{
		role:        "Broadcaster",
		label:       "Shared Info",
		description: "Information hub. Shares long messages, interesting links, or media files.",
		score:       func(m Metrics) float64 { return float64(m.MediaLinks) },
		format:      func(m Metrics) string { return fmt.Sprintf("%d items", m.MediaLinks) },
	},
}

// textBroadcaster replaces Broadcaster when nobody shared media or links.
var textBroadcaster = rule{
	role:        "Broadcaster",
	label:       "Shared Info",
	description: "Information hub. Shares long messages, interesting links, or media files.",
	score:       func(m Metrics) float64 { return m.AvgWords },
	format:      func(m Metrics) string { return fmt.Sprintf("%.1f words", m.AvgWords) },
}

// Names lists the roles in output order.
func Names() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.role
	}
	return out
}

// Collect computes Metrics for every author of tl in first-seen order. tt
// must come from the same timeline.
func Collect(tl *timeline.Timeline, tt *turntaking.Analysis) []Metrics {
	index := make(map[string]int)
	out := make([]Metrics, 0)
	chars := make([]int, 0)
	words := make([]int, 0)

	for e := range tl.All().Participants().Events() {
		i, ok := index[e.Author]
		if !ok {
			i = len(out)
			index[e.Author] = i
			out = append(out, Metrics{Author: e.Author})
			chars = append(chars, 0)
			words = append(words, 0)
		}
		out[i].Messages++
		chars[i] += utf8.RuneCountInString(e.Text)
		words[i] += len(strings.Fields(e.Text))
		out[i].MediaLinks += temporal.CountLinks(e.Text)
		if e.IsMedia() {
			out[i].MediaLinks++
		}
	}

	starts := tt.Initiations(timeline.Overall)
	responses := tt.Responses(timeline.Overall)
	for i := range out {
		n := float64(out[i].Messages)
		out[i].AvgChars = float64(chars[i]) / n
		out[i].AvgWords = float64(words[i]) / n
		out[i].Starts = starts[out[i].Author]
		out[i].Responses = responses[out[i].Author]
	}
	return out
}

// Assign ranks the topN authors for each role. Ties keep first-seen order.
// It returns an empty map when there are no authors.
func Assign(metrics []Metrics, topN int) map[string]Assignment {
	out := make(map[string]Assignment, len(rules))
	if len(metrics) == 0 {
		return out
	}

	hasShared := false
	for _, m := range metrics {
		if m.MediaLinks > 0 {
			hasShared = true
			break
		}
	}

	for _, r := range rules {
		if r.role == textBroadcaster.role && !hasShared {
			r = textBroadcaster
		}
		out[r.role] = Assignment{
			Top:         top(metrics, topN, r.score, r.format),
			Description: r.description,
			Label:       r.label,
		}
	}
	return out
}

// Classify collects metrics from tl and assigns roles.
func Classify(tl *timeline.Timeline, tt *turntaking.Analysis, topN int) map[string]Assignment {
	return Assign(Collect(tl, tt), topN)
}

func top(metrics []Metrics, n int, score func(Metrics) float64, format func(Metrics) string) []Ranked {
	sorted := append([]Metrics(nil), metrics...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]Ranked, len(sorted))
	for i, m := range sorted {
		out[i] = Ranked{Author: m.Author, Value: format(m)}
	}
	return out
}
