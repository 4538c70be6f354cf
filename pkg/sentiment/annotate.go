package sentiment

import (
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Annotations hold one score per timeline event, indexed by Seq. They are
// built once and read concurrently.
type Annotations struct {
	compound []float64
	labels   []Label
}

// Annotate scores every non-notification event in tl with s.
func Annotate(tl *timeline.Timeline, s Scorer) *Annotations {
	n := tl.Len()
	a := &Annotations{
		compound: make([]float64, n),
		labels:   make([]Label, n),
	}
	for e := range tl.Events() {
		if e.IsNotification() {
			continue
		}
		label, c := s.Score(e.Text)
		a.compound[e.Seq] = c
		a.labels[e.Seq] = label
	}
	return a
}

// Compound returns the compound score for the event with the given Seq.
func (a *Annotations) Compound(seq int) (float64, bool) {
	if a == nil || seq < 0 || seq >= len(a.labels) || a.labels[seq] == "" {
		return 0, false
	}
	return a.compound[seq], true
}

// Label returns the label for the event with the given Seq.
func (a *Annotations) Label(seq int) (Label, bool) {
	if a == nil || seq < 0 || seq >= len(a.labels) || a.labels[seq] == "" {
		return "", false
	}
	return a.labels[seq], true
}

// Summary aggregates labels over a view.
type Summary struct {
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	AverageCompound    float64 `json:"average_compound"`
	TotalMessages      int     `json:"total_messages"`
}

// Summarize aggregates the scored, non-notification events of v.
func Summarize(v timeline.View, a *Annotations) Summary {
	var pos, neg, neu int
	scores := make([]float64, 0, v.Len())
	for e := range v.Events() {
		label, ok := a.Label(e.Seq)
		if !ok {
			continue
		}
		c, _ := a.Compound(e.Seq)
		scores = append(scores, c)
		switch label {
		case Positive:
			pos++
		case Negative:
			neg++
		default:
			neu++
		}
	}

	total := len(scores)
	if total == 0 {
		return Summary{}
	}
	pct := func(n int) float64 { return stats.Round(float64(n)/float64(total)*100, 2) }
	return Summary{
		PositivePercentage: pct(pos),
		NegativePercentage: pct(neg),
		NeutralPercentage:  pct(neu),
		AverageCompound:    stats.Round(stats.Mean(scores), 4),
		TotalMessages:      total,
	}
}
