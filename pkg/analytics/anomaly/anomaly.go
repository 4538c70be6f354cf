// Package anomaly flags unusual days and long silences in a conversation.
//
// Two passes run independently: an isolation forest over per-day features,
// and a scan for gaps between consecutive messages. Their findings are merged
// into spikes and drops, each ranked by severity score.
package anomaly

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/temporal"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Categories.
const (
	Spikes = "spikes"
	Drops  = "drops"
)

// Config tunes both passes.
type Config struct {
	Contamination float64
	Seed          uint64
	Trees         int
	// MinDays is the fewest distinct dates the pattern pass runs on.
	MinDays int
	// MinRows is the fewest messages the gap pass runs on.
	MinRows      int
	GapThreshold time.Duration
	MaxPerSide   int
}

// DefaultConfig returns the standard detector settings.
func DefaultConfig() Config {
	return Config{
		Contamination: 0.05,
		Seed:          42,
		Trees:         100,
		MinDays:       5,
		MinRows:       5,
		GapThreshold:  72 * time.Hour,
		MaxPerSide:    10,
	}
}

// Compounds supplies per-message sentiment by timeline Seq.
type Compounds interface {
	Compound(seq int) (float64, bool)
}

// Anomaly is one flagged day or silence.
type Anomaly struct {
	Type          string             `json:"type"`
	Category      string             `json:"category"`
	Date          string             `json:"date"`
	Value         *int               `json:"value,omitempty"`
	Severity      string             `json:"severity"`
	SeverityScore float64            `json:"severity_score"`
	ZScore        *float64           `json:"z_score,omitempty"`
	Description   string             `json:"description"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Result holds the ranked anomalies. Total counts every anomaly found before
// the per-side truncation.
type Result struct {
	Spikes []Anomaly `json:"spikes"`
	Drops  []Anomaly `json:"drops"`
	Total  int       `json:"total_detected"`
}

// Empty returns a result with no anomalies.
func Empty() Result {
	return Result{Spikes: []Anomaly{}, Drops: []Anomaly{}}
}

// Detect runs both passes over the non-notification rows of v. The result is
// always well formed; a non-nil error reports that the pattern pass failed and
// only gaps were kept.
func Detect(v timeline.View, scores Compounds, cfg Config) (Result, error) {
	rows := v.Participants()

	patterns, err := DetectPatterns(DailyFeatures(rows, scores), cfg)
	gaps := DetectGaps(rows, cfg)

	return Merge(append(patterns, gaps...), cfg.MaxPerSide), err
}

// Merge partitions anomalies by category, sorts each side by severity score
// descending and keeps the top limit of each.
func Merge(all []Anomaly, limit int) Result {
	res := Empty()
	res.Total = len(all)
	for _, a := range all {
		if a.Category == Drops {
			res.Drops = append(res.Drops, a)
		} else {
			res.Spikes = append(res.Spikes, a)
		}
	}
	for _, side := range []*[]Anomaly{&res.Spikes, &res.Drops} {
		s := *side
		sort.SliceStable(s, func(i, j int) bool { return s[i].SeverityScore > s[j].SeverityScore })
		if limit > 0 && len(s) > limit {
			*side = s[:limit]
		}
	}
	return res
}

// DailyFeatureRow is the per-date feature vector of the pattern pass.
type DailyFeatureRow struct {
	Date         string  `json:"date"`
	MessageCount int     `json:"message_count"`
	AvgSentiment float64 `json:"avg_sentiment"`
	MediaCount   int     `json:"media_count"`
	LinkCount    int     `json:"link_count"`
}

func (r DailyFeatureRow) vector() []float64 {
	return []float64{float64(r.MessageCount), r.AvgSentiment, float64(r.MediaCount), float64(r.LinkCount)}
}

// DailyFeatures builds one row per calendar date of v, oldest first.
// Average sentiment is over the scored messages of the day, 0 when none are.
func DailyFeatures(v timeline.View, scores Compounds) []DailyFeatureRow {
	out := make([]DailyFeatureRow, 0)
	var sum float64
	var scored int
	flush := func() {
		if len(out) == 0 {
			return
		}
		if scored > 0 {
			out[len(out)-1].AvgSentiment = sum / float64(scored)
		}
		sum, scored = 0, 0
	}

	for e := range v.Events() {
		date := e.DateKey()
		if len(out) == 0 || out[len(out)-1].Date != date {
			flush()
			out = append(out, DailyFeatureRow{Date: date})
		}
		row := &out[len(out)-1]
		row.MessageCount++
		if e.IsMedia() {
			row.MediaCount++
		}
		row.LinkCount += temporal.CountLinks(e.Text)
		if scores != nil {
			if c, ok := scores.Compound(e.Seq); ok {
				sum += c
				scored++
			}
		}
	}
	flush()
	return out
}

// cause is one rule of the cause table. The first matching rule names the
// anomaly; every matching rule adds its reason.
type cause struct {
	label    string
	category string
	reason   string
	match    func(r DailyFeatureRow, m means) bool
}

type means struct {
	count, sentiment, media float64
}

var causes = []cause{
	{"Activity Burst", Spikes, "unusually high volume", func(r DailyFeatureRow, m means) bool {
		return float64(r.MessageCount) > m.count*2.5
	}},
	{"Activity Drought", Drops, "significant dip in activity", func(r DailyFeatureRow, m means) bool {
		return float64(r.MessageCount) < m.count*0.3 && r.MessageCount > 0
	}},
	{"Sentiment Shift", Drops, "notable drop in conversation mood", func(r DailyFeatureRow, m means) bool {
		return r.AvgSentiment < m.sentiment-0.4
	}},
	{"Joy Spike", Spikes, "exceptionally high positive energy", func(r DailyFeatureRow, m means) bool {
		return r.AvgSentiment > m.sentiment+0.4
	}},
	{"Media Burst", Spikes, "media sharing frenzy", func(r DailyFeatureRow, m means) bool {
		return float64(r.MediaCount) > m.media*3 && r.MediaCount > 5
	}},
}

// DetectPatterns flags outlier days with an isolation forest. Fewer than
// cfg.MinDays rows yield no anomalies and no error.
func DetectPatterns(rows []DailyFeatureRow, cfg Config) ([]Anomaly, error) {
	if len(rows) < max(cfg.MinDays, 2) {
		return nil, nil
	}

	matrix := make([][]float64, len(rows))
	counts := make([]float64, len(rows))
	var m means
	for i, r := range rows {
		matrix[i] = r.vector()
		counts[i] = float64(r.MessageCount)
		m.sentiment += r.AvgSentiment
		m.media += float64(r.MediaCount)
	}
	m.count = stats.Mean(counts)
	m.sentiment /= float64(len(rows))
	m.media /= float64(len(rows))
	std := stats.SampleStdDev(counts)

	f, err := fitForest(matrix, cfg.Trees, cfg.Contamination, cfg.Seed)
	if err != nil {
		return nil, err
	}
	decision := f.decision(matrix)

	out := make([]Anomaly, 0)
	for i, r := range rows {
		raw := decision[i]
		if raw >= 0 {
			continue
		}

		label, category, detail := classify(r, m)

		z := 0.0
		if std > 0 {
			z = (float64(r.MessageCount) - m.count) / std
		}
		z = stats.Round(math.Abs(z), 2)
		value := r.MessageCount

		out = append(out, Anomaly{
			Type:          label,
			Category:      category,
			Date:          r.Date,
			Value:         &value,
			Severity:      patternSeverity(raw),
			SeverityScore: stats.Round(math.Abs(raw), 4),
			ZScore:        &z,
			Description:   fmt.Sprintf("Unique pattern detected: %s.", detail),
			Metrics: map[string]float64{
				"messages":  float64(r.MessageCount),
				"sentiment": stats.Round(r.AvgSentiment, 2),
			},
		})
	}
	return out, nil
}

// classify walks the cause table for one flagged day.
func classify(r DailyFeatureRow, m means) (label, category, detail string) {
	label, category = "Pattern Anomaly", Spikes
	reasons := make([]string, 0, len(causes))
	for _, c := range causes {
		if !c.match(r, m) {
			continue
		}
		if len(reasons) == 0 {
			label, category = c.label, c.category
		}
		reasons = append(reasons, c.reason)
	}
	detail = "statistical outlier"
	if len(reasons) > 0 {
		detail = strings.Join(reasons, ", ")
	}
	return label, category, detail
}

func patternSeverity(raw float64) string {
	switch {
	case raw < -0.15:
		return "Critical"
	case raw < -0.10:
		return "High"
	default:
		return "Medium"
	}
}

// DetectGaps reports every silence longer than cfg.GapThreshold between
// consecutive messages of v, dated by the message that ends it.
func DetectGaps(v timeline.View, cfg Config) []Anomaly {
	if v.Len() < cfg.MinRows {
		return nil
	}

	out := make([]Anomaly, 0)
	for i := 1; i < v.Len(); i++ {
		cur := v.At(i)
		gap := cur.Timestamp.Sub(v.At(i - 1).Timestamp)
		if gap <= cfg.GapThreshold {
			continue
		}
		hours := gap.Hours()
		days := stats.Round(hours/24, 1)
		severity := "Medium"
		if hours > 168 {
			severity = "High"
		}
		out = append(out, Anomaly{
			Type:          "Silent Period",
			Category:      Drops,
			Date:          cur.DateKey(),
			Severity:      severity,
			SeverityScore: min(hours/720, 1.0),
			Description:   fmt.Sprintf("The conversation went silent for about %.1f days before this message.", days),
			Metrics: map[string]float64{
				"gap_hours":     float64(int(hours)),
				"duration_days": days,
			},
		})
	}
	return out
}
