// Package health folds sentiment, engagement, responsiveness, balance and
// anomalies into a single 0-100 conversation health score.
package health

import (
	"fmt"
	"strings"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/anomaly"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/turntaking"
	"github.com/otherjamesbrown/chatpulse/pkg/sentiment"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Weights of the composite.
const (
	WeightSentiment  = 0.30
	WeightEngagement = 0.25
	WeightResponse   = 0.20
	WeightBalance    = 0.15
)

const (
	maxPenalty          = 10.0
	penaltyPerAnomaly   = 2.0
	latencyCeiling      = 1440.0
	defaultResponse     = 50.0
	singleAuthorBalance = 20.0
)

// NotAvailable is the rating of an empty conversation.
const NotAvailable = "N/A"

type band struct {
	min    float64
	rating string
}

// Bands are checked in order; lower bounds are inclusive.
var bands = []band{
	{85, "Legendary"},
	{70, "Vibrant"},
	{50, "Healthy"},
	{30, "Sporadic"},
	{0, "Cold"},
}

// Rating returns the band name for a final score.
func Rating(score float64) string {
	for _, b := range bands {
		if score >= b.min {
			return b.rating
		}
	}
	return bands[len(bands)-1].rating
}

// Breakdown holds the sub-scores, each in [0, 100], and the penalty.
type Breakdown struct {
	Sentiment  float64 `json:"sentiment"`
	Engagement float64 `json:"engagement"`
	Response   float64 `json:"response"`
	Balance    float64 `json:"balance"`
	Penalty    float64 `json:"penalty"`
}

// Score is the health of one view.
type Score struct {
	Score       float64    `json:"score"`
	Rating      string     `json:"rating"`
	Metrics     *Breakdown `json:"metrics,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Input is everything the composite needs, already reduced to numbers.
type Input struct {
	Messages int
	Positive int
	Negative int
	// ActiveDays is the number of distinct dates with a message; SpanDays
	// is the inclusive calendar window from the first to the last date.
	ActiveDays int
	SpanDays   int
	// MeanLatency is in minutes and only read when HasLatency is set.
	MeanLatency  float64
	HasLatency   bool
	AuthorCounts []int
	Anomalies    int
}

// Compute evaluates the composite. Zero messages yield score 0 rated N/A.
func Compute(in Input) Score {
	if in.Messages == 0 {
		return Score{Score: 0, Rating: NotAvailable}
	}
	n := float64(in.Messages)

	sentimentScore := stats.Clamp((float64(in.Positive)/n-float64(in.Negative)/n+1)*50, 0, 100)

	span := float64(max(1, in.SpanDays))
	engagement := stats.Clamp(n/span*5+float64(in.ActiveDays)/span*50, 0, 100)

	response := defaultResponse
	if in.HasLatency {
		response = stats.Clamp(100*(1-min(latencyCeiling, in.MeanLatency)/latencyCeiling), 0, 100)
	}

	balance := singleAuthorBalance
	if len(in.AuthorCounts) > 1 {
		counts := make([]float64, len(in.AuthorCounts))
		for i, c := range in.AuthorCounts {
			counts[i] = float64(c)
		}
		balance = stats.Clamp(100*(1-stats.CoefficientOfVariation(counts)/2), 0, 100)
	}

	penalty := min(maxPenalty, penaltyPerAnomaly*float64(in.Anomalies))

	final := WeightSentiment*sentimentScore +
		WeightEngagement*engagement +
		WeightResponse*response +
		WeightBalance*balance -
		penalty
	final = stats.Round(stats.Clamp(final, 0, 100), 1)

	rating := Rating(final)
	return Score{
		Score:  final,
		Rating: rating,
		Metrics: &Breakdown{
			Sentiment:  stats.Round(sentimentScore, 1),
			Engagement: stats.Round(engagement, 1),
			Response:   stats.Round(response, 1),
			Balance:    stats.Round(balance, 1),
			Penalty:    stats.Round(penalty, 1),
		},
		Description: fmt.Sprintf("This chat is %s with a refined health score of %.1f%%.", strings.ToLower(rating), final),
	}
}

// Labels supplies per-message sentiment labels by timeline Seq.
type Labels interface {
	Label(seq int) (sentiment.Label, bool)
}

// Sources are the collaborators Evaluate reads. Nil Turns or Anomalies are
// computed on demand from the view's timeline.
type Sources struct {
	Labels    Labels
	Compounds anomaly.Compounds
	Turns     *turntaking.Analysis
	Anomalies *anomaly.Result
	Anomaly   anomaly.Config
}

// Evaluate reduces the non-notification rows of v to an Input and scores it.
// The anomaly penalty counts every detected anomaly, not only the ranked top
// entries of each side.
func Evaluate(v timeline.View, src Sources) Score {
	return Compute(Gather(v, src))
}

// Gather builds the Input for v.
func Gather(v timeline.View, src Sources) Input {
	rows := v.Participants()
	in := Input{Messages: rows.Len()}
	if in.Messages == 0 {
		return in
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	dates := make(map[string]bool)
	for e := range rows.Events() {
		if _, ok := counts[e.Author]; !ok {
			order = append(order, e.Author)
		}
		counts[e.Author]++
		dates[e.DateKey()] = true

		if src.Labels == nil {
			continue
		}
		switch label, _ := src.Labels.Label(e.Seq); label {
		case sentiment.Positive:
			in.Positive++
		case sentiment.Negative:
			in.Negative++
		}
	}
	for _, a := range order {
		in.AuthorCounts = append(in.AuthorCounts, counts[a])
	}
	in.ActiveDays = len(dates)

	first, last := rows.At(0).Date(), rows.At(rows.Len()-1).Date()
	in.SpanDays = int(last.Sub(first).Hours()/24+0.5) + 1

	turns := src.Turns
	if turns == nil {
		turns = turntaking.Analyze(v.Timeline())
	}
	in.MeanLatency, in.HasLatency = meanLatency(turns, v)

	if src.Anomalies != nil {
		in.Anomalies = src.Anomalies.Total
	} else {
		res, _ := anomaly.Detect(v, src.Compounds, src.Anomaly)
		in.Anomalies = res.Total
	}
	return in
}

// meanLatency is the author's own mean for an author view, and the mean of
// per-author means for Overall.
func meanLatency(turns *turntaking.Analysis, v timeline.View) (float64, bool) {
	if !v.IsOverall() {
		return turns.Latency(v.Author())
	}
	per := turns.MeanLatency(timeline.Overall)
	if len(per) == 0 {
		return 0, false
	}
	vals := make([]float64, 0, len(per))
	for _, a := range turns.Authors() {
		if l, ok := per[a]; ok {
			vals = append(vals, l)
		}
	}
	return stats.Mean(vals), true
}
