package report

import (
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/anomaly"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/health"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/roles"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	"github.com/otherjamesbrown/chatpulse/pkg/analytics/temporal"
	"github.com/otherjamesbrown/chatpulse/pkg/sentiment"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Section is the analytics of one author, or of everyone under Overall.
// Busiest buckets, most active users and roles are only set for Overall.
type Section struct {
	BasicStats temporal.BasicStats `json:"basic_stats"`
	LinkCount  int                 `json:"link_count"`

	DailyTimeline     []temporal.Bucket `json:"daily_timeline"`
	HourlyActivity    []temporal.Bucket `json:"hourly_activity"`
	WeeklyActivity    []temporal.Bucket `json:"weekly_activity"`
	MonthlyTimeline   []temporal.Bucket `json:"monthly_timeline"`
	QuarterlyTimeline []temporal.Bucket `json:"quarterly_timeline"`
	YearlyTimeline    []temporal.Bucket `json:"yearly_timeline"`
	// ActivityHeatmap is indexed [weekday][hour], Monday first.
	ActivityHeatmap [7][24]int `json:"activity_heatmap"`

	BusiestDay      *temporal.Bucket        `json:"busiest_day,omitempty"`
	BusiestWeekday  *temporal.Bucket        `json:"busiest_weekday,omitempty"`
	BusiestMonth    *temporal.Bucket        `json:"busiest_month,omitempty"`
	BusiestHour     *temporal.Bucket        `json:"busiest_hour,omitempty"`
	MostActiveUsers []temporal.UserActivity `json:"most_active_users,omitempty"`

	TurnTaking TurnTaking `json:"turn_taking"`

	LongestMessage   *temporal.MessageRecord `json:"longest_message"`
	MostWordyMessage *temporal.MessageRecord `json:"most_wordy_message"`
	CommonWords      []temporal.WordCount    `json:"common_words"`
	TopEmojis        []temporal.EmojiCount   `json:"top_emojis"`

	Sentiment sentiment.Summary           `json:"sentiment"`
	Roles     map[string]roles.Assignment `json:"roles,omitempty"`
	Anomalies anomaly.Result              `json:"anomalies"`
	Health    health.Score                `json:"health"`
}

// TurnTaking is the projection of the global scan onto one view. Latencies
// are minutes rounded to 2 decimals.
type TurnTaking struct {
	ResponseLatency       map[string]float64 `json:"response_latency"`
	Responses             map[string]int     `json:"responses"`
	ConversationInitiator map[string]int     `json:"conversation_initiator"`
}

func emptyTurnTaking() TurnTaking {
	return TurnTaking{
		ResponseLatency:       map[string]float64{},
		Responses:             map[string]int{},
		ConversationInitiator: map[string]int{},
	}
}

func (e *Engine) section(sc *scope, sh *shared) *Section {
	v := sh.tl.Filter(sc.author)
	overall := v.IsOverall()
	s := &Section{}

	s.BasicStats = guard(sc, "basic_stats", temporal.BasicStats{}, func() (temporal.BasicStats, error) {
		return temporal.Basic(v), nil
	})
	s.LinkCount = guard(sc, "link_count", 0, func() (int, error) {
		return temporal.LinkCount(v), nil
	})

	series := func(name string, fn func(timeline.View) []temporal.Bucket) []temporal.Bucket {
		return guard(sc, name, []temporal.Bucket{}, func() ([]temporal.Bucket, error) {
			return fn(v), nil
		})
	}
	s.DailyTimeline = series("daily_timeline", temporal.Daily)
	s.HourlyActivity = series("hourly_activity", temporal.Hourly)
	s.WeeklyActivity = series("weekly_activity", temporal.Weekly)
	s.MonthlyTimeline = series("monthly_timeline", temporal.Monthly)
	s.QuarterlyTimeline = series("quarterly_timeline", temporal.Quarterly)
	s.YearlyTimeline = series("yearly_timeline", temporal.Yearly)
	s.ActivityHeatmap = guard(sc, "activity_heatmap", [7][24]int{}, func() ([7][24]int, error) {
		return temporal.Heatmap(v), nil
	})

	if overall {
		busiest := func(name string, fn func(timeline.View) (temporal.Bucket, bool)) *temporal.Bucket {
			return guard(sc, name, (*temporal.Bucket)(nil), func() (*temporal.Bucket, error) {
				b, ok := fn(v)
				return optional(b, ok), nil
			})
		}
		s.BusiestDay = busiest("busiest_day", temporal.BusyDay)
		s.BusiestWeekday = busiest("busiest_weekday", temporal.BusyWeekday)
		s.BusiestMonth = busiest("busiest_month", temporal.BusyMonth)
		s.BusiestHour = busiest("busiest_hour", temporal.BusyHour)
		s.MostActiveUsers = guard(sc, "most_active_users", []temporal.UserActivity{}, func() ([]temporal.UserActivity, error) {
			return temporal.MostActiveUsers(v, e.opts.TopUsers), nil
		})
		s.Roles = sh.roles
	}

	s.TurnTaking = guard(sc, "turn_taking", emptyTurnTaking(), func() (TurnTaking, error) {
		latency := sh.turns.MeanLatency(sc.author)
		for who, l := range latency {
			latency[who] = stats.Round(l, 2)
		}
		return TurnTaking{
			ResponseLatency:       latency,
			Responses:             sh.turns.Responses(sc.author),
			ConversationInitiator: sh.turns.Initiations(sc.author),
		}, nil
	})

	message := func(name string, fn func(timeline.View) (temporal.MessageRecord, bool)) *temporal.MessageRecord {
		return guard(sc, name, (*temporal.MessageRecord)(nil), func() (*temporal.MessageRecord, error) {
			rec, ok := fn(v)
			return optional(rec, ok), nil
		})
	}
	s.LongestMessage = message("longest_message", temporal.LongestMessage)
	s.MostWordyMessage = message("most_wordy_message", temporal.MostWordyMessage)

	s.CommonWords = guard(sc, "common_words", []temporal.WordCount{}, func() ([]temporal.WordCount, error) {
		return temporal.MostCommonWords(v, e.opts.TopWords), nil
	})
	s.TopEmojis = guard(sc, "top_emojis", []temporal.EmojiCount{}, func() ([]temporal.EmojiCount, error) {
		return temporal.TopEmojis(v, e.opts.TopEmojis), nil
	})
	s.Sentiment = guard(sc, "sentiment", sentiment.Summary{}, func() (sentiment.Summary, error) {
		return sentiment.Summarize(v, sh.annotations), nil
	})

	if overall {
		s.Anomalies = sh.anomalies
	} else {
		s.Anomalies = guard(sc, "anomalies", anomaly.Empty(), func() (anomaly.Result, error) {
			return anomaly.Detect(v, sh.annotations, e.opts.Anomaly)
		})
	}
	s.Health = guard(sc, "health", health.Score{Rating: health.NotAvailable}, func() (health.Score, error) {
		return health.Evaluate(v, health.Sources{
			Labels:    sh.annotations,
			Compounds: sh.annotations,
			Turns:     sh.turns,
			Anomalies: &s.Anomalies,
			Anomaly:   e.opts.Anomaly,
		}), nil
	})

	scopeLabel := "author"
	if overall {
		scopeLabel = "overall"
	}
	e.opts.Metrics.RecordSection(scopeLabel)
	return s
}

// optional turns a (value, ok) pair into a pointer that is nil when !ok.
func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
