package temporal

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Metric names carried by a MessageRecord.
const (
	MetricCharLength = "char_length"
	MetricWordCount  = "word_count"
)

// MessageRecord identifies one message by a metric.
type MessageRecord struct {
	Author      string    `json:"user"`
	Text        string    `json:"message"`
	Metric      string    `json:"metric"`
	MetricValue int       `json:"metric_value"`
	Timestamp   time.Time `json:"date"`
}

// LongestMessage is the text message with the most characters.
func LongestMessage(v timeline.View) (MessageRecord, bool) {
	return argmax(v, MetricCharLength, func(e timeline.Event) int {
		return utf8.RuneCountInString(e.Text)
	})
}

// MostWordyMessage is the text message with the most whitespace tokens.
func MostWordyMessage(v timeline.View) (MessageRecord, bool) {
	return argmax(v, MetricWordCount, func(e timeline.Event) int {
		return len(strings.Fields(e.Text))
	})
}

func argmax(v timeline.View, metric string, measure func(timeline.Event) int) (MessageRecord, bool) {
	var (
		best  timeline.Event
		value = -1
	)
	for _, e := range contentEvents(v) {
		if m := measure(e); m > value {
			best, value = e, m
		}
	}
	if value < 0 {
		return MessageRecord{}, false
	}
	return MessageRecord{
		Author:      best.Author,
		Text:        best.Text,
		Metric:      metric,
		MetricValue: value,
		Timestamp:   best.Timestamp,
	}, true
}
