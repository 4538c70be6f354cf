package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/temporal"
	"github.com/otherjamesbrown/chatpulse/pkg/report"
)

const textTopN = 5

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

// renderReport prints a readable summary of the listed sections.
func renderReport(w io.Writer, rep *report.Report, users []string) error {
	p := &printer{w: w}

	m := rep.Meta
	p.printf("Transcript: %s\n", valueOrDefault(m.Source, "(stdin)"))
	p.printf("Messages:   %d from %d participants", m.Events, m.Participants)
	if m.Skipped > 0 {
		p.printf(" (%d headers skipped)", m.Skipped)
	}
	p.printf("\n")
	if m.Start != nil && m.End != nil {
		p.printf("Period:     %s to %s\n", m.Start.Format("2006-01-02 15:04"), m.End.Format("2006-01-02 15:04"))
	}

	for _, u := range users {
		s := rep.Analytics[u]
		if s == nil {
			continue
		}
		p.printf("\n== %s ==\n", u)
		renderSection(p, s)
	}
	return p.err
}

func renderSection(p *printer, s *report.Section) {
	b := s.BasicStats
	p.printf("Messages %d, words %d, media %d, links %d\n", b.Messages, b.Words, b.Media, s.LinkCount)

	if s.BusiestDay != nil {
		p.printf("Busiest:  %s\n", strings.Join([]string{
			bucketText("day", s.BusiestDay),
			bucketText("weekday", s.BusiestWeekday),
			bucketText("month", s.BusiestMonth),
			bucketText("hour", s.BusiestHour),
		}, ", "))
	}
	if len(s.MostActiveUsers) > 0 {
		parts := make([]string, 0, textTopN)
		for _, a := range s.MostActiveUsers[:min(textTopN, len(s.MostActiveUsers))] {
			parts = append(parts, fmt.Sprintf("%s %d (%s)", a.Author, a.Messages, formatPercent(a.Percent)))
		}
		p.printf("Active:   %s\n", strings.Join(parts, ", "))
	}

	if len(s.TurnTaking.ResponseLatency) > 0 {
		p.printf("Replies:  %s\n", joinSorted(s.TurnTaking.ResponseLatency, func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64) + " min"
		}))
	}
	if len(s.TurnTaking.ConversationInitiator) > 0 {
		p.printf("Starts:   %s\n", joinSorted(s.TurnTaking.ConversationInitiator, strconv.Itoa))
	}

	if len(s.CommonWords) > 0 {
		parts := make([]string, 0, textTopN)
		for _, wc := range s.CommonWords[:min(textTopN, len(s.CommonWords))] {
			parts = append(parts, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		p.printf("Words:    %s\n", strings.Join(parts, ", "))
	}
	if len(s.TopEmojis) > 0 {
		parts := make([]string, 0, textTopN)
		for _, ec := range s.TopEmojis[:min(textTopN, len(s.TopEmojis))] {
			parts = append(parts, fmt.Sprintf("%s %d", ec.Emoji, ec.Count))
		}
		p.printf("Emoji:    %s\n", strings.Join(parts, "  "))
	}

	st := s.Sentiment
	p.printf("Mood:     %s positive, %s negative, %s neutral (avg %.2f)\n",
		formatPercent(st.PositivePercentage), formatPercent(st.NegativePercentage),
		formatPercent(st.NeutralPercentage), st.AverageCompound)

	if s.LongestMessage != nil {
		p.printf("Longest:  %s, %d chars\n", s.LongestMessage.Author, s.LongestMessage.MetricValue)
	}

	p.printf("Anomalies: %d spikes, %d drops\n", len(s.Anomalies.Spikes), len(s.Anomalies.Drops))
	p.printf("Health:   %s (%s)\n", formatScore(s.Health.Score), s.Health.Rating)

	if len(s.Roles) > 0 {
		roleNames := make([]string, 0, len(s.Roles))
		for name, a := range s.Roles {
			if len(a.Top) > 0 {
				roleNames = append(roleNames, name+": "+a.Top[0].Author)
			}
		}
		sort.Strings(roleNames)
		p.printf("Roles:    %s\n", strings.Join(roleNames, ", "))
	}
}

func bucketText(name string, b *temporal.Bucket) string {
	if b == nil {
		return name + " -"
	}
	return fmt.Sprintf("%s %s (%d)", name, b.Bucket, b.MessageCount)
}

func joinSorted[V any](m map[string]V, format func(V) string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + format(m[k])
	}
	return strings.Join(parts, ", ")
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
