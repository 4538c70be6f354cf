// Package chat parses exported chat transcripts into a timeline.
//
// A transcript is a sequence of messages, each introduced by a header of the
// form "D/M/YY, H:MM am - ". Everything between two headers is one message
// body, embedded newlines included.
package chat

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

var (
	// Matches a message header: 01/02/24, 9:05 pm -
	headerRegex = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4}),\s(\d{1,2}):(\d{2})\s?((?i:am|pm))\s-\s`)

	// Export artifact: narrow no-break space before the meridiem.
	spaceReplacer = strings.NewReplacer("\u202f", " ")
)

// Result is the outcome of parsing one transcript.
type Result struct {
	Timeline *timeline.Timeline
	// Speakers is the distinct authors in order of first appearance,
	// notifications excluded.
	Speakers []string
	// Skipped counts headers whose date or time could not be parsed.
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

// ParseReader reads r fully and parses it.
func ParseReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse turns raw transcript text into a sorted timeline. Text with no headers
// yields an empty timeline, never an error.
func Parse(raw string) *Result {
	data := spaceReplacer.Replace(raw)
	headers := headerRegex.FindAllStringSubmatchIndex(data, -1)

	result := &Result{Speakers: make([]string, 0)}
	events := make([]timeline.Event, 0, len(headers))
	seen := make(map[string]bool)

	for i, loc := range headers {
		end := len(data)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := data[loc[1]:end]

		ts, ok := parseHeader(data, loc)
		if !ok {
			result.Skipped++
			continue
		}

		author, text := splitAuthor(body)
		ev := timeline.NewEvent(ts, author, text)
		events = append(events, ev)

		if !ev.IsNotification() && !seen[ev.Author] {
			seen[ev.Author] = true
			result.Speakers = append(result.Speakers, ev.Author)
		}
	}

	result.Timeline = timeline.New(events)
	if first, last, ok := result.Timeline.Span(); ok {
		result.StartTime = first
		result.EndTime = last
	}
	return result
}

// parseHeader converts the submatches of one header into a UTC timestamp.
func parseHeader(data string, loc []int) (time.Time, bool) {
	group := func(n int) string { return data[loc[2*n]:loc[2*n+1]] }

	day, _ := strconv.Atoi(group(1))
	month, _ := strconv.Atoi(group(2))
	year, _ := strconv.Atoi(group(3))
	hour, _ := strconv.Atoi(group(4))
	minute, _ := strconv.Atoi(group(5))
	meridiem := strings.ToLower(group(6))

	switch len(group(3)) {
	case 2:
		// POSIX %y pivot.
		if year >= 69 {
			year += 1900
		} else {
			year += 2000
		}
	case 4:
	default:
		return time.Time{}, false
	}

	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	if hour == 12 {
		hour = 0
	}
	if meridiem == "pm" {
		hour += 12
	}

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalises overflow (31/02 becomes 02/03); reject it.
	if ts.Day() != day || int(ts.Month()) != month {
		return time.Time{}, false
	}
	return ts, true
}

// splitAuthor separates "name: text". The name is the shortest non-empty run
// of the body's first line ending at ": ". Bodies without one are
// notifications and keep their whole text.
func splitAuthor(body string) (author, text string) {
	body = strings.TrimRight(body, "\r\n")

	firstLine := body
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		firstLine = body[:nl]
	}
	if len(firstLine) > 1 {
		if idx := strings.Index(firstLine[1:], ": "); idx >= 0 {
			cut := idx + 1
			return body[:cut], body[cut+2:]
		}
	}
	return timeline.NotificationAuthor, body
}
