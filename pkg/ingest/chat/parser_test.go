package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

func TestParse_ThreeMessageScenario(t *testing.T) {
	raw := "01/01/24, 10:00 am - Alice: hi\n01/01/24, 10:05 am - Bob: hello\n01/01/24, 10:10 am - Alice: how are you"

	result := Parse(raw)
	require.Equal(t, 3, result.Timeline.Len())

	tl := result.Timeline
	assert.Equal(t, "Alice", tl.At(0).Author)
	assert.Equal(t, "hi", tl.At(0).Text)
	assert.Equal(t, "Bob", tl.At(1).Author)
	assert.Equal(t, "hello", tl.At(1).Text)
	assert.Equal(t, "how are you", tl.At(2).Text)

	assert.Equal(t, time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), tl.At(0).Timestamp)
	assert.Equal(t, []string{"Alice", "Bob"}, result.Speakers)
	assert.Equal(t, 10, result.StartTime.Hour())
	assert.Equal(t, 10, result.EndTime.Minute())
	assert.Zero(t, result.Skipped)
}

func TestParse_RoundTrip(t *testing.T) {
	authors := []string{"Alice", "Bob", "Carol Smith", "+91 98765 43210"}
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d/03/24, %d:%02d pm - %s: message %d\n", i%28+1, i%11+1, i, authors[i%len(authors)], i)
	}

	result := Parse(b.String())
	tl := result.Timeline
	require.Equal(t, 40, tl.Len())

	for i := 1; i < tl.Len(); i++ {
		assert.False(t, tl.At(i).Timestamp.Before(tl.At(i-1).Timestamp))
	}
	texts := make(map[string]string)
	for e := range tl.Events() {
		texts[e.Text] = e.Author
	}
	for i := 0; i < 40; i++ {
		assert.Equal(t, authors[i%len(authors)], texts[fmt.Sprintf("message %d", i)])
	}
}

func TestParse_NotificationLines(t *testing.T) {
	raw := "12/05/23, 9:00 am - Messages and calls are end-to-end encrypted.\n" +
		"12/05/23, 9:01 am - Alice created group \"Trip\"\n" +
		"12/05/23, 9:02 am - Alice: ok\n"

	tl := Parse(raw).Timeline
	require.Equal(t, 3, tl.Len())

	assert.Equal(t, timeline.NotificationAuthor, tl.At(0).Author)
	assert.Equal(t, "Messages and calls are end-to-end encrypted.", tl.At(0).Text)
	assert.Equal(t, timeline.NotificationAuthor, tl.At(1).Author)
	assert.Equal(t, "Alice created group \"Trip\"", tl.At(1).Text)
	assert.Equal(t, "Alice", tl.At(2).Author)
}

func TestParse_MultiLineMessageIsOneEvent(t *testing.T) {
	raw := "01/02/24, 8:00 pm - Alice: first line\nsecond line\nthird: line\n" +
		"01/02/24, 8:01 pm - Bob: reply\n"

	tl := Parse(raw).Timeline
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, "first line\nsecond line\nthird: line", tl.At(0).Text)
}

func TestParse_DiscardsPreamble(t *testing.T) {
	raw := "Exported chat\nsome noise\n01/02/24, 8:00 pm - Alice: hi\n"

	tl := Parse(raw).Timeline
	require.Equal(t, 1, tl.Len())
	assert.Equal(t, "hi", tl.At(0).Text)
}

func TestParse_NoHeadersIsEmpty(t *testing.T) {
	result := Parse("just some text\nwith no headers")
	assert.Equal(t, 0, result.Timeline.Len())
	assert.True(t, result.StartTime.IsZero())

	assert.Equal(t, 0, Parse("").Timeline.Len())
}

func TestParse_Meridiem(t *testing.T) {
	tests := []struct {
		name string
		line string
		hour int
	}{
		{"midnight", "01/01/24, 12:15 am - A: x", 0},
		{"noon", "01/01/24, 12:15 pm - A: x", 12},
		{"morning", "01/01/24, 9:15 am - A: x", 9},
		{"evening", "01/01/24, 9:15 pm - A: x", 21},
		{"upper case", "01/01/24, 9:15 PM - A: x", 21},
		{"no space", "01/01/24, 9:15pm - A: x", 21},
		{"narrow no-break space", "01/01/24, 9:15\u202fpm - A: x", 21},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tl := Parse(tc.line).Timeline
			require.Equal(t, 1, tl.Len())
			assert.Equal(t, tc.hour, tl.At(0).Hour)
			assert.Equal(t, 15, tl.At(0).Minute)
		})
	}
}

func TestParse_DayMonthYear(t *testing.T) {
	tl := Parse("25/12/99, 1:00 am - A: x\n3/4/2021, 1:00 am - A: y").Timeline
	require.Equal(t, 2, tl.Len())

	assert.Equal(t, time.Date(1999, time.December, 25, 1, 0, 0, 0, time.UTC), tl.At(0).Timestamp)
	assert.Equal(t, time.Date(2021, time.April, 3, 1, 0, 0, 0, time.UTC), tl.At(1).Timestamp)
}

func TestParse_SkipsInvalidDates(t *testing.T) {
	raw := "31/02/24, 1:00 am - A: impossible\n01/13/24, 1:00 am - A: bad month\n01/01/24, 1:00 am - A: fine"

	result := Parse(raw)
	assert.Equal(t, 2, result.Skipped)
	require.Equal(t, 1, result.Timeline.Len())
	assert.Equal(t, "fine", result.Timeline.At(0).Text)
}

func TestParse_SortsOutOfOrderLines(t *testing.T) {
	raw := "02/01/24, 1:00 am - A: later\n01/01/24, 1:00 am - B: earlier\n02/01/24, 1:00 am - C: tie"

	tl := Parse(raw).Timeline
	require.Equal(t, 3, tl.Len())
	assert.Equal(t, "earlier", tl.At(0).Text)
	assert.Equal(t, "later", tl.At(1).Text)
	assert.Equal(t, "tie", tl.At(2).Text)
}

func TestParse_CRLF(t *testing.T) {
	tl := Parse("01/01/24, 1:00 am - A: one\r\n01/01/24, 1:01 am - B: two\r\n").Timeline
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, "one", tl.At(0).Text)
	assert.Equal(t, "two", tl.At(1).Text)
}

func TestSplitAuthor(t *testing.T) {
	tests := []struct {
		body   string
		author string
		text   string
	}{
		{"Alice: hi", "Alice", "hi"},
		{"Alice: time is 10: 30", "Alice", "time is 10: 30"},
		{"Alice: ", "Alice", ""},
		{": leading colon", timeline.NotificationAuthor, ": leading colon"},
		{"no colon here", timeline.NotificationAuthor, "no colon here"},
		{"Alice:\tx", timeline.NotificationAuthor, "Alice:\tx"},
		{"Alice:x", timeline.NotificationAuthor, "Alice:x"},
		{"joined\nBob: later line", timeline.NotificationAuthor, "joined\nBob: later line"},
	}

	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			author, text := splitAuthor(tc.body)
			assert.Equal(t, tc.author, author)
			assert.Equal(t, tc.text, text)
		})
	}
}

func TestParseReader(t *testing.T) {
	result, err := ParseReader(strings.NewReader("01/01/24, 10:00 am - Alice: hi"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Timeline.Len())
}
