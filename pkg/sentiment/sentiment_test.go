package sentiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

func TestLabelFor(t *testing.T) {
	assert.Equal(t, Positive, LabelFor(0.05))
	assert.Equal(t, Negative, LabelFor(-0.05))
	assert.Equal(t, Neutral, LabelFor(0.049))
	assert.Equal(t, Neutral, LabelFor(0))
}

func TestLexicon_Score(t *testing.T) {
	lex := NewLexicon()

	tests := []struct {
		name  string
		text  string
		label Label
	}{
		{"positive word", "this is great", Positive},
		{"negative word", "that was terrible", Negative},
		{"boosted positive", "I am so excited for tonight", Positive},
		{"disgust", "that was disgusting", Negative},
		{"disaster", "what a disaster", Negative},
		{"boosted negative", "I'm really worried", Negative},
		{"neutral", "see you at the station", Neutral},
		{"negated positive", "not good", Negative},
		{"hinglish", "bahut badiya yaar", Positive},
		{"hinglish negative", "ekdum bakwas", Negative},
		{"emoji", "😂😂", Positive},
		{"emoji negative", "💔", Negative},
		{"emoji inside text", "see you soon😊", Positive},
		{"emoticon", "ok :(", Negative},
		{"media placeholder", "<Media omitted>", Neutral},
		{"url only", "https://example.com/great", Neutral},
		{"empty", "", Neutral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label, c := lex.Score(tc.text)
			assert.Equal(t, tc.label, label, "compound %v", c)
			assert.GreaterOrEqual(t, c, -1.0)
			assert.LessOrEqual(t, c, 1.0)
		})
	}
}

func TestLexicon_Intensity(t *testing.T) {
	lex := NewLexicon()
	plain := lex.Compound("good")
	boosted := lex.Compound("very good")
	excited := lex.Compound("good!!!")

	assert.Greater(t, boosted, plain)
	assert.Greater(t, excited, plain)
	assert.InDelta(t, 0.4404, plain, 1e-3)
}

func TestLexicon_RepeatedLetters(t *testing.T) {
	lex := NewLexicon()
	assert.Equal(t, lex.Compound("yaaay"), lex.Compound("yaaaaaaay"))
	assert.Greater(t, lex.Compound("yaaaaaaay"), 0.0)
}

func TestLexicon_Extra(t *testing.T) {
	lex := NewLexiconWith(map[string]float64{"Chatpulse": 3})
	label, _ := lex.Score("chatpulse")
	assert.Equal(t, Positive, label)

	label, _ = NewLexicon().Score("chatpulse")
	assert.Equal(t, Neutral, label)
}

func TestSqueezeRepeats(t *testing.T) {
	assert.Equal(t, "nooo", squeezeRepeats("noooooo", 3))
	assert.Equal(t, "abc", squeezeRepeats("abc", 3))
}

func testTimeline() *timeline.Timeline {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	return timeline.New([]timeline.Event{
		timeline.NewEvent(base, "Alice", "this is great"),
		timeline.NewEvent(base.Add(time.Minute), "Bob", "terrible idea"),
		timeline.NewEvent(base.Add(2*time.Minute), "Alice", "see you at noon"),
		timeline.NewEvent(base.Add(3*time.Minute), "", "Bob left"),
	})
}

func TestAnnotateAndSummarize(t *testing.T) {
	tl := testTimeline()
	ann := Annotate(tl, NewLexicon())

	label, ok := ann.Label(0)
	require.True(t, ok)
	assert.Equal(t, Positive, label)

	_, ok = ann.Label(3)
	assert.False(t, ok, "notifications are not scored")
	_, ok = ann.Compound(99)
	assert.False(t, ok)

	sum := Summarize(tl.All(), ann)
	assert.Equal(t, 3, sum.TotalMessages)
	assert.Equal(t, 33.33, sum.PositivePercentage)
	assert.Equal(t, 33.33, sum.NegativePercentage)
	assert.Equal(t, 33.33, sum.NeutralPercentage)

	alice := Summarize(tl.Filter("Alice"), ann)
	assert.Equal(t, 2, alice.TotalMessages)
	assert.Equal(t, 50.0, alice.PositivePercentage)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(timeline.View{}, nil))
}
