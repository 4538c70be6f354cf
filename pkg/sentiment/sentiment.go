// Package sentiment scores message text and attaches the scores to a
// timeline.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/rivo/uniseg"
)

// Label classifies a compound score.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

const (
	labelThreshold = 0.05
	maxRepeats     = 3
	vs16           = "\uFE0F"
)

// Scorer maps text to a label and a compound score in [-1, 1].
type Scorer interface {
	Score(text string) (Label, float64)
}

// LabelFor classifies a compound score with the ±0.05 bands.
func LabelFor(compound float64) Label {
	switch {
	case compound >= labelThreshold:
		return Positive
	case compound <= -labelThreshold:
		return Negative
	default:
		return Neutral
	}
}

var (
	mediaRegex = regexp.MustCompile(`(?i)<media omitted>`)
	tagRegex   = regexp.MustCompile(`<[^>]+>`)
	urlRegex   = regexp.MustCompile(`http\S+|www\S+`)
)

// Lexicon is a VADER scorer with the Roman Hindi table merged into its
// word list. It is not modified after construction and is safe for
// concurrent use.
type Lexicon struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewLexicon returns the VADER lexicon extended with Roman Hindi.
func NewLexicon() *Lexicon {
	return NewLexiconWith(nil)
}

// NewLexiconWith returns the built-in lexicon with extra word valences
// layered on top. Valences are on VADER's -4..+4 scale.
func NewLexiconWith(extra map[string]float64) *Lexicon {
	sia := govader.NewSentimentIntensityAnalyzer()
	for w, v := range hinglishWords {
		sia.Lexicon[w] = v
	}
	for w, v := range extra {
		sia.Lexicon[strings.ToLower(w)] = v
	}
	return &Lexicon{sia: sia}
}

// Score implements Scorer.
func (l *Lexicon) Score(text string) (Label, float64) {
	c := l.Compound(text)
	return LabelFor(c), c
}

// Compound returns VADER's compound score for the cleaned text, 0 when
// nothing is left after cleaning.
func (l *Lexicon) Compound(text string) float64 {
	clean := l.preprocess(text)
	if clean == "" {
		return 0
	}
	return l.sia.PolarityScores(clean).Compound
}

// preprocess lower-cases text, caps repeated characters at three, spells
// out emoji, and strips placeholders, tags and URLs.
func (l *Lexicon) preprocess(text string) string {
	text = strings.ToLower(text)
	text = squeezeRepeats(text, maxRepeats)
	text = l.demojize(text)
	text = mediaRegex.ReplaceAllString(text, "")
	text = tagRegex.ReplaceAllString(text, "")
	text = urlRegex.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// demojize replaces each emoji cluster with its name so the word lexicon
// scores it.
func (l *Lexicon) demojize(text string) string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if name, ok := l.emojiName(cluster, gr.Runes()); ok {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteByte(' ')
			continue
		}
		b.WriteString(cluster)
	}
	return b.String()
}

func (l *Lexicon) emojiName(cluster string, runes []rune) (string, bool) {
	if name, ok := l.sia.EmojiDict[cluster]; ok {
		return name, true
	}
	if name, ok := l.sia.EmojiDict[strings.ReplaceAll(cluster, vs16, "")]; ok {
		return name, true
	}
	if len(runes) > 1 {
		name, ok := l.sia.EmojiDict[string(runes[0])]
		return name, ok
	}
	return "", false
}

// squeezeRepeats limits runs of the same rune to limit.
func squeezeRepeats(s string, limit int) string {
	var (
		b    strings.Builder
		prev rune = -1
		run  int
	)
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run <= limit {
			b.WriteRune(r)
		}
	}
	return b.String()
}
