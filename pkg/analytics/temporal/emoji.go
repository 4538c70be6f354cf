package temporal

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader/data"
	"github.com/rivo/uniseg"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// EmojiCount is an emoji grapheme cluster and its frequency.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// TopEmojis ranks the emoji used in v's messages.
func TopEmojis(v timeline.View, topN int) []EmojiCount {
	found := make([]string, 0)
	for e := range v.Participants().Events() {
		found = append(found, Emojis(e.Text)...)
	}
	ranked := rank(found, topN)
	out := make([]EmojiCount, len(ranked))
	for i, r := range ranked {
		out[i] = EmojiCount{Emoji: r.Word, Count: r.Count}
	}
	return out
}

// Emojis returns the emoji grapheme clusters of text in order. Skin tones,
// ZWJ sequences and flags stay one cluster. A cluster counts when it is a
// known emoji and renders as one: wide by Emoji_Presentation, or forced
// with VS16 or a keycap. Text-style symbols such as ⏱ are skipped.
func Emojis(text string) []string {
	out := make([]string, 0)
	known := emojiSet()
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		rs := g.Runes()
		if !isKnownEmoji(known, g.Str(), rs) {
			continue
		}
		if g.Width() >= 2 || hasPresentationSuffix(rs) {
			out = append(out, g.Str())
		}
	}
	return out
}

const (
	emojiAsset   = "rawdata/emojiUTF8Lexicon.txt"
	variation16  = '\uFE0F'
	combiningCap = '\u20E3'
)

// emojiSet holds every emoji sequence in the VADER emoji table.
var emojiSet = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{}, 4096)
	for line := range strings.Lines(string(data.MustAsset(emojiAsset))) {
		seq, _, _ := strings.Cut(strings.TrimRight(line, "\r\n"), "\t")
		if seq != "" {
			set[seq] = struct{}{}
		}
	}
	return set
})

func isKnownEmoji(known map[string]struct{}, cluster string, rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	if _, ok := known[cluster]; ok {
		return true
	}
	if _, ok := known[strings.ReplaceAll(cluster, string(variation16), "")]; ok {
		return true
	}
	_, ok := known[string(rs[0])]
	return ok
}

func hasPresentationSuffix(rs []rune) bool {
	for _, r := range rs[1:] {
		if r == variation16 || r == combiningCap {
			return true
		}
	}
	return false
}
