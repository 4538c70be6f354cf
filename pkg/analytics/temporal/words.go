package temporal

import (
	"sort"
	"strings"

	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// stopwords is the common English stop-word set used for word clouds.
var stopwords = toSet(`a about above after again against all also am an and any are aren't as at
be because been before being below between both but by can can't cannot com could couldn't
did didn't do does doesn't doing don't down during each else ever few for from further get
had hadn't has hasn't have haven't having he he'd he'll he's hence her here here's hers herself
him himself his how how's however http i i'd i'll i'm i've if in into is isn't it it's its itself
just k let's like me more most mustn't my myself no nor not of off on once only or other otherwise
ought our ours ourselves out over own r same shall shan't she she'd she'll she's should shouldn't
since so some such than that that's the their theirs them themselves then there there's therefore
these they they'd they'll they're they've this those through to too under until up very was
wasn't we we'd we'll we're we've were weren't what what's when when's where where's which while
who who's whom why why's with won't would wouldn't www you you'd you'll you're you've your yours
yourself yourselves`)

func toSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(list) {
		set[w] = true
	}
	return set
}

// IsStopword reports whether w is in the stop-word set.
func IsStopword(w string) bool {
	return stopwords[w]
}

// WordCount is a token and its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MostCommonWords ranks lower-cased tokens of text messages by frequency,
// ties in first-seen order, skipping stop words.
func MostCommonWords(v timeline.View, topN int) []WordCount {
	tokens := make([]string, 0)
	for _, e := range contentEvents(v) {
		for _, w := range strings.Fields(strings.ToLower(e.Text)) {
			if !stopwords[w] {
				tokens = append(tokens, w)
			}
		}
	}
	return rank(tokens, topN)
}

// rank counts items and returns the topN by frequency, ties in first-seen order.
func rank(items []string, topN int) []WordCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, it := range items {
		if _, ok := counts[it]; !ok {
			order = append(order, it)
		}
		counts[it]++
	}
	out := make([]WordCount, 0, len(order))
	for _, it := range order {
		out = append(out, WordCount{Word: it, Count: counts[it]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if topN >= 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
