package report

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/otherjamesbrown/chatpulse/pkg/buildinfo"
	"github.com/otherjamesbrown/chatpulse/pkg/timeline"
)

// Report is the result tree. Analytics is keyed by author name plus Overall.
type Report struct {
	Meta      Meta                `json:"meta"`
	Analytics map[string]*Section `json:"analytics"`
}

// Meta describes the run and the transcript it read.
type Meta struct {
	RunID       string         `json:"run_id"`
	Generator   buildinfo.Info `json:"generator"`
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source,omitempty"`
	Encoding    string         `json:"encoding,omitempty"`
	// Digest is the BLAKE2b-256 of the raw transcript bytes.
	Digest       string     `json:"digest,omitempty"`
	Events       int        `json:"events"`
	Skipped      int        `json:"skipped_headers"`
	Participants int        `json:"participants"`
	Users        []string   `json:"users"`
	Start        *time.Time `json:"start,omitempty"`
	End          *time.Time `json:"end,omitempty"`
}

// Overall returns the whole-conversation section.
func (r *Report) Overall() *Section {
	return r.Analytics[timeline.Overall]
}

// Section returns one user's section.
func (r *Report) Section(user string) (*Section, bool) {
	s, ok := r.Analytics[user]
	return s, ok
}

// Stamp records where the transcript came from.
func (r *Report) Stamp(source, encoding string, raw []byte, skipped int) {
	r.Meta.Source = source
	r.Meta.Encoding = encoding
	r.Meta.Skipped = skipped
	if raw != nil {
		r.Meta.Digest = Fingerprint(raw)
	}
}

// Fingerprint returns the hex BLAKE2b-256 digest of raw.
func Fingerprint(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
