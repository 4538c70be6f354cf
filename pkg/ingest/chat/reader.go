package chat

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
)

// maxSourceBytes bounds how much of a single transcript is read into memory.
const maxSourceBytes = 512 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source is a transcript read from disk, decoded to text.
type Source struct {
	Path string
	// Member is the archive entry the text came from, if any.
	Member string
	// Encoding names the decoder that produced Text.
	Encoding string
	Raw      []byte
	Text     string
}

// ReadSource loads a transcript file. Zip exports, gzip and zstd files are
// unpacked; the bytes are then decoded as UTF-8, UTF-16 or Latin-1.
func ReadSource(path string) (*Source, error) {
	src := &Source{Path: path}

	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		raw, src.Member, err = readZip(path)
	case ".gz":
		raw, err = readCompressed(path, func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		})
	case ".zst", ".zstd":
		raw, err = readCompressed(path, func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		})
	default:
		raw, err = readLimited(path)
	}
	if err != nil {
		return nil, err
	}

	src.Raw = raw
	src.Text, src.Encoding = Decode(raw)
	return src, nil
}

// Decode converts transcript bytes to text, trying UTF-8, then UTF-16, then
// Latin-1. Latin-1 accepts every byte sequence so Decode never fails.
func Decode(raw []byte) (text, encoding string) {
	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), "utf-8"
	}
	if looksUTF16(raw) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, _, err := transform.Bytes(dec, raw); err == nil {
			return string(out), "utf-16"
		}
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return string(raw), "binary"
	}
	return string(out), "latin-1"
}

func looksUTF16(raw []byte) bool {
	if len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF)) {
		return true
	}
	if len(raw) < 2 || len(raw)%2 != 0 {
		return false
	}
	zeros := bytes.Count(raw, []byte{0})
	return zeros*4 >= len(raw)
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()
	return readAll(f)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	if len(data) > maxSourceBytes {
		return nil, fmt.Errorf("%w: transcript larger than %d bytes", chaterrors.ErrValidation, maxSourceBytes)
	}
	return data, nil
}

func readCompressed(path string, open func(io.Reader) (io.ReadCloser, error)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	rc, err := open(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", chaterrors.ErrUnsupportedSource, filepath.Base(path), err)
	}
	defer rc.Close()
	return readAll(rc)
}

// readZip extracts the chat text from an export archive. Exports name the
// transcript "_chat.txt" or "WhatsApp Chat with X.txt"; the former wins,
// otherwise the first .txt entry by name.
func readZip(path string) ([]byte, string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", chaterrors.ErrUnsupportedSource, filepath.Base(path), err)
	}
	defer zr.Close()

	candidates := make([]*zip.File, 0)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return nil, "", fmt.Errorf("%w: %s contains no .txt transcript", chaterrors.ErrUnsupportedSource, filepath.Base(path))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ci := strings.HasSuffix(candidates[i].Name, "_chat.txt")
		cj := strings.HasSuffix(candidates[j].Name, "_chat.txt")
		if ci != cj {
			return ci
		}
		return candidates[i].Name < candidates[j].Name
	})

	member := candidates[0]
	rc, err := member.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", member.Name, err)
	}
	defer rc.Close()

	data, err := readAll(rc)
	if err != nil {
		return nil, "", err
	}
	return data, member.Name, nil
}
