package chat

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
)

const sampleChat = "01/01/24, 10:00 am - Alice: hi\n01/01/24, 10:05 am - Bob: hello\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		text     string
		encoding string
	}{
		{"utf-8", []byte("héllo"), "héllo", "utf-8"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "hi"...), "hi", "utf-8"},
		{"utf-16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", "utf-16"},
		{"utf-16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", "utf-16"},
		{"latin-1", []byte{'c', 'a', 'f', 0xE9}, "café", "latin-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, enc := Decode(tc.raw)
			assert.Equal(t, tc.text, text)
			assert.Equal(t, tc.encoding, enc)
		})
	}
}

func TestReadSource_PlainText(t *testing.T) {
	src, err := ReadSource(writeFile(t, "chat.txt", []byte(sampleChat)))
	require.NoError(t, err)
	assert.Equal(t, sampleChat, src.Text)
	assert.Equal(t, "utf-8", src.Encoding)
	assert.Empty(t, src.Member)
}

func TestReadSource_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sampleChat))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	src, err := ReadSource(writeFile(t, "chat.txt.gz", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, sampleChat, src.Text)
}

func TestReadSource_Zstd(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sampleChat))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	src, err := ReadSource(writeFile(t, "chat.txt.zst", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, sampleChat, src.Text)
}

func TestReadSource_ZipPrefersChatMember(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"a_notes.txt": "not the chat",
		"_chat.txt":   sampleChat,
		"IMG-001.jpg": "binary",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	src, err := ReadSource(writeFile(t, "export.zip", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "_chat.txt", src.Member)
	assert.Equal(t, sampleChat, src.Text)
}

func TestReadSource_ZipWithoutTranscript(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("photo.jpg")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadSource(writeFile(t, "export.zip", buf.Bytes()))
	require.Error(t, err)
	assert.True(t, chaterrors.IsUnsupportedSource(err))
}

func TestReadSource_CorruptGzip(t *testing.T) {
	_, err := ReadSource(writeFile(t, "chat.gz", []byte("not gzip")))
	require.Error(t, err)
	assert.True(t, chaterrors.IsUnsupportedSource(err))
}

func TestReadSource_Missing(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
