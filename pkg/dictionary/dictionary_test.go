package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, each func(func(string)) error) []string {
	t.Helper()
	var lines []string
	require.NoError(t, each(func(l string) { lines = append(lines, l) }))
	return lines
}

func TestChunkRoundTrip(t *testing.T) {
	words := []string{"pickles", "parsley", "seventh", "a", ""}

	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, words))

	var got []string
	require.NoError(t, readChunk(&buf, func(w string) { got = append(got, w) }))
	assert.Equal(t, words, got)
}

func TestReadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(7)))
	buf.WriteString("pic")

	err := readChunk(&buf, func(string) {})
	assert.ErrorContains(t, err, "failed to read word")
}

func TestReadChunkBadHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(-1)))

	assert.Error(t, readChunk(&buf, func(string) {}))
	assert.Error(t, readChunk(bytes.NewReader(nil), func(string) {}))
}

func TestOpenTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("pickles\nParsley\n\nseventh"), 0644))

	src := Open(path)
	assert.Equal(t, []string{"pickles", "Parsley", "", "seventh"}, collect(t, src.Each))
}

func TestOpenChunkFileAndDir(t *testing.T) {
	dir := t.TempDir()
	words := []string{"apple", "grape", "peach", "pickles", "parsley"}

	chunks, err := WriteChunks(dir, words, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "dict_0003.bin", filepath.Base(chunks[2].Filename))
	assert.Equal(t, 1, chunks[2].WordCount)

	listed, err := ListChunks(dir)
	require.NoError(t, err)
	assert.Equal(t, chunks, listed)

	assert.Equal(t, words, collect(t, Open(dir).Each))
	assert.Equal(t, []string{"peach", "pickles"}, collect(t, Open(chunks[1].Filename).Each))
}

func TestWriteChunksInvalidSize(t *testing.T) {
	_, err := WriteChunks(t.TempDir(), []string{"a"}, 0)
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	err := Open(filepath.Join(t.TempDir(), "nope.txt")).Each(func(string) {})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmptyChunkDir(t *testing.T) {
	err := Open(t.TempDir()).Each(func(string) {})
	assert.ErrorContains(t, err, "no chunk files")
}

func TestFromReader(t *testing.T) {
	src := FromReader(strings.NewReader("one\ntwo\r\nthree\n"))
	assert.Equal(t, []string{"one", "two", "three"}, collect(t, src.Each))
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "words.txt")
	bin := filepath.Join(dir, "dict_0001.bin")
	bare := filepath.Join(dir, "words")
	require.NoError(t, os.WriteFile(txt, []byte("a\n"), 0644))
	require.NoError(t, os.WriteFile(bare, []byte("a\n"), 0644))
	_, err := WriteChunks(dir, []string{"a"}, 10)
	require.NoError(t, err)

	testCases := []struct {
		path     string
		expected FileFormat
	}{
		{txt, FormatText},
		{bare, FormatText},
		{bin, FormatChunk},
		{dir, FormatChunkDir},
	}
	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			got, err := DetectFileFormat(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.NoError(t, ValidateFileFormat(tc.path, tc.expected))
		})
	}

	_, err = DetectFileFormat(filepath.Join(dir, "missing"))
	assert.Error(t, err)
	assert.Error(t, ValidateFileFormat(txt, FormatChunk))
	assert.Error(t, ValidateFileFormat(txt, FormatChunkDir))
}
