// Package dictionary reads word lists from plain text files, binary chunk files and
// chunk directories, and feeds them line by line to the lexicon builder.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// FileSource reads a word list from disk. The format is detected on every Each call,
// so nothing touches the filesystem until the lexicon is built.
type FileSource struct {
	Path   string
	Format FileFormat // FormatUnknown means detect
}

// Open returns a source for path with format detection.
func Open(path string) *FileSource {
	return &FileSource{Path: path}
}

// Each calls fn with every word in the file or directory.
func (s *FileSource) Each(fn func(string)) error {
	format := s.Format
	if format == FormatUnknown {
		detected, err := DetectFileFormat(s.Path)
		if err != nil {
			return err
		}
		format = detected
	}
	if err := ValidateFileFormat(s.Path, format); err != nil {
		return err
	}
	log.Debugf("Reading %s as %s", s.Path, format)

	switch format {
	case FormatText:
		return eachFileLine(s.Path, fn)
	case FormatChunk:
		return eachChunkFile(s.Path, fn)
	case FormatChunkDir:
		return eachChunkDir(s.Path, fn)
	}
	return fmt.Errorf("unsupported format %v for %s", format, s.Path)
}

// ReaderSource reads a plain text word list from any reader.
type ReaderSource struct {
	r io.Reader
}

// FromReader wraps r as a text source. It can only be consumed once.
func FromReader(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Each calls fn with every line of the reader.
func (s *ReaderSource) Each(fn func(string)) error {
	return eachLine(s.r, fn)
}

func eachLine(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading word list: %w", err)
	}
	return nil
}

func eachFileLine(path string, fn func(string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening word list: %w", err)
	}
	defer file.Close()
	return eachLine(file, fn)
}

func eachChunkFile(path string, fn func(string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", path, err)
	}
	defer file.Close()
	if err := readChunk(file, fn); err != nil {
		return fmt.Errorf("chunk %s: %w", path, err)
	}
	return nil
}

func eachChunkDir(dir string, fn func(string)) error {
	chunks, err := ListChunks(dir)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	for _, chunk := range chunks {
		if err := eachChunkFile(chunk.Filename, fn); err != nil {
			return err
		}
		log.Debugf("Loaded chunk %d: %d words", chunk.ID, chunk.WordCount)
	}
	return nil
}
