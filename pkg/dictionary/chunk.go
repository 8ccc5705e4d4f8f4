package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

// maxChunkWords is a sanity cap on the header of a single chunk file
const maxChunkWords = 1000000

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// ChunkFileName returns the canonical name of chunk id, e.g. dict_0001.bin
func ChunkFileName(id int) string {
	return fmt.Sprintf("dict_%04d.bin", id)
}

// ListChunks scans dir for chunk files, sorted by ID
func ListChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{
			ID:        chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// readChunk decodes one chunk stream and hands every word to fn. Ranks are skipped.
func readChunk(r io.Reader, fn func(string)) error {
	reader := bufio.NewReader(r)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	buf := make([]byte, 0, 64)
	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ended after %d of %d words", count, totalEntries)
				return nil
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		if cap(buf) < int(wordLen) {
			buf = make([]byte, wordLen)
		}
		buf = buf[:wordLen]
		if _, err := io.ReadFull(reader, buf); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}
		fn(string(buf))
	}
	return nil
}

// WriteChunk encodes words in the chunk layout. Ranks follow list order, starting at 1.
func WriteChunk(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > 0xFFFF {
			return fmt.Errorf("word %d is too long for a chunk entry (%d bytes)", i, len(word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		rank := uint16(min(i+1, 0xFFFF))
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteChunks splits words into chunkSize pieces and writes dict_0001.bin, dict_0002.bin, ... into dir.
// It returns the written chunk metadata.
func WriteChunks(dir string, words []string, chunkSize int) ([]ChunkInfo, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	var written []ChunkInfo
	for i, part := range lo.Chunk(words, chunkSize) {
		name := filepath.Join(dir, ChunkFileName(i+1))
		if err := writeChunkFile(name, part); err != nil {
			return written, err
		}
		written = append(written, ChunkInfo{ID: i + 1, Filename: name, WordCount: len(part)})
		log.Debugf("Wrote chunk %s with %d words", name, len(part))
	}
	return written, nil
}

func writeChunkFile(name string, words []string) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", name, err)
	}
	if err := WriteChunk(file, words); err != nil {
		file.Close()
		return fmt.Errorf("failed to write chunk file %s: %w", name, err)
	}
	return file.Close()
}
