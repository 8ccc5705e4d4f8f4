// Package cli handles the interactive query prompt used to poke at a built lexicon
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/sevens/internal/logger"
	"github.com/bastiangx/sevens/internal/utils"
	"github.com/bastiangx/sevens/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

// wordsPerLine is how many matches are printed on one output line
const wordsPerLine = 6

// InputHandler reads queries line by line and prints what the lexicon finds.
//
// A plain line is a board query (letters, '?' or '*' wildcards). Two commands
// are understood as well:
//
//	:p <prefix>   does some word start with prefix
//	:w <word>     is word in the dictionary
type InputHandler struct {
	finder   lexicon.Finder
	maxQuery int
	noFilter bool
	in       io.Reader
	out      io.Writer
	logger   *log.Logger
	requests int
}

// NewInputHandler handles initialization of the InputHandler on stdin/stdout
func NewInputHandler(finder lexicon.Finder, maxQuery int, noFilter bool) *InputHandler {
	return &InputHandler{
		finder:   finder,
		maxQuery: maxQuery,
		noFilter: noFilter,
		in:       os.Stdin,
		out:      os.Stdout,
		logger:   logger.New("query"),
	}
}

// WithIO swaps the input and output streams
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = out
	return h
}

// WithLog sends the banner and diagnostics to w instead of stderr
func (h *InputHandler) WithLog(w io.Writer) *InputHandler {
	h.logger = logger.NewTo(w, "query")
	return h
}

// Start begins the prompt loop. It returns nil once the input is exhausted.
func (h *InputHandler) Start() error {
	h.logger.Print("sevens query prompt")
	h.logger.Print("type letters, use ? for unknown ones, press enter (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requests++

	switch {
	case strings.HasPrefix(line, ":p "):
		prefix := strings.TrimSpace(line[3:])
		fmt.Fprintf(h.out, "prefix %q: %v\n", prefix, h.finder.HasPrefix(prefix))
		return
	case strings.HasPrefix(line, ":w "):
		word := strings.TrimSpace(line[3:])
		fmt.Fprintf(h.out, "word %q: %v\n", word, h.finder.IsWord(word))
		return
	}

	if h.maxQuery > 0 && len(line) > h.maxQuery {
		h.logger.Errorf("Query too long: %s", line)
		return
	}
	if !h.noFilter && !utils.IsValidQuery(line) {
		h.logger.Warnf("Only letters and ? or * are allowed: '%s'", line)
		return
	}

	if utils.IsOnlyWildcards(line) {
		h.logger.Debugf("'%s' has no fixed letters, listing every %d letter word", line, len(line))
	}

	start := time.Now()
	words := h.finder.WordsFrom(line)
	h.logger.Debugf("Took [ %v ] for query '%s'", time.Since(start), line)

	if len(words) == 0 {
		fmt.Fprintf(h.out, "no words for '%s'\n", line)
		return
	}

	fmt.Fprintf(h.out, "%s words for '%s':\n", utils.FormatWithCommas(len(words)), line)
	for _, row := range lo.Chunk(words, wordsPerLine) {
		fmt.Fprintf(h.out, "  %s\n", strings.Join(row, "  "))
	}
}
