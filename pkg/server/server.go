package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/sevens/internal/utils"
	"github.com/bastiangx/sevens/pkg/config"
	"github.com/bastiangx/sevens/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers lexicon queries over msgpack
type Server struct {
	finder  lexicon.Finder
	config  config.ServerConfig
	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	served  int
}

// NewServer creates a server on stdin/stdout
func NewServer(finder lexicon.Finder, cfg config.ServerConfig) *Server {
	return NewServerIO(finder, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on the given streams
func NewServerIO(finder lexicon.Finder, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		finder:  finder,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
	}
}

// Start processes requests until the input closes
func (s *Server) Start() error {
	log.Debug("Starting msgpack server")

	for {
		var req QueryRequest
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.served)
				return nil
			}
			// a broken frame desyncs the stream, nothing after it can be trusted
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.served++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req QueryRequest) {
	if req.Op == OpStats {
		st := s.finder.Stats()
		s.send(StatsResponse{
			ID:        req.ID,
			Words:     st.Words,
			Buckets:   st.Buckets,
			MinLength: st.MinLength,
			Lengths:   st.Lengths,
		})
		return
	}

	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	if s.config.MaxQuery > 0 && len(req.Query) > s.config.MaxQuery {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d", s.config.MaxQuery), 400)
		return
	}

	start := time.Now()
	resp := QueryResponse{ID: req.ID}

	switch req.Op {
	case OpAnagrams:
		resp.Words = s.finder.ExactAnagramsOf(req.Query)
	case OpMatch:
		resp.Words = s.finder.MatchesOf(req.Query)
	case OpWords, "":
		if !utils.IsValidQuery(req.Query) {
			log.Debugf("Query %q has symbols, expecting no matches", req.Query)
		}
		resp.Words = s.finder.WordsFrom(req.Query)
	case OpPrefix:
		resp.OK = s.finder.HasPrefix(req.Query)
	case OpWord:
		resp.OK = s.finder.IsWord(req.Query)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
		return
	}

	if limit := s.config.MaxResults; limit > 0 && len(resp.Words) > limit {
		resp.Words = resp.Words[:limit]
		resp.Truncated = true
	}
	resp.Count = len(resp.Words)
	resp.TimeTaken = time.Since(start).Microseconds()

	log.Debugf("op=%s q=%q -> %d words in %dus", req.Op, req.Query, resp.Count, resp.TimeTaken)
	s.send(resp)
}

// send encodes a response and flushes it so the client sees it immediately
func (s *Server) send(v any) {
	if err := s.encoder.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(QueryError{ID: id, Error: message, Code: code})
}
