// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the sevens CLI, a solver companion for the daily 7x7 word game.

Note: This is a BETA release. APIs and functionality may rapidly change.

sevens loads a word list into an in-memory lexicon and answers board queries
against it: exact anagrams of a set of letters, and wildcard matches where '?'
(or '*') stands for any single letter. Boards are fetched from the game server
and cached as JSON so a given day is only downloaded once.

# Usage

Fetch today's board, or the board for a specific date:

	sevens fetch
	sevens fetch 20240312

Fetch a board and list the words its bottom letters can make:

	sevens solve --dict-path resources/7x7-word-list-sevens-only.txt -w 7

Query the lexicon interactively:

	sevens query

Run the MessagePack IPC server on stdin/stdout:

	sevens serve

Convert a text word list into binary chunk files:

	sevens pack data/

# Configuration

Runtime configuration lives in a TOML file inside the platform config dir
(or the file passed with --config). It is created with defaults when missing:

	[dict]
	path = "resources/7x7-word-list-sevens-only.txt"
	min_length = 7
	quiet = false
	chunk_size = 10000

	[board]
	cache_dir = "boards"
	base_url = "https://7x7.game/games"
	timeout_seconds = 10

	[server]
	max_query = 16
	max_results = 256

Flags override config values for the current run only.

# Word lists

The dictionary path may point at a plain text file with one word per line,
a single dict_NNNN.bin chunk file, or a directory of chunk files. Lines are
trimmed and lowercased and anything shorter than the minimum length is dropped.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing included in responses.

	{"id": "q1", "op": "words", "q": "csipl?k"}
	{"id": "q1", "w": ["pickles"], "c": 1, "t": 12}

	{"id": "q2", "op": "prefix", "q": "pick"}
	{"id": "q2", "ok": true, "t": 3}

Malformed requests get an error message back:

	{"id": "q3", "e": "missing 'q' parameter", "c": 400}

# Command Line Flags

Global flags shared by every command:

	--config string
	    Path to a config file (default [ConfigDir]/config.toml)
	-d, --debug
	    Enable debug mode with detailed logging
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/sevens/internal/logger"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "sevens"
	gh      = "https://github.com/bastiangx/sevens"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires the command tree; every command lives in commands.go.
func main() {
	sigHandler()

	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(wordList string, words int) {
	l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "  sevens   ")
	fmt.Fprintln(os.Stderr, "===========")
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("word list: ( %s )", wordList)
	l.Infof("words: [ %d ]", words)
	l.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
