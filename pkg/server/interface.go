/*
Package server implements msgpack IPC for lexicon queries.

The server reads msgpack encoded requests from stdin and writes one msgpack response per
request to stdout. It is meant to sit behind an editor plugin or a board bot that keeps a
single process alive instead of rebuilding the index for every question.

# IPC

Every request carries an ID, an op and a query string:

	{"id": "q1", "op": "words", "q": "csipl?k"}

The response echoes the ID, lists the words and reports the elapsed microseconds:

	{"id": "q1", "w": ["pickles"], "c": 1, "t": 41}

Boolean ops (prefix, word) fill "ok" instead of "w":

	{"id": "q2", "op": "prefix", "q": "pick"}
	{"id": "q2", "ok": true, "t": 3}

# Ops

	anagrams  exact anagrams of q
	match     multiset match of q, '?' and '*' are wildcards
	words     anagrams or match depending on wildcards in q
	prefix    whether some word starts with q
	word      whether q is a word
	stats     index counters, q is ignored

Rejected requests get a QueryError with a status code and the loop keeps going.
A frame that does not decode at all ends the loop after one error reply.
*/
package server

// Op names accepted in QueryRequest.Op
const (
	OpAnagrams = "anagrams"
	OpMatch    = "match"
	OpWords    = "words"
	OpPrefix   = "prefix"
	OpWord     = "word"
	OpStats    = "stats"
)

// QueryRequest - minimal lexicon request
type QueryRequest struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Query string `msgpack:"q"`
}

// QueryResponse - lexicon response
type QueryResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w,omitempty"`
	Count     int      `msgpack:"c"`
	OK        bool     `msgpack:"ok,omitempty"`
	Truncated bool     `msgpack:"tr,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// StatsResponse - index counters
type StatsResponse struct {
	ID        string `msgpack:"id"`
	Words     int    `msgpack:"words"`
	Buckets   int    `msgpack:"buckets"`
	MinLength int    `msgpack:"min_length"`
	Lengths   []int  `msgpack:"lengths"`
}

// QueryError holds basic error information for rejected requests
type QueryError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
