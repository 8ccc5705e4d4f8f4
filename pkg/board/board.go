// Package board fetches 7x7 puzzle boards and keeps a JSON copy of each one on disk.
//
// A board is seven columns of seven letters. Letters are consumed from the bottom of a
// column, so the query for the lexicon is the bottom letter of every column.
package board

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Size is the number of rows and columns on a board.
const Size = 7

// ErrBadBoard is returned when a board payload does not describe a 7x7 grid.
var ErrBadBoard = errors.New("malformed board")

// Board holds one day's letters. Columns[c][0] is the bottom letter of column c.
type Board struct {
	Columns      [Size][Size]byte `json:"columns"`
	ColumnBottom [Size]int        `json:"column_bottom"`
	Date         string           `json:"date"`
}

// Today returns the local date in the YYYYMMDD layout used for board names.
func Today() string {
	return time.Now().Format("20060102")
}

// FromRows builds a board from rows listed top first, as served by the game.
func FromRows(date string, rows []string) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrBadBoard, Size, len(rows))
	}

	b := &Board{Date: date}
	for r, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d letters", ErrBadBoard, r, len(row))
		}
		height := Size - 1 - r
		row = strings.ToLower(row)
		for c := 0; c < Size; c++ {
			b.Columns[c][height] = row[c]
		}
	}
	return b, nil
}

// Get returns the letter offset rows above the current bottom of col.
func (b *Board) Get(col, offset int) (byte, bool) {
	if col < 0 || col >= Size || offset < 0 {
		return 0, false
	}
	r := b.ColumnBottom[col] + offset
	if r >= Size {
		return 0, false
	}
	return b.Columns[col][r], true
}

// Available returns the bottom letter of every column. Exhausted columns read as '?'.
func (b *Board) Available() string {
	var sb strings.Builder
	for c := 0; c < Size; c++ {
		if l, ok := b.Get(c, 0); ok {
			sb.WriteByte(l)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Rows renders the grid top row first, the inverse of FromRows.
func (b *Board) Rows() []string {
	rows := make([]string, Size)
	for r := 0; r < Size; r++ {
		row := make([]byte, Size)
		for c := 0; c < Size; c++ {
			row[c] = b.Columns[c][Size-1-r]
		}
		rows[r] = string(row)
	}
	return rows
}

func (b *Board) String() string {
	return fmt.Sprintf("%s\n%s", b.Date, strings.Join(b.Rows(), "\n"))
}
