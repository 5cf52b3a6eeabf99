// Package move turns a raw client text frame into a structured instruction
// for the tandem engine. Parsing never fails loudly: anything that isn't a
// recognized shape comes back as Kind == Invalid and the caller drops the
// frame on the floor, per the wire protocol's "malformed input is ignored"
// rule.
package move

import (
	"strconv"
	"strings"

	"tandemchess/internal/oracle"
)

// Kind classifies a parsed client frame.
type Kind int

const (
	Invalid Kind = iota
	Reset
	Move
)

// resetLiteral is the exact, case-sensitive text that requests a full
// game reset instead of a move.
const resetLiteral = "Reset Game"

// TandemMove is the parsed form of a semicolon-delimited move frame:
// "<board>;<color>;<source>;<target>;<piece>;<promotion>".
type TandemMove struct {
	Board  int          // 1 or 2
	Color  oracle.Color // side making the move, as claimed by the client
	Source string       // "spare" or algebraic square, e.g. "e2"
	Target string       // algebraic square, e.g. "e4"
	Piece  string       // two-char drop spec, e.g. "wQ"; empty for board moves
	Promo  string       // algebraic square on the *other* board, or ""
}

// IsDrop reports whether this move places a spare piece rather than
// relocating one already on the board.
func (m TandemMove) IsDrop() bool {
	return m.Source == "spare"
}

// Parsed is the result of parsing one raw client frame.
type Parsed struct {
	Kind Kind
	Move TandemMove
}

// Parse decodes a raw client text frame. Any shape other than the literal
// reset string or a well-formed six-field move yields Kind == Invalid.
func Parse(raw string) Parsed {
	if raw == resetLiteral {
		return Parsed{Kind: Reset}
	}

	fields := strings.Split(raw, ";")
	if len(fields) != 6 {
		return Parsed{Kind: Invalid}
	}

	board, err := strconv.Atoi(fields[0])
	if err != nil {
		board = 0
	}
	if board != 1 && board != 2 {
		return Parsed{Kind: Invalid}
	}

	color := oracle.Black
	if fields[1] == "W" {
		color = oracle.White
	}

	tm := TandemMove{
		Board:  board,
		Color:  color,
		Source: fields[2],
		Target: fields[3],
		Piece:  fields[4],
		Promo:  fields[5],
	}
	return Parsed{Kind: Move, Move: tm}
}
