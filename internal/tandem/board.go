// Package tandem implements the two-board chess variant: spare-piece
// inventories fed by captures on the partner board, per-side countdown
// clocks, and the move_piece algorithm that ties drops, captures and
// cross-board promotion together under a single coarse lock.
package tandem

import (
	"encoding/json"
	"fmt"

	"tandemchess/internal/oracle"
)

// fiveMinutes is the starting allowance for each side's clock.
const fiveMinutes = 5 * 60 * 1000 // milliseconds

// spare inventory slot indices, in the order the wire protocol expects.
const (
	spareQueen = iota
	spareRook
	spareBishop
	spareKnight
	sparePawn
	spareCount
)

func spareIndex(k oracle.PieceKind) (int, bool) {
	switch k {
	case oracle.Queen:
		return spareQueen, true
	case oracle.Rook:
		return spareRook, true
	case oracle.Bishop:
		return spareBishop, true
	case oracle.Knight:
		return spareKnight, true
	case oracle.Pawn:
		return sparePawn, true
	default:
		return 0, false
	}
}

// Board is one of the two live chess boards in a tandem pairing: a chess
// position plus the spare-piece inventories and clock state the variant
// layers on top of it.
type Board struct {
	position oracle.Board

	whiteSpares [spareCount]int
	blackSpares [spareCount]int

	whiteTimeMs int64
	blackTimeMs int64

	turn            oracle.Color
	lastMoveCapture bool
	lastTimeSum     int64
	lastMove        string
}

// NewBoard returns a fresh board at the standard starting position with
// full clocks and empty spares.
func NewBoard() *Board {
	return &Board{
		position:    oracle.Default(),
		whiteTimeMs: fiveMinutes,
		blackTimeMs: fiveMinutes,
		turn:        oracle.White,
	}
}

// Position exposes the underlying oracle board for move validation.
func (b *Board) Position() oracle.Board { return b.position }

// SetPosition installs a new oracle board, the result of a prior
// make_move/set_piece/clear_square/null_move call.
func (b *Board) SetPosition(p oracle.Board) { b.position = p }

func (b *Board) setLastMoveCapture(capture bool) { b.lastMoveCapture = capture }

// Flagged reports whether either side has run out of time.
func (b *Board) Flagged() bool {
	return b.whiteTimeMs == 0 || b.blackTimeMs == 0
}

// ShouldUpdate reports whether the second-granularity clock display
// changed since the last call, and updates the baseline it compares
// against.
func (b *Board) ShouldUpdate() bool {
	old := b.lastTimeSum
	b.lastTimeSum = ceilSeconds(b.whiteTimeMs) + ceilSeconds(b.blackTimeMs)
	return old != b.lastTimeSum
}

func ceilSeconds(ms int64) int64 {
	return (ms + 999) / 1000
}

// SynchronizeTime deducts diffMs from whichever side is on the clock,
// never letting either clock go negative.
func (b *Board) SynchronizeTime(diffMs int64) {
	if b.turn == oracle.White {
		b.whiteTimeMs -= diffMs
	} else {
		b.blackTimeMs -= diffMs
	}
	if b.whiteTimeMs < 0 {
		b.whiteTimeMs = 0
	}
	if b.blackTimeMs < 0 {
		b.blackTimeMs = 0
	}
}

// ChangeTurn flips the side to move and records the move description
// shown to clients (e.g. "e2-e4" or "spare-d5").
func (b *Board) ChangeTurn(moveDescription string) {
	b.turn = b.turn.Other()
	b.lastMove = moveDescription
	b.ShouldUpdate()
}

func (b *Board) spareArray(c oracle.Color) *[spareCount]int {
	if c == oracle.White {
		return &b.whiteSpares
	}
	return &b.blackSpares
}

// AddPiece credits color's *partner* with a spare of kind, which is the
// bughouse convention: it is called on the board opposite the one where
// color captured, and feeds the opposite color here, since partners play
// opposite colors.
func (b *Board) AddPiece(color oracle.Color, kind oracle.PieceKind) {
	idx, ok := spareIndex(kind)
	if !ok {
		return
	}
	arr := b.spareArray(color.Other())
	arr[idx]++
}

// AddPawn credits color directly with a spare pawn, used when a
// cross-board promotion consumes one of the mover's own pieces.
func (b *Board) AddPawn(color oracle.Color) {
	b.spareArray(color)[sparePawn]++
}

// DecreaseCount spends one spare of kind from color's inventory,
// reporting false if none was available.
func (b *Board) DecreaseCount(color oracle.Color, kind oracle.PieceKind) bool {
	idx, ok := spareIndex(kind)
	if !ok {
		return false
	}
	arr := b.spareArray(color)
	if arr[idx] <= 0 {
		return false
	}
	arr[idx]--
	return true
}

// snapshot is the wire shape for one board, matching the JSON keys the
// client expects.
type snapshot struct {
	FEN             string `json:"fen"`
	LastMoveCapture bool   `json:"last_move_capture"`
	WhiteSpares     [5]int `json:"white_sp"`
	BlackSpares     [5]int `json:"black_sp"`
	WhiteTime       string `json:"white_time"`
	BlackTime       string `json:"black_time"`
	LastMove        string `json:"last_move"`
}

func clockString(ms int64) string {
	seconds := ceilSeconds(ms)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// String renders the board as the compact JSON object clients parse out
// of the outer tandem snapshot.
func (b *Board) String() string {
	s := snapshot{
		FEN:             b.position.FEN(),
		LastMoveCapture: b.lastMoveCapture,
		WhiteSpares:     b.whiteSpares,
		BlackSpares:     b.blackSpares,
		WhiteTime:       clockString(b.whiteTimeMs),
		BlackTime:       clockString(b.blackTimeMs),
		LastMove:        b.lastMove,
	}
	out, err := json.Marshal(s)
	if err != nil {
		// snapshot contains only strings, bools and fixed arrays; it
		// cannot fail to marshal.
		panic(err)
	}
	return string(out)
}
