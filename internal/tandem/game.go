package tandem

import (
	"encoding/json"
	"sync"
	"time"

	"tandemchess/internal/move"
	"tandemchess/internal/oracle"
)

// Game is the shared, lock-guarded state for one tandem pairing: two
// boards plus the started/finished lifecycle and clock synchronization
// point. Every exported method takes the single coarse lock itself, so
// callers never need to reason about lock ordering to read or mutate it
// — only the hub's own client registry lock is separate, and it is
// always acquired after this one is released.
type Game struct {
	mu sync.RWMutex

	boards   [2]*Board
	started  bool
	finished bool
	lastSync int64

	now func() int64
}

// Option configures a Game at construction.
type Option func(*Game)

// WithClock overrides the millisecond clock source, for deterministic
// tests.
func WithClock(now func() int64) Option {
	return func(g *Game) { g.now = now }
}

// New returns a fresh, unstarted tandem pairing.
func New(opts ...Option) *Game {
	g := &Game{
		boards: [2]*Board{NewBoard(), NewBoard()},
		now:    func() int64 { return time.Now().UnixMilli() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type outerSnapshot struct {
	Valid  bool   `json:"valid"`
	Board1 string `json:"board_1"`
	Board2 string `json:"board_2"`
}

// Snapshot renders the full tandem state as the JSON payload broadcast
// to clients. valid flags whether the triggering client move was
// accepted.
func (g *Game) Snapshot(valid bool) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := outerSnapshot{
		Valid:  valid,
		Board1: g.boards[0].String(),
		Board2: g.boards[1].String(),
	}
	b, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Reset returns both boards to a fresh starting position and clears the
// started/finished lifecycle.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.boards = [2]*Board{NewBoard(), NewBoard()}
	g.started = false
	g.finished = false
	g.lastSync = 0
}

// ShouldUpdate synchronizes the clocks and reports whether either
// board's displayed time changed, which is the hub's signal to
// broadcast a clock tick.
func (g *Game) ShouldUpdate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return false
	}
	g.synchronizeTimeLocked()

	u0 := g.boards[0].ShouldUpdate()
	u1 := g.boards[1].ShouldUpdate()
	return u0 || u1
}

func (g *Game) synchronizeTimeLocked() {
	if !g.started {
		return
	}
	now := g.now()
	if g.lastSync == 0 {
		g.lastSync = now
	}
	diff := now - g.lastSync
	if diff < 0 {
		diff = 0
	}
	g.lastSync = now

	for _, b := range g.boards {
		b.SynchronizeTime(diff)
		if b.Flagged() {
			g.finished = true
		}
	}
}

// MovePiece applies a parsed client move to the tandem pairing, taking
// the write lock for its entire duration. It returns false for every
// rejection path (bad board number, out-of-turn, illegal move, spent
// spare, contact-drop-into-mate, and so on) per the wire protocol's
// "reject silently" contract — no error ever reaches the caller.
func (g *Game) MovePiece(tm move.TandemMove) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.synchronizeTimeLocked()
	if g.finished {
		return false
	}
	if tm.Board != 1 && tm.Board != 2 {
		return false
	}

	bInd := tm.Board - 1
	oInd := (bInd + 1) % 2
	board := g.boards[bInd]
	other := g.boards[oInd]
	pos := board.position

	if pos.SideToMove() != tm.Color {
		return false
	}

	target, ok := oracle.ParseSquare(tm.Target)
	if !ok {
		return false
	}
	if victim, ok := pos.PieceOn(target); ok && victim.Kind == oracle.King {
		return false
	}

	if tm.IsDrop() {
		ok := g.applyDrop(board, pos, tm, target)
		if ok {
			g.started = true
		}
		return ok
	}

	ok = g.applyBoardMove(board, other, pos, tm, target)
	if ok {
		g.started = true
	}
	return ok
}

func (g *Game) applyDrop(board *Board, pos oracle.Board, tm move.TandemMove, target oracle.Square) bool {
	if _, occupied := pos.PieceOn(target); occupied {
		return false
	}

	color, kind, ok := parseDropSpec(tm.Piece)
	if !ok {
		return false
	}
	if kind == oracle.Pawn && (target.Rank == 0 || target.Rank == 7) {
		return false
	}

	placed, ok := pos.SetPiece(oracle.Piece{Kind: kind, Color: color}, target)
	if !ok {
		return false
	}
	flipped, ok := placed.NullMove()
	if !ok {
		// Dropping here leaves the dropper's own king in check.
		return false
	}
	if isMate(flipped, kind, target, color) {
		return false
	}
	if !board.DecreaseCount(color, kind) {
		return false
	}

	board.SetPosition(flipped)
	board.ChangeTurn("spare-" + tm.Target)
	return true
}

func parseDropSpec(spec string) (oracle.Color, oracle.PieceKind, bool) {
	if len(spec) != 2 {
		return 0, 0, false
	}
	var color oracle.Color
	switch spec[0] {
	case 'w':
		color = oracle.White
	case 'b':
		color = oracle.Black
	default:
		return 0, 0, false
	}
	var kind oracle.PieceKind
	switch spec[1] {
	case 'P':
		kind = oracle.Pawn
	case 'N':
		kind = oracle.Knight
	case 'B':
		kind = oracle.Bishop
	case 'R':
		kind = oracle.Rook
	case 'Q':
		kind = oracle.Queen
	default:
		return 0, 0, false
	}
	return color, kind, true
}

// isMate reports whether after is checkmate delivered by a piece of kind
// landing on target, moved by mover, close enough to count: a Knight at
// any range, or any other piece within Chebyshev distance 1 of the
// mated king. It gates both the anti-contact-drop-mate rule (a drop may
// not deliver a close-range mate) and whether an ordinary move's
// checkmate latches the game as finished — a far-range mate (e.g. a
// queen or rook delivering mate from across the board) does not latch,
// since the variant considers it potentially defusable by a drop on the
// other board.
func isMate(after oracle.Board, kind oracle.PieceKind, target oracle.Square, mover oracle.Color) bool {
	if after.Status() != oracle.Checkmate {
		return false
	}
	if kind == oracle.Knight {
		return true
	}
	kingSq, ok := after.KingSquare(mover.Other())
	if !ok {
		return false
	}
	return chebyshev(kingSq, target) <= 1
}

func chebyshev(a, b oracle.Square) int8 {
	df := absInt8(a.File - b.File)
	dr := absInt8(a.Rank - b.Rank)
	if df > dr {
		return df
	}
	return dr
}

func absInt8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

func (g *Game) applyBoardMove(board, other *Board, pos oracle.Board, tm move.TandemMove, target oracle.Square) bool {
	source, ok := oracle.ParseSquare(tm.Source)
	if !ok {
		return false
	}
	mover, ok := pos.PieceOn(source)
	if !ok {
		return false
	}

	isPromotion := mover.Kind == oracle.Pawn && (target.Rank == 0 || target.Rank == 7)

	var promotionKind *oracle.PieceKind
	promoSq, promoSqOK := oracle.ParseSquare(tm.Promo)
	if isPromotion && promoSqOK {
		if otherColor, ok := other.position.ColorOn(promoSq); ok && otherColor == tm.Color {
			if pc, ok := other.position.PieceOn(promoSq); ok {
				k := pc.Kind
				promotionKind = &k
			}
		}
	}

	chessMove := oracle.Move{From: source, To: target, Promotion: promotionKind}
	if !pos.Legal(chessMove) {
		return false
	}

	if isPromotion {
		cleared, ok := other.position.ClearSquare(promoSq)
		if !ok {
			return false
		}
		if _, ok := cleared.NullMove(); !ok {
			return false
		}
		other.SetPosition(cleared)
		other.AddPawn(tm.Color)
	}

	if victim, captured := pos.PieceOn(target); captured {
		other.AddPiece(tm.Color, victim.Kind)
		board.setLastMoveCapture(true)
	} else {
		board.setLastMoveCapture(false)
	}

	board.ChangeTurn(tm.Source + "-" + tm.Target)

	next, ok := pos.MakeMove(chessMove)
	if !ok {
		return false
	}
	board.SetPosition(next)

	if isMate(next, mover.Kind, target, tm.Color) {
		g.finished = true
	}
	return true
}
