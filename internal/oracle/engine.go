package oracle

// position is the concrete, mailbox-array Board implementation. It backs
// every chess rule query and transform the tandem engine needs; nothing
// outside this package ever looks at its fields directly.
type position struct {
	// board[file][rank], nil entry means the square is empty.
	board [8][8]*Piece
	side  Color

	castleWK, castleWQ bool
	castleBK, castleBQ bool

	// epFile/epRank mark the square a pawn can capture en passant onto,
	// or epFile == -1 when no such square exists.
	epFile int8
	epRank int8
}

func defaultPosition() *position {
	p := &position{epFile: -1}
	back := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := int8(0); f < 8; f++ {
		p.set(NewSquare(f, 0), Piece{Kind: back[f], Color: White})
		p.set(NewSquare(f, 1), Piece{Kind: Pawn, Color: White})
		p.set(NewSquare(f, 6), Piece{Kind: Pawn, Color: Black})
		p.set(NewSquare(f, 7), Piece{Kind: back[f], Color: Black})
	}
	p.side = White
	p.castleWK, p.castleWQ = true, true
	p.castleBK, p.castleBQ = true, true
	return p
}

func (p *position) clone() *position {
	np := *p
	return &np
}

func (p *position) at(sq Square) *Piece {
	return p.board[sq.File][sq.Rank]
}

func (p *position) set(sq Square, pc Piece) {
	c := pc
	p.board[sq.File][sq.Rank] = &c
}

func (p *position) clear(sq Square) {
	p.board[sq.File][sq.Rank] = nil
}

func (p *position) SideToMove() Color { return p.side }

func (p *position) PieceOn(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	pc := p.at(sq)
	if pc == nil {
		return Piece{}, false
	}
	return *pc, true
}

func (p *position) ColorOn(sq Square) (Color, bool) {
	pc, ok := p.PieceOn(sq)
	if !ok {
		return 0, false
	}
	return pc.Color, true
}

func (p *position) KingSquare(c Color) (Square, bool) {
	for f := int8(0); f < 8; f++ {
		for r := int8(0); r < 8; r++ {
			sq := NewSquare(f, r)
			if pc := p.at(sq); pc != nil && pc.Kind == King && pc.Color == c {
				return sq, true
			}
		}
	}
	return Square{}, false
}

func (p *position) Status() Status {
	side := p.side
	inCheck := squareAttacked(p, kingSquareOrPanic(p, side), side.Other())
	if p.hasAnyLegalMove(side) {
		if inCheck {
			return Check
		}
		return Ongoing
	}
	if inCheck {
		return Checkmate
	}
	return Stalemate
}

func kingSquareOrPanic(p *position, c Color) Square {
	sq, ok := p.KingSquare(c)
	if !ok {
		// Kings are immortal and placed at construction; reaching this
		// means a programmer invariant was violated elsewhere.
		panic("oracle: no king on board for " + c.String())
	}
	return sq
}

func (p *position) hasAnyLegalMove(side Color) bool {
	for f := int8(0); f < 8; f++ {
		for r := int8(0); r < 8; r++ {
			from := NewSquare(f, r)
			pc := p.at(from)
			if pc == nil || pc.Color != side {
				continue
			}
			for _, m := range p.pseudoMoves(from) {
				if p.leavesKingSafe(m, side) {
					return true
				}
			}
		}
	}
	return false
}

// leavesKingSafe reports whether applying m keeps side's king out of check.
func (p *position) leavesKingSafe(m Move, side Color) bool {
	next := p.clone()
	next.applyMove(m)
	kingSq, ok := next.KingSquare(side)
	if !ok {
		return false
	}
	return !squareAttacked(next, kingSq, side.Other())
}

func (p *position) Legal(m Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	pc := p.at(m.From)
	if pc == nil || pc.Color != p.side {
		return false
	}
	found := false
	for _, cand := range p.pseudoMoves(m.From) {
		if cand.To != m.To {
			continue
		}
		if !samePromotion(cand.Promotion, m.Promotion) {
			continue
		}
		found = true
		break
	}
	if !found {
		return false
	}
	return p.leavesKingSafe(m, p.side)
}

func samePromotion(a, b *PieceKind) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (p *position) MakeMove(m Move) (Board, bool) {
	if !p.Legal(m) {
		return nil, false
	}
	next := p.clone()
	next.applyMove(m)
	next.side = p.side.Other()
	return next, true
}

// applyMove performs the mechanical part of a move (capture, en passant,
// castling rook shuffle, promotion, castling-rights/en-passant-file
// bookkeeping) without touching side-to-move, so it is reusable by the
// king-safety probe in leavesKingSafe (which must not flip turns).
func (p *position) applyMove(m Move) {
	mover := *p.at(m.From)
	isPawn := mover.Kind == Pawn
	isEnPassant := isPawn && m.From.File != m.To.File && p.at(m.To) == nil

	if isEnPassant {
		capturedRank := m.From.Rank
		p.clear(NewSquare(m.To.File, capturedRank))
	}

	// Castling: king moves two files toward the rook.
	if mover.Kind == King {
		delta := m.To.File - m.From.File
		if delta == 2 || delta == -2 {
			rookFromFile, rookToFile := int8(7), m.To.File-1
			if delta < 0 {
				rookFromFile, rookToFile = 0, m.To.File+1
			}
			rook := p.at(NewSquare(rookFromFile, m.From.Rank))
			p.clear(NewSquare(rookFromFile, m.From.Rank))
			if rook != nil {
				p.set(NewSquare(rookToFile, m.From.Rank), *rook)
			}
		}
	}

	p.clear(m.From)
	placed := mover
	if m.Promotion != nil {
		placed = Piece{Kind: *m.Promotion, Color: mover.Color}
	}
	p.set(m.To, placed)

	p.updateCastlingRights(m.From, mover)
	p.updateCastlingRightsOnCapture(m.To)

	p.epFile, p.epRank = -1, -1
	if isPawn {
		rankDelta := m.To.Rank - m.From.Rank
		if rankDelta == 2 || rankDelta == -2 {
			p.epFile = m.To.File
			p.epRank = (m.From.Rank + m.To.Rank) / 2
		}
	}
}

func (p *position) updateCastlingRights(from Square, mover Piece) {
	switch {
	case mover.Kind == King && mover.Color == White:
		p.castleWK, p.castleWQ = false, false
	case mover.Kind == King && mover.Color == Black:
		p.castleBK, p.castleBQ = false, false
	case mover.Kind == Rook && from == NewSquare(0, 0):
		p.castleWQ = false
	case mover.Kind == Rook && from == NewSquare(7, 0):
		p.castleWK = false
	case mover.Kind == Rook && from == NewSquare(0, 7):
		p.castleBQ = false
	case mover.Kind == Rook && from == NewSquare(7, 7):
		p.castleBK = false
	}
}

func (p *position) updateCastlingRightsOnCapture(to Square) {
	switch to {
	case NewSquare(0, 0):
		p.castleWQ = false
	case NewSquare(7, 0):
		p.castleWK = false
	case NewSquare(0, 7):
		p.castleBQ = false
	case NewSquare(7, 7):
		p.castleBK = false
	}
}

// NullMove passes the turn without moving a piece. It fails when the
// side to move is currently in check, since a pass can never resolve one.
func (p *position) NullMove() (Board, bool) {
	kingSq, ok := p.KingSquare(p.side)
	if !ok || squareAttacked(p, kingSq, p.side.Other()) {
		return nil, false
	}
	next := p.clone()
	next.side = p.side.Other()
	next.epFile, next.epRank = -1, -1
	return next, true
}

// SetPiece places a piece without altering side-to-move, as required by
// the drop rule (spec.md §4.4 step 9).
func (p *position) SetPiece(pc Piece, sq Square) (Board, bool) {
	if !sq.Valid() {
		return nil, false
	}
	next := p.clone()
	next.set(sq, pc)
	return next, true
}

// ClearSquare empties an occupied square, used to consume a piece on the
// other board as part of the cross-board promotion rule.
func (p *position) ClearSquare(sq Square) (Board, bool) {
	if !sq.Valid() || p.at(sq) == nil {
		return nil, false
	}
	next := p.clone()
	next.clear(sq)
	return next, true
}

func (p *position) FEN() string {
	return encodeFEN(p)
}
