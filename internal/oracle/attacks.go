package oracle

var knightOffsets = [8][2]int8{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int8{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopRays = [4][2]int8{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookRays = [4][2]int8{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// squareAttacked reports whether sq is attacked by any piece of color by,
// independent of whose turn it is. Used for check detection, castling
// safety, and the drop-into-check / null-move-while-in-check checks.
func squareAttacked(p *position, sq Square, by Color) bool {
	pawnRankDelta := int8(1)
	if by == Black {
		pawnRankDelta = -1
	}
	for _, df := range [2]int8{-1, 1} {
		from := NewSquare(sq.File+df, sq.Rank-pawnRankDelta)
		if from.Valid() {
			if pc := p.at(from); pc != nil && pc.Kind == Pawn && pc.Color == by {
				return true
			}
		}
	}

	for _, off := range knightOffsets {
		from := NewSquare(sq.File+off[0], sq.Rank+off[1])
		if from.Valid() {
			if pc := p.at(from); pc != nil && pc.Kind == Knight && pc.Color == by {
				return true
			}
		}
	}

	for _, off := range kingOffsets {
		from := NewSquare(sq.File+off[0], sq.Rank+off[1])
		if from.Valid() {
			if pc := p.at(from); pc != nil && pc.Kind == King && pc.Color == by {
				return true
			}
		}
	}

	if rayAttacks(p, sq, by, bishopRays, Bishop, Queen) {
		return true
	}
	if rayAttacks(p, sq, by, rookRays, Rook, Queen) {
		return true
	}
	return false
}

func rayAttacks(p *position, sq Square, by Color, dirs [4][2]int8, kinds ...PieceKind) bool {
	for _, d := range dirs {
		f, r := sq.File+d[0], sq.Rank+d[1]
		for {
			cur := NewSquare(f, r)
			if !cur.Valid() {
				break
			}
			pc := p.at(cur)
			if pc != nil {
				if pc.Color == by {
					for _, k := range kinds {
						if pc.Kind == k {
							return true
						}
					}
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

// pseudoMoves generates every move for the piece at from that obeys its
// movement pattern, ignoring whether it leaves the mover's own king in
// check (that filter lives in Legal / hasAnyLegalMove).
func (p *position) pseudoMoves(from Square) []Move {
	pc := p.at(from)
	if pc == nil {
		return nil
	}
	switch pc.Kind {
	case Pawn:
		return p.pawnMoves(from, *pc)
	case Knight:
		return p.stepMoves(from, *pc, knightOffsets[:])
	case Bishop:
		return p.slideMoves(from, *pc, bishopRays[:])
	case Rook:
		return p.slideMoves(from, *pc, rookRays[:])
	case Queen:
		moves := p.slideMoves(from, *pc, bishopRays[:])
		return append(moves, p.slideMoves(from, *pc, rookRays[:])...)
	case King:
		return p.kingMoves(from, *pc)
	}
	return nil
}

func (p *position) stepMoves(from Square, pc Piece, offsets [][2]int8) []Move {
	var moves []Move
	for _, off := range offsets {
		to := NewSquare(from.File+off[0], from.Rank+off[1])
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		if target != nil && target.Color == pc.Color {
			continue
		}
		moves = append(moves, Move{From: from, To: to})
	}
	return moves
}

func (p *position) slideMoves(from Square, pc Piece, dirs [][2]int8) []Move {
	var moves []Move
	for _, d := range dirs {
		f, r := from.File+d[0], from.Rank+d[1]
		for {
			to := NewSquare(f, r)
			if !to.Valid() {
				break
			}
			target := p.at(to)
			if target == nil {
				moves = append(moves, Move{From: from, To: to})
				f += d[0]
				r += d[1]
				continue
			}
			if target.Color != pc.Color {
				moves = append(moves, Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

func (p *position) kingMoves(from Square, pc Piece) []Move {
	moves := p.stepMoves(from, pc, kingOffsets[:])

	homeRank := int8(0)
	kingside, queenside := p.castleWK, p.castleWQ
	if pc.Color == Black {
		homeRank = 7
		kingside, queenside = p.castleBK, p.castleBQ
	}
	if from != NewSquare(4, homeRank) {
		return moves
	}
	opp := pc.Color.Other()
	if squareAttacked(p, from, opp) {
		return moves
	}
	if kingside && p.at(NewSquare(5, homeRank)) == nil && p.at(NewSquare(6, homeRank)) == nil {
		rook := p.at(NewSquare(7, homeRank))
		if rook != nil && rook.Kind == Rook && rook.Color == pc.Color &&
			!squareAttacked(p, NewSquare(5, homeRank), opp) &&
			!squareAttacked(p, NewSquare(6, homeRank), opp) {
			moves = append(moves, Move{From: from, To: NewSquare(6, homeRank)})
		}
	}
	if queenside && p.at(NewSquare(3, homeRank)) == nil && p.at(NewSquare(2, homeRank)) == nil && p.at(NewSquare(1, homeRank)) == nil {
		rook := p.at(NewSquare(0, homeRank))
		if rook != nil && rook.Kind == Rook && rook.Color == pc.Color &&
			!squareAttacked(p, NewSquare(3, homeRank), opp) &&
			!squareAttacked(p, NewSquare(2, homeRank), opp) {
			moves = append(moves, Move{From: from, To: NewSquare(2, homeRank)})
		}
	}
	return moves
}

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

func (p *position) pawnMoves(from Square, pc Piece) []Move {
	var moves []Move
	dir := int8(1)
	startRank := int8(1)
	lastRank := int8(7)
	if pc.Color == Black {
		dir = -1
		startRank = int8(6)
		lastRank = int8(0)
	}

	addMaybePromo := func(to Square) {
		if to.Rank == lastRank {
			for i := range promotionKinds {
				k := promotionKinds[i]
				moves = append(moves, Move{From: from, To: to, Promotion: &k})
			}
			return
		}
		moves = append(moves, Move{From: from, To: to})
	}

	oneStep := NewSquare(from.File, from.Rank+dir)
	if oneStep.Valid() && p.at(oneStep) == nil {
		addMaybePromo(oneStep)
		twoStep := NewSquare(from.File, from.Rank+2*dir)
		if from.Rank == startRank && p.at(twoStep) == nil {
			moves = append(moves, Move{From: from, To: twoStep})
		}
	}

	for _, df := range [2]int8{-1, 1} {
		to := NewSquare(from.File+df, from.Rank+dir)
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		if target != nil && target.Color != pc.Color {
			addMaybePromo(to)
			continue
		}
		if target == nil && p.epFile == to.File && p.epRank == to.Rank {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}
