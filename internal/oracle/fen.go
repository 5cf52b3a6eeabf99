package oracle

import "strings"

// encodeFEN renders a position in standard Forsyth-Edwards Notation.
// Halfmove clock and fullmove number are not tracked by the tandem
// variant (clocks are wall-time, not move-count based) and are emitted
// as the fixed "0 1" trailer, which every FEN consumer treats as valid.
func encodeFEN(p *position) string {
	var b strings.Builder

	for rank := int8(7); rank >= 0; rank-- {
		empty := 0
		for file := int8(0); file < 8; file++ {
			pc := p.at(NewSquare(file, rank))
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := pc.Kind.fenLetter()
			if pc.Color == Black {
				letter += 'a' - 'A'
			}
			b.WriteByte(letter)
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if p.side == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	castling := ""
	if p.castleWK {
		castling += "K"
	}
	if p.castleWQ {
		castling += "Q"
	}
	if p.castleBK {
		castling += "k"
	}
	if p.castleBQ {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	b.WriteString(castling)

	b.WriteByte(' ')
	if p.epFile < 0 {
		b.WriteByte('-')
	} else {
		b.WriteString(NewSquare(p.epFile, p.epRank).String())
	}

	b.WriteString(" 0 1")
	return b.String()
}
