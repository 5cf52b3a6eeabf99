package move

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tandemchess/internal/oracle"
)

func TestParseReset(t *testing.T) {
	p := Parse("Reset Game")
	require.Equal(t, Reset, p.Kind)
}

func TestParseBoardMove(t *testing.T) {
	p := Parse("1;W;e2;e4;;")
	require.Equal(t, Move, p.Kind)
	require.Equal(t, 1, p.Move.Board)
	require.Equal(t, oracle.White, p.Move.Color)
	require.Equal(t, "e2", p.Move.Source)
	require.Equal(t, "e4", p.Move.Target)
	require.False(t, p.Move.IsDrop())
}

func TestParseDropMove(t *testing.T) {
	p := Parse("2;B;spare;d5;bN;")
	require.Equal(t, Move, p.Kind)
	require.True(t, p.Move.IsDrop())
	require.Equal(t, "bN", p.Move.Piece)
}

func TestParsePromotionMove(t *testing.T) {
	p := Parse("1;W;g7;g8;;e4")
	require.Equal(t, Move, p.Kind)
	require.Equal(t, "e4", p.Move.Promo)
}

func TestParseRejectsWrongFieldCount(t *testing.T) {
	require.Equal(t, Invalid, Parse("1;W;e2;e4").Kind)
	require.Equal(t, Invalid, Parse("1;W;e2;e4;;;extra").Kind)
}

func TestParseRejectsBadBoardNumber(t *testing.T) {
	require.Equal(t, Invalid, Parse("3;W;e2;e4;;").Kind)
	require.Equal(t, Invalid, Parse("x;W;e2;e4;;").Kind)
	require.Equal(t, Invalid, Parse("0;W;e2;e4;;").Kind)
}

func TestParseDefaultsUnknownColorToBlack(t *testing.T) {
	p := Parse("1;Z;e2;e4;;")
	require.Equal(t, Move, p.Kind)
	require.Equal(t, oracle.Black, p.Move.Color)
}
