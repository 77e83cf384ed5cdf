package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// NewPositionFromFEN parses "<turn>:W<squares>:B<squares>". Squares are
// comma separated numbers or ranges ("31-50"), kings marked with K
// (prefix or suffix).
func NewPositionFromFEN(fen string) (Position, error) {
	var result Position
	var text = strings.TrimSpace(fen)
	text = strings.TrimSuffix(text, ".")
	text = strings.Trim(text, "\"")
	var fields = strings.Split(text, ":")
	if len(fields) < 1 || len(fields) > 3 {
		return Position{}, fmt.Errorf("bad fen %q", fen)
	}
	switch strings.ToUpper(strings.TrimSpace(fields[0])) {
	case "W":
		result.WhiteMove = true
	case "B":
		result.WhiteMove = false
	default:
		return Position{}, fmt.Errorf("bad fen %q: side to move", fen)
	}
	var seen [2]bool
	for _, field := range fields[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var white bool
		switch field[0] {
		case 'W', 'w':
			white = true
		case 'B', 'b':
			white = false
		default:
			return Position{}, fmt.Errorf("bad fen %q: colour %q", fen, field[:1])
		}
		var side = let(white, 0, 1)
		if seen[side] {
			return Position{}, fmt.Errorf("bad fen %q: duplicate colour", fen)
		}
		seen[side] = true
		if err := parsePieceList(&result, field[1:], white); err != nil {
			return Position{}, fmt.Errorf("bad fen %q: %w", fen, err)
		}
	}
	if !result.WhiteMove {
		result.Key ^= sideKey
	}
	return result, nil
}

func parsePieceList(p *Position, list string, white bool) error {
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		var king = false
		if strings.HasPrefix(item, "K") || strings.HasPrefix(item, "k") {
			king = true
			item = item[1:]
		}
		if strings.HasSuffix(item, "K") || strings.HasSuffix(item, "k") {
			king = true
			item = item[:len(item)-1]
		}
		var first, last int
		var err error
		if i := strings.IndexByte(item, '-'); i > 0 {
			if first, err = strconv.Atoi(item[:i]); err != nil {
				return err
			}
			if last, err = strconv.Atoi(item[i+1:]); err != nil {
				return err
			}
		} else {
			if first, err = strconv.Atoi(item); err != nil {
				return err
			}
			last = first
		}
		if first > last {
			return fmt.Errorf("bad range %q", item)
		}
		for n := first; n <= last; n++ {
			var sq = SquareFromNumber(n)
			if sq == SquareNone {
				return fmt.Errorf("square %v out of range", n)
			}
			if p.Squares[sq] != Empty {
				return fmt.Errorf("square %v occupied twice", n)
			}
			p.put(sq, MakePiece(white, king))
		}
	}
	return nil
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(let(p.WhiteMove, "W", "B"))
	for _, white := range []bool{true, false} {
		var squares = lo.Filter(darkSquares[:], func(sq int8, _ int) bool {
			var piece = p.Squares[sq]
			return piece != Empty && piece.IsWhite() == white
		})
		var items = lo.Map(squares, func(sq int8, _ int) string {
			var s = SquareName(int(sq))
			if p.Squares[sq].IsKing() {
				s += "K"
			}
			return s
		})
		sb.WriteString(let(white, ":W", ":B"))
		sb.WriteString(strings.Join(items, ","))
	}
	return sb.String()
}

// Diagram renders the board as text, row 0 first.
func (p *Position) Diagram() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			var sq = MakeSquare(row, col)
			if !IsDarkSquare(sq) {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(" ")
			sb.WriteString(p.Squares[sq].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
