package common

import (
	"fmt"
	"strconv"
	"strings"
)

func (m Move) IsCapture() bool {
	return m.Count != 0
}

func (m *Move) CapturedSquares() []int8 {
	return m.Captured[:m.Count]
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sep = let(m.IsCapture(), "x", "-")
	return SquareName(int(m.From)) + sep + SquareName(int(m.To))
}

// LongString lists captured squares after the destination: "47x29(42,33)".
func (m Move) LongString() string {
	if !m.IsCapture() {
		return m.String()
	}
	var sb strings.Builder
	sb.WriteString(m.String())
	sb.WriteByte('(')
	for i := 0; i < int(m.Count); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(SquareName(int(m.Captured[i])))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (m Move) SameSquares(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func captureMask(m *Move) (lo, hi uint64) {
	for i := 0; i < int(m.Count); i++ {
		var sq = uint(m.Captured[i])
		if sq < 64 {
			lo |= 1 << sq
		} else {
			hi |= 1 << (sq - 64)
		}
	}
	return
}

// Equivalent reports equal origin, destination and captured set (order ignored).
func (m Move) Equivalent(other Move) bool {
	if !m.SameSquares(other) || m.Count != other.Count {
		return false
	}
	var lo1, hi1 = captureMask(&m)
	var lo2, hi2 = captureMask(&other)
	return lo1 == lo2 && hi1 == hi2
}

// ParseMove resolves "32-28" or "47x29" against the legal moves. The captured
// set may follow in any order, as "47x29x42x33" or "47x29(42,33)".
func (p *Position) ParseMove(s string) (Move, error) {
	var text = strings.TrimSpace(s)
	var capturedText string
	if i := strings.IndexByte(text, '('); i >= 0 {
		capturedText = strings.TrimSuffix(text[i+1:], ")")
		text = text[:i]
	}
	var fields = strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == 'x' || r == 'X' || r == ':'
	})
	if len(fields) < 2 {
		return MoveEmpty, fmt.Errorf("bad move %q", s)
	}
	from, err := parseSquare(fields[0])
	if err != nil {
		return MoveEmpty, fmt.Errorf("bad move %q: %w", s, err)
	}
	to, err := parseSquare(fields[1])
	if err != nil {
		return MoveEmpty, fmt.Errorf("bad move %q: %w", s, err)
	}
	var captured = fields[2:]
	if capturedText != "" {
		captured = append(captured, strings.Split(capturedText, ",")...)
	}
	var want = Move{From: int8(from), To: int8(to)}
	for _, item := range captured {
		sq, err := parseSquare(item)
		if err != nil {
			return MoveEmpty, fmt.Errorf("bad move %q: %w", s, err)
		}
		if int(want.Count) >= MaxCaptures {
			return MoveEmpty, fmt.Errorf("bad move %q: too many captures", s)
		}
		want.Captured[want.Count] = int8(sq)
		want.Count++
	}
	for _, m := range p.GenerateMoves(nil) {
		if !m.SameSquares(want) {
			continue
		}
		if len(captured) == 0 || m.Equivalent(want) {
			return m, nil
		}
	}
	return MoveEmpty, fmt.Errorf("illegal move %q", s)
}

func parseSquare(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return SquareNone, err
	}
	var sq = SquareFromNumber(n)
	if sq == SquareNone {
		return SquareNone, fmt.Errorf("square %v out of range", n)
	}
	return sq, nil
}

func ContainsMove(ml []Move, move Move) bool {
	return FindMove(ml, move) >= 0
}

func FindMove(ml []Move, move Move) int {
	for i := range ml {
		if ml[i] == move {
			return i
		}
	}
	return -1
}
