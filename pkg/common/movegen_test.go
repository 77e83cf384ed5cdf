package common

import "testing"

func mustPosition(t *testing.T, fen string) Position {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sq(n int) int8 {
	return int8(SquareFromNumber(n))
}

func TestInitialMoves(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var ml = p.GenerateMoves(nil)
	if len(ml) != 9 {
		t.Fatalf("moves %v, want 9", len(ml))
	}
	for _, m := range ml {
		if m.IsCapture() {
			t.Error("unexpected capture", m)
		}
	}
}

func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{InitialPositionFen, 1, 9},
		{InitialPositionFen, 2, 81},
		{"W:W32:B27", 1, 1},
	}
	for _, test := range tests {
		var p = mustPosition(t, test.fen)
		var nodes = Perft(&p, test.depth)
		if nodes != test.nodes {
			t.Error(test.fen, test.depth, nodes)
		}
	}
}

func Perft(p *Position, depth int) int {
	var result = 0
	for _, move := range p.GenerateMoves(nil) {
		if depth > 1 {
			var undo = p.MakeMove(move)
			result += Perft(p, depth-1)
			p.UnmakeMove(move, &undo)
		} else {
			result++
		}
	}
	return result
}

func TestForcedCapture(t *testing.T) {
	var p = mustPosition(t, "W:W32:B27")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 1 {
		t.Fatalf("moves %v, want 1", ml)
	}
	var m = ml[0]
	if m.From != sq(32) || m.To != sq(21) || m.Count != 1 || m.Captured[0] != sq(27) {
		t.Errorf("got %v", m.LongString())
	}
	if m.String() != "32x21" {
		t.Errorf("notation %v", m.String())
	}
}

func TestMaximalCapture(t *testing.T) {
	var p = mustPosition(t, "W:W47:B42,33,41")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 1 {
		t.Fatalf("moves %v, want the 2-capture only", ml)
	}
	var m = ml[0]
	if m.Count != 2 || m.From != sq(47) || m.To != sq(29) {
		t.Errorf("got %v", m.LongString())
	}
	if m.Captured[0] != sq(42) || m.Captured[1] != sq(33) {
		t.Errorf("capture order %v", m.LongString())
	}
}

func TestManCapturesBackward(t *testing.T) {
	var p = mustPosition(t, "W:W28:B33")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 1 || ml[0].String() != "28x39" {
		t.Errorf("got %v", ml)
	}
}

func TestFlyingKing(t *testing.T) {
	var p = mustPosition(t, "W:WK46:B23")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 4 {
		t.Fatalf("got %v, want 4 landings", ml)
	}
	var want = map[int8]bool{sq(19): true, sq(14): true, sq(10): true, sq(5): true}
	for _, m := range ml {
		if !want[m.To] || m.Captured[0] != sq(23) {
			t.Error("unexpected", m.LongString())
		}
	}

	p = mustPosition(t, "W:WK46:B1")
	ml = p.GenerateMoves(nil)
	// long diagonal 41..5 plus nothing else: 46 is a corner square
	if len(ml) != 9 {
		t.Errorf("king slides %v, want 9", len(ml))
	}
}

func TestNoPromotionMidCapture(t *testing.T) {
	var p = mustPosition(t, "W:W11:B7,8")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 1 || ml[0].Count != 2 || ml[0].To != sq(13) {
		t.Fatalf("got %v", ml)
	}
	var undo = p.MakeMove(ml[0])
	if p.Squares[sq(13)] != WhiteMan {
		t.Error("man promoted while passing the back rank")
	}
	p.UnmakeMove(ml[0], &undo)
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
}

func TestPromotion(t *testing.T) {
	var p = mustPosition(t, "W:W6:B20")
	var ml = p.GenerateMoves(nil)
	if len(ml) != 1 {
		t.Fatalf("got %v", ml)
	}
	if !p.IsPromotion(ml[0]) {
		t.Error("promotion not detected")
	}
	var before = p
	var undo = p.MakeMove(ml[0])
	if p.Squares[sq(1)] != WhiteKing || p.WhiteKings != 1 || !undo.Promoted {
		t.Error("man not crowned")
	}
	p.UnmakeMove(ml[0], &undo)
	if p != before {
		t.Error("unmake did not restore position")
	}
}

func TestCapturedPiecesBlock(t *testing.T) {
	// The king may not jump 28 twice and captured pieces stay on the board
	// until the sequence ends.
	var p = mustPosition(t, "W:WK46:B28,30,19")
	for _, m := range p.GenerateMoves(nil) {
		var seen = map[int8]bool{}
		for _, c := range m.CapturedSquares() {
			if seen[c] {
				t.Error("square captured twice", m.LongString())
			}
			seen[c] = true
		}
	}
}

func TestCapturesHaveEqualLength(t *testing.T) {
	forEachPlayoutPosition(t, func(p *Position) {
		var ml = p.GenerateMoves(nil)
		if len(ml) == 0 || !ml[0].IsCapture() {
			if p.HasCaptures() {
				t.Error("captures available but quiet moves generated", p.String())
			}
			return
		}
		for _, m := range ml {
			if m.Count != ml[0].Count {
				t.Error("capture lengths differ", p.String(), ml)
				return
			}
		}
	})
}
