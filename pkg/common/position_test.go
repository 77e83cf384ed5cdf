package common

import "testing"

var testFENs = []string{
	InitialPositionFen,
	"W:W32:B27",
	"W:W47:B42,33,41",
	"B:W27,28,32,33,37,38,42,43:B12,13,17,18,19,22,23,24",
	"W:WK46,31,36:BK5,14,15,20",
	"B:W25,30,35,40,45,50:B1,6,11,16,21,26",
}

// forEachPlayoutPosition walks a deterministic pseudo-random line from every
// test position, calling f before each move.
func forEachPlayoutPosition(t *testing.T, f func(p *Position)) {
	t.Helper()
	for _, fen := range testFENs {
		var p = mustPosition(t, fen)
		for ply := 0; ply < 120; ply++ {
			f(&p)
			var ml = p.GenerateMoves(nil)
			if len(ml) == 0 {
				break
			}
			var m = ml[(ply*7+3)%len(ml)]
			p.MakeMove(m)
		}
	}
}

func TestMakeUnmakeRestores(t *testing.T) {
	for _, fen := range testFENs {
		var p = mustPosition(t, fen)
		var start = p
		var moves []Move
		var undos []Undo
		for ply := 0; ply < 150; ply++ {
			var ml = p.GenerateMoves(nil)
			if len(ml) == 0 {
				break
			}
			var m = ml[(ply*13+5)%len(ml)]
			undos = append(undos, p.MakeMove(m))
			moves = append(moves, m)
			if err := p.Validate(); err != nil {
				t.Fatal(fen, ply, m.LongString(), err)
			}
		}
		for i := len(moves) - 1; i >= 0; i-- {
			p.UnmakeMove(moves[i], &undos[i])
		}
		if p != start {
			t.Error("position not restored", fen, p.String())
		}
	}
}

func TestNullMove(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var start = p
	p.MakeNullMove()
	if p.WhiteMove || p.Key == start.Key {
		t.Error("null move did not switch side")
	}
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
	p.UnmakeNullMove()
	if p != start {
		t.Error("null move not restored")
	}
}

func TestReversibleCounter(t *testing.T) {
	var p = mustPosition(t, "W:WK46:BK5")
	var m, err = p.ParseMove("46-41")
	if err != nil {
		t.Fatal(err)
	}
	var undo = p.MakeMove(m)
	if p.Reversible != 1 {
		t.Error("king move should be reversible", p.Reversible)
	}
	p.UnmakeMove(m, &undo)
	if p.Reversible != 0 {
		t.Error("reversible counter not restored")
	}
}

func TestMirror(t *testing.T) {
	for _, fen := range testFENs {
		var p = mustPosition(t, fen)
		var mirror = p.Mirror()
		if err := mirror.Validate(); err != nil {
			t.Error(fen, err)
		}
		if back := mirror.Mirror(); back != p {
			t.Error("double mirror differs", fen)
		}
		if len(mirror.GenerateMoves(nil)) != len(p.GenerateMoves(nil)) {
			t.Error("mirror changes mobility", fen)
		}
	}
}

func TestParseMove(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var m, err = p.ParseMove("32-28")
	if err != nil {
		t.Fatal(err)
	}
	if m.From != sq(32) || m.To != sq(28) {
		t.Error(m)
	}
	if _, err = p.ParseMove("32-27"); err != nil {
		t.Error(err)
	}
	for _, bad := range []string{"", "32", "32-29", "60-55", "a-b"} {
		if _, err = p.ParseMove(bad); err == nil {
			t.Error("expected error", bad)
		}
	}

	p = mustPosition(t, "W:W47:B42,33,41")
	for _, text := range []string{"47x29", "47x29(42,33)", "47x29x42x33", "47x29x33x42", "47x29x33(42)"} {
		m, err = p.ParseMove(text)
		if err != nil || m.Count != 2 || m.LongString() != "47x29(42,33)" {
			t.Error(text, m.LongString(), err)
		}
	}
	for _, bad := range []string{"47x29x42", "47x29x42x41", "47x29x42x33x41", "47x38x29", "47x29x99"} {
		if _, err = p.ParseMove(bad); err == nil {
			t.Error("expected error", bad)
		}
	}
}
