package book

import (
	"testing"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

func parseMoves(t *testing.T, line string) []common.Move {
	t.Helper()
	var moves, err = parseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	return moves
}

func TestEmbeddedBook(t *testing.T) {
	var b, err = New()
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Lines()) < 5 {
		t.Error("lines", len(b.Lines()))
	}
}

func TestFindMove(t *testing.T) {
	var b, err = Parse(`
// comment
32-28 19-23 28x19 14x23
32-28 18-23 37-32
33-28 17-22
`)
	if err != nil {
		t.Fatal(err)
	}
	var tests = []struct {
		history string
		want    string
		found   bool
	}{
		{"", "32-28", true},
		{"32-28", "19-23", true},
		{"32-28 19-23", "28x19", true},
		{"32-28 18-23", "37-32", true},
		{"33-28", "17-22", true},
		{"32-28 19-23 28x19 14x23", "", false},
		{"31-27", "", false},
		{"32-28 17-22", "", false},
	}
	for _, test := range tests {
		var move, found = b.FindMove(parseMoves(t, test.history))
		if found != test.found {
			t.Errorf("%q: found %v", test.history, found)
			continue
		}
		if found && move.String() != test.want {
			t.Errorf("%q: got %v want %v", test.history, move, test.want)
		}
	}
}

func TestRandomChoiceStaysInBook(t *testing.T) {
	var b, err = New()
	if err != nil {
		t.Fatal(err)
	}
	b.Random = true
	var seen = make(map[string]bool)
	for i := 0; i < 100; i++ {
		var move, found = b.FindMove(nil)
		if !found {
			t.Fatal("no move from the initial position")
		}
		seen[move.String()] = true
	}
	for s := range seen {
		switch s {
		case "31-27", "32-28", "33-28", "33-29", "34-29":
		default:
			t.Error("unexpected move", s)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"32-26",
		"32-28 19-23 37-32",
		"abc",
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("%q: expected error", text)
		}
	}
}
