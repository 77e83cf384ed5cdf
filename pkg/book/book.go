// Package book holds opening lines played from the initial position.
package book

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

//go:embed openings.txt
var openingsTxt string

type Book struct {
	// Random picks among all continuations instead of the first one.
	Random bool
	lines  [][]common.Move
}

// New loads the embedded opening lines.
func New() (*Book, error) {
	return Parse(openingsTxt)
}

// Parse reads one line per opening, moves separated by spaces. Every move is
// checked against the legal moves of the replayed position.
func Parse(text string) (*Book, error) {
	var result = &Book{}
	for i, line := range getLines(text) {
		var moves, err = parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("opening %v: %w", i+1, err)
		}
		result.lines = append(result.lines, moves)
	}
	return result, nil
}

func getLines(text string) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result
}

func parseLine(line string) ([]common.Move, error) {
	var pos, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return nil, err
	}
	var result []common.Move
	for _, s := range strings.Fields(line) {
		var move, err = pos.ParseMove(s)
		if err != nil {
			return nil, err
		}
		pos.MakeMove(move)
		result = append(result, move)
	}
	return result, nil
}

func (b *Book) Lines() [][]common.Move {
	return b.lines
}

// FindMove returns a continuation of a line whose beginning equals history.
func (b *Book) FindMove(history []common.Move) (common.Move, bool) {
	var candidates = lo.Filter(b.lines, func(line []common.Move, _ int) bool {
		return len(line) > len(history) && isPrefix(line, history)
	})
	if len(candidates) == 0 {
		return common.MoveEmpty, false
	}
	var moves = lo.UniqBy(lo.Map(candidates, func(line []common.Move, _ int) common.Move {
		return line[len(history)]
	}), func(m common.Move) string {
		return m.LongString()
	})
	if b.Random && len(moves) > 1 {
		return moves[frand.Intn(len(moves))], true
	}
	return moves[0], true
}

func isPrefix(line, history []common.Move) bool {
	for i := range history {
		if !line[i].Equivalent(history[i]) {
			return false
		}
	}
	return true
}
