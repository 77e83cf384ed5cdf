package eval

// Weights scales each group of evaluation terms in percent. Zero disables
// a group.
type Weights struct {
	Material   int
	Positional int
	Patterns   int
	Safety     int
	Contempt   int
	// phase = clamp((pieces - PhaseEnd) / PhaseRange, 0, 1)
	PhaseEnd   int
	PhaseRange int
}

func DefaultWeights() Weights {
	return Weights{
		Material:   100,
		Positional: 100,
		Patterns:   100,
		Safety:     100,
		Contempt:   10,
		PhaseEnd:   8,
		PhaseRange: 20,
	}
}

var (
	manValue  = S(100, 110)
	kingValue = S(300, 330)

	bridgeBonus  = S(20, 0)
	hookBonus    = S(8, 0)
	hanging      = S(-14, -22)
	support      = S(5, 3)
	pressure     = S(3, 1)
	shot         = S(10, 16)
	tempoShot    = S(25, 40)
	outpost      = S(14, 10)
	kingTrapped  = S(-25, -40)
	kingExposed  = S(-20, -35)
	lockedFlank  = S(-8, -4)
	backRankHold = S(4, 0)
)

// Tables are indexed by square number - 1 from white's point of view;
// row 0 (squares 1..5) is white's promotion row.
var manOpening = [50]int{
	0, 0, 0, 0, 0,
	18, 20, 22, 20, 18,
	12, 16, 18, 16, 10,
	8, 12, 16, 14, 6,
	4, 10, 14, 12, 4,
	2, 8, 12, 10, 2,
	0, 4, 8, 6, 0,
	0, 2, 4, 2, -2,
	-2, 0, 2, 0, -4,
	6, 4, 8, 4, 6,
}

var manEnding = [50]int{
	0, 0, 0, 0, 0,
	40, 42, 42, 42, 40,
	30, 32, 32, 32, 30,
	22, 24, 24, 24, 22,
	16, 18, 18, 18, 16,
	10, 12, 12, 12, 10,
	6, 8, 8, 8, 6,
	2, 4, 4, 4, 2,
	0, 2, 2, 2, 0,
	0, 0, 0, 0, 0,
}

var kingTable = [50]int{
	-6, -2, 0, 2, 10,
	-2, 4, 6, 10, 2,
	0, 6, 10, 12, 4,
	2, 8, 14, 10, 2,
	4, 10, 16, 10, 4,
	4, 10, 16, 10, 4,
	2, 10, 14, 8, 2,
	4, 12, 10, 6, 0,
	2, 10, 6, 4, -2,
	10, 2, 0, -2, -6,
}

// Back-rank formations from white's point of view; black uses 51-n.
var (
	bridgeSquares = [2]int{47, 49}
	hookSquares   = [][2]int{{36, 41}, {40, 45}}
)
