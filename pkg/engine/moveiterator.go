package engine

import . "github.com/ChizhovVadim/CounterDraughts/pkg/common"

// Sort keys are primary*centralityRange + centrality of the destination.
const (
	centralityRange = 32
	sortTransMove   = 1_000_000
	sortCapture     = 500_000
	sortPromotion   = 400_000
	sortKiller1     = 300_001
	sortKiller2     = 300_000
	sortHistoryMax  = sortKiller2 - 1
)

type orderedMove struct {
	Move
	Key int32
}

type moveIterator struct {
	position  *Position
	buffer    []orderedMove
	history   *historyService
	transMove Move
	killer1   Move
	killer2   Move
	count     int
	index     int
}

// Init scores the moves already generated into the buffer. At most one move
// gets the hash bonus: the first whose origin and destination match.
func (mi *moveIterator) Init(ml []Move) {
	mi.count = len(ml)
	if mi.count > len(mi.buffer) {
		mi.buffer = make([]orderedMove, mi.count)
	}
	var transFound = false
	for i, m := range ml {
		var score int
		if !transFound && mi.transMove != MoveEmpty && m.SameSquares(mi.transMove) {
			transFound = true
			score = sortTransMove
		} else if m.IsCapture() {
			score = sortCapture + captureOrder(mi.position, m)
		} else if mi.position.IsPromotion(m) {
			score = sortPromotion
		} else if m == mi.killer1 {
			score = sortKiller1
		} else if m == mi.killer2 {
			score = sortKiller2
		} else if mi.history != nil {
			score = Min(mi.history.Read(m), sortHistoryMax)
		}
		mi.buffer[i] = orderedMove{
			Move: m,
			Key:  int32(score*centralityRange + centrality(int(m.To))),
		}
	}
}

func (mi *moveIterator) Reset() {
	mi.index = 0
}

func (mi *moveIterator) Next() Move {
	if mi.index >= mi.count {
		return MoveEmpty
	}
	const SortMovesIndex = 1
	if mi.index <= SortMovesIndex {
		if mi.index == SortMovesIndex {
			sortMoves(mi.buffer[mi.index:mi.count])
		} else {
			moveToTop(mi.buffer[mi.index:mi.count])
		}
	}
	var m = mi.buffer[mi.index].Move
	mi.index++
	return m
}

// captureOrder prefers longer sequences, then valuable first victims, then
// cheap attackers.
func captureOrder(p *Position, m Move) int {
	var victim = 0
	if m.Count > 0 {
		victim = pieceValue(p.Squares[m.Captured[0]])
	}
	return 100*int(m.Count) + victim - pieceValue(p.Squares[m.From])/10
}

func centrality(sq int) int {
	return 18 - Abs(2*Row(sq)-(BoardSize-1)) - Abs(2*Col(sq)-(BoardSize-1))
}

func sortMoves(moves []orderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func moveToTop(ml []orderedMove) {
	var bestIndex = 0
	for i := 1; i < len(ml); i++ {
		if ml[i].Key > ml[bestIndex].Key {
			bestIndex = i
		}
	}
	if bestIndex != 0 {
		ml[0], ml[bestIndex] = ml[bestIndex], ml[0]
	}
}
