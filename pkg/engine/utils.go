package engine

import (
	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

const (
	stackSize     = 128
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 20000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
)

const (
	manValue  = 100
	kingValue = 300
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

func isDecisive(v int) bool {
	return v >= valueWin || v <= valueLoss
}

func pieceValue(piece Piece) int {
	if piece.IsKing() {
		return kingValue
	}
	if piece == Empty {
		return 0
	}
	return manValue
}

// captureGain sums the values of the pieces m removes. Call before MakeMove.
func captureGain(p *Position, m Move) int {
	var gain = 0
	for i := 0; i < int(m.Count); i++ {
		gain += pieceValue(p.Squares[m.Captured[i]])
	}
	return gain
}

func isNoisy(p *Position, m Move) bool {
	return m.IsCapture() || p.IsPromotion(m)
}

func findMoveIndex(ml []Move, move Move) int {
	for i := range ml {
		if ml[i].SameSquares(move) {
			return i
		}
	}
	return -1
}

func cloneMoves(ml []Move) []Move {
	var result = make([]Move, len(ml))
	copy(result, ml)
	return result
}
