package eval

import (
	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

const (
	valueTerminal  = 20000
	valueMaxStatic = valueTerminal - 1000
	phaseScale     = 256
	sideWhite      = 0
	sideBlack      = 1
)

type EvaluationService struct {
	Weights
	shots     [2]int
	rootWhite bool
}

// Trace holds the tapered terms of the last evaluation, white's point of view.
type Trace struct {
	Material   Score
	Positional Score
	Patterns   Score
	Safety     Score
	Phase      int
	Drawish    bool
	Result     int
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{Weights: DefaultWeights(), rootWhite: true}
}

func NewEvaluationServiceWithWeights(w Weights) *EvaluationService {
	return &EvaluationService{Weights: w, rootWhite: true}
}

// SetRootSide names the side the engine plays. Contempt lowers drawish
// scores for that side only, whoever is to move.
func (e *EvaluationService) SetRootSide(white bool) {
	e.rootWhite = white
}

// Evaluate scores p for the side to move.
func (e *EvaluationService) Evaluate(p *Position) int {
	var tr Trace
	return e.evaluate(p, &tr)
}

func (e *EvaluationService) Trace(p *Position) Trace {
	var tr Trace
	e.evaluate(p, &tr)
	return tr
}

func (e *EvaluationService) evaluate(p *Position, tr *Trace) int {
	if p.WhiteCount == 0 || p.BlackCount == 0 {
		var result = valueTerminal
		if p.WhiteCount == 0 {
			result = -valueTerminal
		}
		tr.Result = result
		if !p.WhiteMove {
			result = -result
		}
		return result
	}
	var total = p.TotalPieces()
	if total == 2 && p.WhiteKings == 1 && p.BlackKings == 1 {
		tr.Drawish = true
		return 0
	}

	e.shots = [2]int{}
	for _, sq8 := range DarkSquares() {
		var sq = int(sq8)
		var piece = p.Squares[sq]
		if piece == Empty {
			continue
		}
		var white = piece.IsWhite()
		var sign = Score(1)
		if !white {
			sign = -1
		}
		var index = tableIndex(sq, white)
		if piece.IsKing() {
			tr.Material += sign * kingValue
			tr.Positional += sign * S(kingTable[index], kingTable[index])
		} else {
			tr.Material += sign * manValue
			tr.Positional += sign * manPst(index, total)
		}
		tr.Patterns += sign * e.piecePatterns(p, sq, piece)
		tr.Safety += sign * e.pieceSafety(p, sq, piece)
	}
	tr.Patterns += formations(p, true) - formations(p, false)
	tr.Safety += e.shotScore(p)

	tr.Material = tr.Material.Scale(materialScale(total))

	var s = tr.Material.Scale(e.Material) +
		tr.Positional.Scale(e.Positional) +
		tr.Patterns.Scale(e.Patterns) +
		tr.Safety.Scale(e.Safety)

	tr.Phase = e.phase(total)
	var result = (s.Mg()*tr.Phase + s.Eg()*(phaseScale-tr.Phase)) / phaseScale

	tr.Drawish = isDrawish(p)
	if tr.Drawish {
		result /= 4
		if e.rootWhite {
			result -= e.Contempt
		} else {
			result += e.Contempt
		}
	}
	result = Clamp(result, -valueMaxStatic, valueMaxStatic)
	tr.Result = result

	if !p.WhiteMove {
		result = -result
	}
	return result
}

func (e *EvaluationService) phase(total int) int {
	if e.PhaseRange <= 0 {
		return phaseScale
	}
	return Clamp((total-e.PhaseEnd)*phaseScale/e.PhaseRange, 0, phaseScale)
}

// materialScale sharpens material differences when few pieces remain.
func materialScale(total int) int {
	if total >= 15 {
		return 100
	}
	return 100 + (15-total)*5
}

func tableIndex(sq int, white bool) int {
	if !white {
		sq = MirrorSquare(sq)
	}
	return SquareNumber(sq) - 1
}

// manPst interpolates between the opening and the ending table by piece count.
func manPst(index, total int) Score {
	const full = 30
	var w = Clamp(total, 0, full)
	var v = (manOpening[index]*w + manEnding[index]*(full-w)) / full
	return S(v, manEnding[index])
}

func isEnemyOf(piece Piece, white bool) bool {
	return piece != Empty && piece.IsWhite() != white
}

func isFriendOf(piece Piece, white bool) bool {
	return piece != Empty && piece.IsWhite() == white
}

func (e *EvaluationService) piecePatterns(p *Position, sq int, piece Piece) Score {
	var white = piece.IsWhite()
	var result Score
	var forward = ForwardDirs(white)
	if piece.IsMan() {
		for _, dir := range forward {
			var front = Neighbour(sq, dir)
			if front != SquareNone && isEnemyOf(p.Squares[front], white) {
				result += pressure
			}
			var back = Neighbour(sq, OppositeDir(dir))
			if back != SquareNone && isFriendOf(p.Squares[back], white) {
				result += support
			}
		}
		var col = Col(sq)
		if col == 0 || col == BoardSize-1 {
			var blocked = true
			for _, dir := range forward {
				var front = Neighbour(sq, dir)
				if front != SquareNone && p.Squares[front] == Empty {
					blocked = false
				}
			}
			if blocked {
				result += lockedFlank
			}
		}
		if Row(sq) == PromotionRow(!white) {
			result += backRankHold
		}
	}
	if isHanging(p, sq, white) {
		result += hanging
	}
	return result
}

// isHanging reports whether an enemy piece adjacent to sq could jump it.
func isHanging(p *Position, sq int, white bool) bool {
	for dir := 0; dir < 4; dir++ {
		var from = Neighbour(sq, dir)
		var landing = Neighbour(sq, OppositeDir(dir))
		if from == SquareNone || landing == SquareNone {
			continue
		}
		if isEnemyOf(p.Squares[from], white) && p.Squares[landing] == Empty {
			return true
		}
	}
	return false
}

func formations(p *Position, white bool) Score {
	var man = MakePiece(white, false)
	var at = func(n int) bool {
		var sq = SquareFromNumber(n)
		if !white {
			sq = MirrorSquare(sq)
		}
		return p.Squares[sq] == man
	}
	var result Score
	if at(bridgeSquares[0]) && at(bridgeSquares[1]) {
		result += bridgeBonus
	}
	for _, hook := range hookSquares {
		if at(hook[0]) && at(hook[1]) {
			result += hookBonus
		}
	}
	return result
}

func (e *EvaluationService) pieceSafety(p *Position, sq int, piece Piece) Score {
	var white = piece.IsWhite()
	var result Score
	if piece.IsKing() {
		var free = 0
		for dir := 0; dir < 4; dir++ {
			var n = Neighbour(sq, dir)
			if n != SquareNone && p.Squares[n] == Empty {
				free++
			}
		}
		if free == 0 {
			result += kingTrapped
		}
		if isHanging(p, sq, white) {
			result += kingExposed
		}
		return result
	}

	// count enemy pieces this man could jump right now
	for dir := 0; dir < 4; dir++ {
		var ray = Ray(sq, dir)
		if len(ray) >= 2 && isEnemyOf(p.Squares[ray[0]], white) && p.Squares[ray[1]] == Empty {
			e.shots[sideOf(white)]++
		}
	}

	var row = Row(sq)
	var advanced = white && row <= 4 || !white && row >= 5
	if advanced {
		var backers = 0
		for _, dir := range ForwardDirs(white) {
			var back = Neighbour(sq, OppositeDir(dir))
			if back != SquareNone && isFriendOf(p.Squares[back], white) {
				backers++
			}
		}
		if backers == 2 {
			result += outpost
		}
	}
	return result
}

func (e *EvaluationService) shotScore(p *Position) Score {
	var result = shot * Score(Min(e.shots[sideWhite], 3)) -
		shot*Score(Min(e.shots[sideBlack], 3))
	if p.WhiteMove && e.shots[sideWhite] > 0 {
		result += tempoShot
	}
	if !p.WhiteMove && e.shots[sideBlack] > 0 {
		result -= tempoShot
	}
	return result
}

func sideOf(white bool) int {
	if white {
		return sideWhite
	}
	return sideBlack
}

// isDrawish recognises king endings without a realistic winning margin.
func isDrawish(p *Position) bool {
	var whiteMen = p.WhiteCount - p.WhiteKings
	var blackMen = p.BlackCount - p.BlackKings
	if whiteMen != 0 || blackMen != 0 {
		return false
	}
	return Abs(p.WhiteKings-p.BlackKings) <= 2
}
