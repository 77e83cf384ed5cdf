package engine

import (
	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

// null move is skipped near the endgame where zugzwang is common
const nullMovePieceFloor = 8

func aspirationWindow(t *thread, depth, prevScore int) int {
	var window = t.engine.Options.AspirationWindow
	if window > 0 && depth >= 4 && !isDecisive(prevScore) {
		var alpha = Max(-valueInfinity, prevScore-window)
		var beta = Min(valueInfinity, prevScore+window)
		var score = t.alphaBeta(alpha, beta, depth, 0)
		if score > alpha && score < beta {
			return score
		}
		t.stats.AspirationFails++
	}
	return t.alphaBeta(-valueInfinity, valueInfinity, depth, 0)
}

// main search method
func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	t.clearPV(height)

	var rootNode = height == 0
	var pvNode = beta != alpha+1
	var position = &t.position
	t.stack[height].key = position.Key

	if !rootNode {
		if height >= maxHeight {
			return t.evaluator.Evaluate(position)
		}
		if t.isRepeat(height) {
			t.stats.Repetitions++
			return valueDraw
		}
		// mate distance pruning
		if winIn(height+1) <= alpha {
			return alpha
		}
	}

	// transposition table
	var (
		ttDepth, ttValue, ttBound int
		ttMove                    Move
		ttHit                     bool
	)
	t.stats.TTProbes++
	ttDepth, ttValue, ttBound, ttMove, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		t.stats.TTHits++
		ttValue = valueFromTT(ttValue, height)
		if !rootNode && ttDepth >= depth {
			if ttBound == boundExact {
				t.stats.TTCuts++
				return ttValue
			}
			if ttBound == boundLower {
				alpha = Max(alpha, ttValue)
			}
			if ttBound == boundUpper {
				beta = Min(beta, ttValue)
			}
			if alpha >= beta {
				t.stats.TTCuts++
				return ttValue
			}
		}
	}

	if depth <= 0 {
		return t.quiescence(alpha, beta, height, 0)
	}

	var ml = position.GenerateMoves(t.stack[height].moveList[:])
	if len(ml) == 0 {
		return lossIn(height)
	}

	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveEmpty
		t.stack[height+2].killer2 = MoveEmpty
	}

	var options = &t.engine.Options

	// null-move pruning
	if options.NullMovePruning && !rootNode && !pvNode && depth >= 3 &&
		!t.stack[height].nullMove &&
		!ml[0].IsCapture() &&
		beta < valueWin &&
		position.TotalPieces() > nullMovePieceFloor &&
		t.evaluator.Evaluate(position) >= beta {
		var reduction = 2
		if depth >= 6 {
			reduction = 3
		}
		var score = t.searchNullMove(beta, depth-1-reduction, height)
		if score >= beta {
			t.stats.NullMoveCuts++
			if score >= valueWin {
				score = beta
			}
			return score
		}
	}

	var killer1 = t.stack[height].killer1
	var killer2 = t.stack[height].killer2
	var mi = moveIterator{
		position:  position,
		buffer:    t.stack[height].ordered[:],
		history:   &t.history,
		transMove: ttMove,
		killer1:   killer1,
		killer2:   killer2,
	}
	mi.Init(ml)

	var movesSearched = 0
	var bestMove Move
	var best = -valueInfinity
	var oldAlpha = alpha

	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		var noisy = isNoisy(position, move)
		movesSearched++

		var reduction int
		if options.Lmr && depth >= 3 && movesSearched > 1 && !noisy &&
			move != killer1 && move != killer2 {
			reduction = options.Reduction(depth, movesSearched)
			if pvNode {
				reduction--
			}
			reduction = Clamp(reduction, 0, Min(2, depth-2))
		}

		var score = t.searchMove(move, alpha, beta, depth-1, height, reduction, movesSearched)

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				t.stats.BetaCuts++
				if movesSearched == 1 {
					t.stats.FirstMoveCuts++
				}
				break
			}
		}
	}

	if alpha > oldAlpha && !isNoisy(position, bestMove) {
		t.history.Update(bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	ttBound = 0
	if best > oldAlpha {
		ttBound |= boundLower
	}
	if best < beta {
		ttBound |= boundUpper
	}
	if !(rootNode && ttBound == boundUpper) {
		t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), ttBound, bestMove)
	}

	return best
}

// searchMove searches one child with late move reduction and a null window
// scout before the full window. The board is restored on return and on abort.
func (t *thread) searchMove(move Move, alpha, beta, newDepth, height, reduction, movesSearched int) int {
	t.makeMove(move, height)
	defer t.unmakeMove(move, height)
	t.incNodes()

	var score = alpha + 1
	// LMR
	if reduction > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth-reduction, height+1)
		if score > alpha {
			t.stats.LmrReSearches++
		}
	}
	// PVS
	if score > alpha && beta != alpha+1 && movesSearched > 1 && newDepth > 0 {
		score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
	}
	// full search
	if score > alpha {
		score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
	}
	return score
}

func (t *thread) searchNullMove(beta, depth, height int) int {
	t.makeNullMove(height)
	defer t.unmakeNullMove(height)
	t.incNodes()
	return -t.alphaBeta(-beta, -(beta - 1), depth, height+1)
}

// quiescence is fail-hard and searches captures only.
func (t *thread) quiescence(alpha, beta, height, qdepth int) int {
	t.clearPV(height)
	t.stats.QNodes++
	var position = &t.position
	t.stack[height].key = position.Key
	t.stats.SelDepth = Max(t.stats.SelDepth, height)

	if position.SideCount(position.WhiteMove) == 0 {
		return lossIn(height)
	}
	var eval = t.evaluator.Evaluate(position)
	if height >= maxHeight {
		return eval
	}
	if eval >= beta {
		return beta
	}
	if eval > alpha {
		alpha = eval
	}
	if qdepth >= t.quiescenceDepth() {
		return alpha
	}

	var ml = position.GenerateCaptures(t.stack[height].moveList[:])
	if len(ml) == 0 {
		return alpha
	}
	var mi = moveIterator{
		position: position,
		buffer:   t.stack[height].ordered[:],
	}
	mi.Init(ml)
	var deltaMargin = t.engine.Options.DeltaMargin

	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		// delta pruning
		if deltaMargin > 0 && eval+captureGain(position, move)+deltaMargin <= alpha {
			continue
		}
		var score = t.searchCapture(move, alpha, beta, height, qdepth)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				return beta
			}
		}
	}
	return alpha
}

func (t *thread) searchCapture(move Move, alpha, beta, height, qdepth int) int {
	t.makeMove(move, height)
	defer t.unmakeMove(move, height)
	t.incNodes()
	return -t.quiescence(-beta, -alpha, height+1, qdepth+1)
}

func (t *thread) quiescenceDepth() int {
	var limits = t.engine.timeManager.limits
	if limits.QuiescenceDepth > 0 {
		return limits.QuiescenceDepth
	}
	return t.engine.Options.QuiescenceDepth
}

// incNodes may abort the search with errSearchTimeout. Call it only after the
// undo of the current move is deferred.
func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&1023 == 0 {
		t.engine.timeManager.OnNodesChanged(t.nodes)
		if t.engine.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

// isRepeat looks for the current position earlier in the run of reversible
// king moves, first on the search stack and then in the game history.
func (t *thread) isRepeat(height int) bool {
	var p = &t.position
	if p.Reversible == 0 {
		return false
	}
	for i := height - 1; i >= 0; i-- {
		if t.stack[i+1].nullMove || height-i > p.Reversible {
			return false
		}
		if t.stack[i].key == p.Key {
			return true
		}
	}
	return t.engine.gameKeys[p.Key] > 0
}

func (t *thread) makeMove(move Move, height int) {
	t.stack[height].undo = t.position.MakeMove(move)
	t.stack[height+1].nullMove = false
}

func (t *thread) unmakeMove(move Move, height int) {
	t.position.UnmakeMove(move, &t.stack[height].undo)
}

func (t *thread) makeNullMove(height int) {
	t.position.MakeNullMove()
	t.stack[height+1].nullMove = true
}

func (t *thread) unmakeNullMove(height int) {
	t.position.UnmakeNullMove()
	t.stack[height+1].nullMove = false
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	t.stack[height].pv.assign(move, &t.stack[height+1].pv)
}
