package engine

import (
	"errors"

	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

func (e *Engine) iterativeDeepening(ml []Move, limits LimitsType) {
	var t = e.thread
	e.mainLine = mainLine{
		depth: 0,
		score: 0,
		moves: []Move{ml[0]},
	}
	t.stack[0].nullMove = false
	for h := 0; h <= 2; h++ {
		t.stack[h].killer1 = MoveEmpty
		t.stack[h].killer2 = MoveEmpty
	}

	var maxDepth = maxHeight - 1
	if limits.Depth > 0 {
		maxDepth = Min(limits.Depth, maxDepth)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		var score, completed = searchDepth(t, depth, e.mainLine.score)
		if !completed {
			break
		}
		e.mainLine = mainLine{
			depth: depth,
			score: score,
			moves: e.rootLine(t, ml),
		}
		e.Logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Int64("nodes", t.nodes).
			Str("move", e.mainLine.moves[0].String()).
			Msg("iteration complete")
		e.timeManager.OnIterationComplete(e.mainLine)
		if e.progress != nil && t.nodes >= int64(e.Options.ProgressMinNodes) {
			e.progress(e.currentSearchResult())
		}
		if isDecisive(score) || e.timeManager.IsDone() {
			break
		}
	}
}

// searchDepth runs one iteration. An aborted iteration reports completed false;
// deferred unmakes have already restored the board by then.
func searchDepth(t *thread, depth, prevScore int) (score int, completed bool) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				completed = false
				return
			}
			panic(r)
		}
	}()
	return aspirationWindow(t, depth, prevScore), true
}

// rootLine picks the best move of a completed iteration: the hash move if it
// is legal, else the head of the principal variation, else the first move.
func (e *Engine) rootLine(t *thread, ml []Move) []Move {
	var line = t.stack[0].pv.toSlice()
	var _, _, _, ttMove, ttHit = e.transTable.Read(t.position.Key)
	if ttHit && ttMove != MoveEmpty {
		if len(line) != 0 && line[0].SameSquares(ttMove) {
			return line
		}
		if i := findMoveIndex(ml, ttMove); i >= 0 {
			return []Move{ml[i]}
		}
	}
	if len(line) != 0 {
		return line
	}
	return []Move{ml[0]}
}
