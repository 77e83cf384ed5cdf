package engine

import (
	"context"
	"testing"
	"time"

	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
	eval "github.com/ChizhovVadim/CounterDraughts/pkg/eval/classic"
)

func newTestEngine() *Engine {
	var e = NewEngine(func() interface{} { return eval.NewEvaluationService() })
	e.Options.Hash = 1
	return e
}

func mustPosition(t *testing.T, fen string) Position {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func searchDepthLimit(e *Engine, p Position, depth int) SearchInfo {
	return e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Depth: depth},
	})
}

func TestSearchStartPosition(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, InitialPositionFen)
	var si = searchDepthLimit(e, p, 4)
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Fatalf("illegal move %v", si.Move)
	}
	if si.Nodes <= 0 {
		t.Error("nodes", si.Nodes)
	}
	if si.Depth != 4 {
		t.Error("depth", si.Depth)
	}
	if si.Source != SourceSearch {
		t.Error("source", si.Source)
	}
	if si.Stats == "" {
		t.Error("no stats")
	}
}

func TestSearchDeterministic(t *testing.T) {
	var e = newTestEngine()
	for _, fen := range []string{
		InitialPositionFen,
		"B:W27,28,32,33,37,38,42,43,46,48:B7,8,12,13,17,18,19,22,23,24",
		"W:W25,30,34,35,40,45:B6,11,15,16,20,26",
	} {
		var p = mustPosition(t, fen)
		e.Clear()
		var first = searchDepthLimit(e, p, 5)
		e.Clear()
		var second = searchDepthLimit(e, p, 5)
		if first.Move != second.Move || first.Score != second.Score {
			t.Errorf("%v: %v %v vs %v %v", fen, first.Move, first.Score, second.Move, second.Score)
		}
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	var e = newTestEngine()
	e.Options.PNThreshold = 0
	for _, fen := range []string{
		InitialPositionFen,
		"B:W27,28,32,33,37,38,42,43,46,48:B7,8,12,13,17,18,19,22,23,24",
		"W:WK46,31,32,33:B9,K5,18",
	} {
		var p = mustPosition(t, fen)
		for _, nodes := range []int{1024, 3000, 5000, 20000} {
			e.Clear()
			// no depth limit: only the node limit ends the search, in mid iteration
			var si = e.Search(context.Background(), SearchParams{
				Position: p,
				Limits:   LimitsType{Nodes: nodes},
			})
			if fen == InitialPositionFen && si.Nodes < int64(nodes) {
				t.Errorf("%v: stopped at %v nodes, limit %v", fen, si.Nodes, nodes)
			}
			if e.thread.position != p {
				t.Fatalf("%v: board not restored after abort at %v nodes: %v",
					fen, nodes, e.thread.position.String())
			}
			if err := e.thread.position.Validate(); err != nil {
				t.Fatal(err)
			}
			if !ContainsMove(p.GenerateMoves(nil), si.Move) {
				t.Errorf("%v: illegal move %v", fen, si.Move)
			}
		}
	}
}

func TestContemptAvoidsDraws(t *testing.T) {
	var search = func(fen string, depth, contempt int) int {
		var e = NewEngine(func() interface{} {
			var ev = eval.NewEvaluationService()
			ev.Contempt = contempt
			return ev
		})
		e.Options.Hash = 1
		e.Options.PNThreshold = 0
		return searchDepthLimit(e, mustPosition(t, fen), depth).Score
	}
	// both positions are drawish king endings, the second one with black as the root side
	for _, fen := range []string{"W:WK46,K41:BK5", "B:WK46:BK5,K10"} {
		for depth := 1; depth <= 2; depth++ {
			var without = search(fen, depth, 0)
			var with = search(fen, depth, 10)
			if with >= without {
				t.Errorf("%v depth %v: contempt %v, no contempt %v", fen, depth, with, without)
			}
		}
	}
}

func TestSearchMaterialAdvantage(t *testing.T) {
	var e = newTestEngine()
	e.Options.PNThreshold = 0
	var p = mustPosition(t, "W:W31,32,33,34,35:B16,17")
	var si = searchDepthLimit(e, p, 6)
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Fatalf("illegal move %v", si.Move)
	}
	if si.Score <= 0 {
		t.Errorf("score %v move %v", si.Score, si.Move)
	}
}

func TestForcedMove(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, "W:W32:B27")
	var si = searchDepthLimit(e, p, 10)
	if si.Source != SourceForced || si.Move.String() != "32x21" {
		t.Error(si.Source, si.Move)
	}
}

func TestNoMoves(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, "W:W46:B41,37")
	var si = searchDepthLimit(e, p, 4)
	if si.Move != MoveEmpty || si.Source != SourceNone {
		t.Error(si.Move, si.Source)
	}
}

func TestSolverDispatch(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, "W:W31,32:B27")
	var si = searchDepthLimit(e, p, 10)
	if si.Source != SourceSolver {
		t.Fatal("source", si.Source)
	}
	if si.Score != valueWin {
		t.Error("score", si.Score)
	}
	if !si.Move.IsCapture() {
		t.Error("move", si.Move)
	}
}

func TestSolverFallback(t *testing.T) {
	var e = newTestEngine()
	// kings only, no forced win: the solver gives up and alpha-beta decides
	var p = mustPosition(t, "W:WK46,K5:BK50,K1")
	e.Options.PNNodes = 2000
	var si = searchDepthLimit(e, p, 3)
	if si.Source != SourceSearch {
		t.Fatal("source", si.Source)
	}
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Error("illegal move", si.Move)
	}
}

func TestSolverHonoursStop(t *testing.T) {
	var e = newTestEngine()
	e.Options.PNFallback = false
	var p = mustPosition(t, "W:WK46,K5:BK50,K1")
	var si = e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Infinite: true},
		Stop:     func() bool { return true },
	})
	if si.Source != SourceSolver {
		t.Fatal("source", si.Source)
	}
	if si.Nodes > 1000 {
		t.Error("solver ignored stop, nodes", si.Nodes)
	}
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Error("illegal move", si.Move)
	}
}

type firstMoveBook struct{}

func (firstMoveBook) FindMove(history []Move) (Move, bool) {
	if len(history) != 0 {
		return MoveEmpty, false
	}
	return Move{From: int8(SquareFromNumber(32)), To: int8(SquareFromNumber(28))}, true
}

func TestBookMove(t *testing.T) {
	var e = newTestEngine()
	e.Book = firstMoveBook{}
	var p = mustPosition(t, InitialPositionFen)
	var si = searchDepthLimit(e, p, 4)
	if si.Source != SourceBook || si.Move.String() != "32-28" {
		t.Error(si.Source, si.Move)
	}

	// position not reached from the initial position: book is skipped
	si = e.Search(context.Background(), SearchParams{
		Position: p,
		Moves:    []Move{{From: int8(SquareFromNumber(32)), To: int8(SquareFromNumber(28))}},
		Limits:   LimitsType{Depth: 2},
	})
	if si.Source != SourceSearch {
		t.Error(si.Source)
	}

	e.Options.UseBook = false
	si = searchDepthLimit(e, p, 2)
	if si.Source != SourceSearch {
		t.Error(si.Source)
	}
}

func TestStopPredicate(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, InitialPositionFen)
	var start = time.Now()
	var si = e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Infinite: true},
		Stop:     func() bool { return true },
	})
	if time.Since(start) > 5*time.Second {
		t.Error("stop predicate ignored")
	}
	if si.Depth > 1 {
		t.Error("depth", si.Depth)
	}
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Error("illegal move", si.Move)
	}
}

func TestContextCancel(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, InitialPositionFen)
	var ctx, cancel = context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	var si = e.Search(ctx, SearchParams{
		Position: p,
		Limits:   LimitsType{Infinite: true},
	})
	if !ContainsMove(p.GenerateMoves(nil), si.Move) {
		t.Error("illegal move", si.Move)
	}
}

func TestProgress(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, InitialPositionFen)
	var depths []int
	e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Depth: 4},
		Progress: func(si SearchInfo) { depths = append(depths, si.Depth) },
	})
	if len(depths) != 4 {
		t.Fatal(depths)
	}
	for i, d := range depths {
		if d != i+1 {
			t.Error(depths)
		}
	}
}

func TestHistoryKeys(t *testing.T) {
	var start = mustPosition(t, InitialPositionFen)
	var p = start
	var m, err = p.ParseMove("32-28")
	if err != nil {
		t.Fatal(err)
	}
	p.MakeMove(m)
	var keys, ok = getHistoryKeys([]Move{m}, &p)
	if !ok {
		t.Fatal("replay failed")
	}
	// a man move is irreversible
	if len(keys) != 0 {
		t.Error(keys)
	}
	if _, ok = getHistoryKeys(nil, &p); ok {
		t.Error("empty history must not reach the position")
	}
}

func TestRepetition(t *testing.T) {
	var e = newTestEngine()
	e.Prepare()
	var th = e.thread
	th.position = mustPosition(t, "W:WK46,31:BK5,20")
	th.position.Reversible = 4
	th.stack[0].key = th.position.Key
	for h := 1; h <= 4; h++ {
		th.stack[h].key = uint64(h)
		th.stack[h].nullMove = false
	}
	if !th.isRepeat(4) {
		t.Error("repetition not detected")
	}

	th.stack[2].nullMove = true
	if th.isRepeat(4) {
		t.Error("repetition across a null move")
	}
	th.stack[2].nullMove = false

	th.position.Reversible = 2
	if th.isRepeat(4) {
		t.Error("repetition outside the reversible window")
	}

	th.position.Reversible = 6
	th.stack[0].key = 0
	e.gameKeys = map[uint64]int{th.position.Key: 1}
	if !th.isRepeat(4) {
		t.Error("game history repetition not detected")
	}
}
