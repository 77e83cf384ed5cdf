package engine

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
	"github.com/ChizhovVadim/CounterDraughts/pkg/pns"
)

type Engine struct {
	Options     Options
	Logger      zerolog.Logger
	Book        Book
	evalBuilder func() interface{}
	transTable  *transTable
	timeManager *timeManager
	thread      *thread
	gameKeys    map[uint64]int
	progress    func(SearchInfo)
	mainLine    mainLine
	start       time.Time
}

type thread struct {
	engine    *Engine
	position  Position
	history   historyService
	evaluator IEvaluator
	nodes     int64
	stats     Stats
	stack     [stackSize]struct {
		moveList [MaxMoves]Move
		ordered  [MaxMoves]orderedMove
		undo     Undo
		key      uint64
		nullMove bool
		pv       pv
		killer1  Move
		killer2  Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

type IEvaluator interface {
	Evaluate(p *Position) int
}

// rootSider is implemented by evaluators whose draw bias depends on the side
// the engine plays.
type rootSider interface {
	SetRootSide(white bool)
}

// Book suggests a move for a game that started from the initial position.
type Book interface {
	FindMove(history []Move) (Move, bool)
}

func NewEngine(evalBuilder func() interface{}) *Engine {
	return &Engine{
		Options:     NewOptions(),
		Logger:      zerolog.Nop(),
		evalBuilder: evalBuilder,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Options.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Options.Hash)
	}
	if e.thread == nil {
		e.thread = &thread{
			engine:    e,
			evaluator: e.buildEvaluator(),
		}
	}
}

// Clear forgets everything learned in previous searches.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	if e.thread != nil {
		e.thread.history.Clear()
		e.thread.clearKillers()
	}
}

func (e *Engine) Evaluate(p *Position) int {
	e.Prepare()
	return e.thread.evaluator.Evaluate(p)
}

// Search picks a move: opening book, forced move, endgame solver and finally
// iterative deepening alpha-beta.
func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = searchParams.Position
	if rs, ok := e.thread.evaluator.(rootSider); ok {
		rs.SetRootSide(p.WhiteMove)
	}
	var ml = p.GenerateMoves(make([]Move, 0, MaxMoves))
	if len(ml) == 0 {
		return SearchInfo{
			Score:  lossIn(0),
			Time:   time.Since(e.start),
			Source: SourceNone,
		}
	}

	var keys, fromStart = getHistoryKeys(searchParams.Moves, &p)
	e.gameKeys = keys

	if e.Options.UseBook && e.Book != nil && fromStart {
		if move, ok := e.Book.FindMove(searchParams.Moves); ok {
			if i := findEquivalent(ml, move); i >= 0 {
				e.Logger.Debug().Str("move", ml[i].String()).Msg("book move")
				return e.singleMoveResult(ml[i], SourceBook, &p)
			}
		}
	}

	if len(ml) == 1 {
		return e.singleMoveResult(ml[0], SourceForced, &p)
	}

	var searchCtx, tm = newTimeManager(ctx, e.start, searchParams.Limits, searchParams.Stop)
	e.timeManager = tm
	defer tm.Close()

	if e.Options.PNThreshold > 0 && p.TotalPieces() <= e.Options.PNThreshold {
		var res = pns.Solve(searchCtx, &p, e.Options.PNNodes, tm.IsDone)
		e.Logger.Debug().
			Str("status", res.Status.String()).
			Int("nodes", res.Nodes).
			Msg("endgame solver")
		if res.Status == pns.Proven {
			return SearchInfo{
				Move:     res.BestMove,
				Score:    valueWin,
				Nodes:    int64(res.Nodes),
				Time:     time.Since(e.start),
				MainLine: []Move{res.BestMove},
				Source:   SourceSolver,
			}
		}
		if !e.Options.PNFallback {
			var move = ml[0]
			if i := findEquivalent(ml, res.BestMove); i >= 0 {
				move = ml[i]
			}
			return SearchInfo{
				Move:     move,
				Score:    valueDraw,
				Nodes:    int64(res.Nodes),
				Time:     time.Since(e.start),
				MainLine: []Move{move},
				Source:   SourceSolver,
			}
		}
	}

	var t = e.thread
	t.position = p
	t.nodes = 0
	t.stats = Stats{}
	e.progress = searchParams.Progress
	e.iterativeDeepening(ml, searchParams.Limits)
	return e.currentSearchResult()
}

func (e *Engine) singleMoveResult(move Move, source string, p *Position) SearchInfo {
	return SearchInfo{
		Move:     move,
		Score:    e.thread.evaluator.Evaluate(p),
		Time:     time.Since(e.start),
		MainLine: []Move{move},
		Source:   source,
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	var t = e.thread
	t.stats.Nodes = uint64(t.nodes)
	t.stats.Hashfull = e.transTable.Hashfull()
	var result = SearchInfo{
		Score:    e.mainLine.score,
		Depth:    e.mainLine.depth,
		Nodes:    t.nodes,
		Time:     time.Since(e.start),
		MainLine: cloneMoves(e.mainLine.moves),
		Source:   SourceSearch,
		Stats:    t.stats.String(),
	}
	if len(e.mainLine.moves) != 0 {
		result.Move = e.mainLine.moves[0]
	}
	return result
}

// getHistoryKeys replays the game from the initial position. The keys of the
// trailing run of reversible positions are returned when the replay reaches p.
func getHistoryKeys(moves []Move, p *Position) (map[uint64]int, bool) {
	var result = make(map[uint64]int)
	var pos, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		return result, false
	}
	var keys = []uint64{pos.Key}
	var buffer [MaxMoves]Move
	for _, move := range moves {
		var ml = pos.GenerateMoves(buffer[:])
		var i = findEquivalent(ml, move)
		if i < 0 {
			return result, false
		}
		pos.MakeMove(ml[i])
		if pos.Reversible == 0 {
			keys = keys[:0]
		}
		keys = append(keys, pos.Key)
	}
	if pos.Key != p.Key {
		return result, false
	}
	// the current position is the root of the search
	for _, key := range keys[:len(keys)-1] {
		result[key]++
	}
	return result, true
}

func findEquivalent(ml []Move, move Move) int {
	for i := range ml {
		if ml[i].Equivalent(move) {
			return i
		}
	}
	return -1
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func (e *Engine) buildEvaluator() IEvaluator {
	var evaluationService = e.evalBuilder()
	if e, ok := evaluationService.(IEvaluator); ok {
		return e
	}
	panic(errors.New("bad eval builder"))
}
