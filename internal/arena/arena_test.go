package arena

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterDraughts/pkg/book"
	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

type firstMoveEngine struct {
	searches int
}

func (e *firstMoveEngine) Clear() {}

func (e *firstMoveEngine) Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	e.searches++
	var p = searchParams.Position
	var ml = p.GenerateMoves(nil)
	if len(ml) == 0 {
		return common.SearchInfo{}
	}
	return common.SearchInfo{Move: ml[0]}
}

type illegalMoveEngine struct{}

func (illegalMoveEngine) Clear() {}

func (illegalMoveEngine) Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	return common.SearchInfo{Move: common.Move{From: 0, To: 1}}
}

func TestPlayGameMoveLimit(t *testing.T) {
	var a, b = &firstMoveEngine{}, &firstMoveEngine{}
	var res, err = playGame(context.Background(), zerolog.Nop(), a, b,
		TimeControl{FixedDepth: 1}, 10, gameInfo{engineAIsWhite: true, gameNumber: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.result != gameResultDraw {
		t.Error(res.comment, res.result)
	}
	if len(res.moves) > 10 {
		t.Error("plies", len(res.moves))
	}
	if res.comment == "move limit" && (a.searches != 5 || b.searches != 5) {
		t.Error(a.searches, b.searches)
	}
}

func TestPlayGameIllegalMove(t *testing.T) {
	var _, err = playGame(context.Background(), zerolog.Nop(), illegalMoveEngine{}, illegalMoveEngine{},
		TimeControl{FixedDepth: 1}, 10, gameInfo{engineAIsWhite: true, gameNumber: 1})
	if err == nil {
		t.Fatal("illegal move accepted")
	}
}

func TestPlayGameCancelled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var _, err = playGame(ctx, zerolog.Nop(), &firstMoveEngine{}, &firstMoveEngine{},
		TimeControl{FixedDepth: 1}, 10, gameInfo{engineAIsWhite: true, gameNumber: 1})
	if err != context.Canceled {
		t.Fatal(err)
	}
}

func TestComputeStat(t *testing.T) {
	var tests = []struct {
		wins, losses, draws int
		fraction, elo, los  float64
	}{
		{0, 0, 0, 0.5, 0, 0.5},
		{5, 5, 0, 0.5, 0, 0.5},
		{0, 0, 4, 0.5, 0, 0.5},
		{3, 1, 0, 0.75, 190.8, 0.841},
	}
	for _, test := range tests {
		var stat = computeStat(test.wins, test.losses, test.draws)
		if math.Abs(stat.winningFraction-test.fraction) > 1e-9 ||
			math.Abs(stat.eloDifference-test.elo) > 0.1 ||
			math.Abs(stat.los-test.los) > 0.001 {
			t.Errorf("%+v: %+v", test, stat)
		}
	}
}

func TestRun(t *testing.T) {
	var b, err = book.New()
	if err != nil {
		t.Fatal(err)
	}
	var newEngine = func(evalName string) func() IEngine {
		return func() IEngine {
			var eng = engine.NewEngine(evalbuilder.Get(evalName))
			eng.Options.Hash = 1
			eng.Options.PNNodes = 1000
			return eng
		}
	}
	score, err := Run(context.Background(), Config{
		Concurrency: 2,
		TimeControl: TimeControl{FixedDepth: 2},
		Openings:    b.Lines()[:2],
		Shuffle:     true,
		MaxPlies:    30,
		NewEngineA:  newEngine("classic"),
		NewEngineB:  newEngine("material"),
		Logger:      zerolog.Nop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if score.Games() != 4 {
		t.Error(score)
	}
}

func TestRunConfigErrors(t *testing.T) {
	var newEngine = func() IEngine { return &firstMoveEngine{} }
	for _, config := range []Config{
		{Concurrency: 0, TimeControl: TimeControl{FixedDepth: 1}, NewEngineA: newEngine, NewEngineB: newEngine},
		{Concurrency: 1, NewEngineA: newEngine, NewEngineB: newEngine},
		{Concurrency: 1, TimeControl: TimeControl{FixedDepth: 1}},
	} {
		if _, err := Run(context.Background(), config); err == nil {
			t.Errorf("%+v: expected error", config)
		}
	}
}
