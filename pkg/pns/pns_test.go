package pns

import (
	"context"
	"testing"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

func mustPosition(t *testing.T, fen string) common.Position {
	t.Helper()
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSolve(t *testing.T) {
	var tests = []struct {
		fen      string
		status   Status
		bestMove string
	}{
		// forced capture of the last black piece
		{"W:W32:B27", Proven, "32x21"},
		{"B:W32:B27", Proven, "27x38"},
		// white is blocked
		{"W:W46:B41,37", Disproven, ""},
		{"W:W:B27", Disproven, ""},
	}
	for _, test := range tests {
		var p = mustPosition(t, test.fen)
		var key = p.Key
		var res = Solve(context.Background(), &p, 10000, nil)
		if res.Status != test.status {
			t.Errorf("%v: status %v want %v", test.fen, res.Status, test.status)
			continue
		}
		if test.bestMove != "" && res.BestMove.String() != test.bestMove {
			t.Errorf("%v: best move %v want %v", test.fen, res.BestMove, test.bestMove)
		}
		if test.status == Proven && res.Score != ScoreWin {
			t.Errorf("%v: score %v", test.fen, res.Score)
		}
		if p.Key != key {
			t.Errorf("%v: position modified", test.fen)
		}
	}
}

func TestSolveBudget(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var res = Solve(context.Background(), &p, 1, nil)
	if res.Status != Unknown {
		t.Fatal(res.Status)
	}
	if res.Nodes != 1 {
		t.Error("nodes", res.Nodes)
	}
	if res.Score != 0 {
		t.Error("score", res.Score)
	}
}

func TestSolveBudgetReturnsMove(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var res = Solve(context.Background(), &p, 100, nil)
	if res.Status != Unknown {
		t.Fatal(res.Status)
	}
	var ml = p.GenerateMoves(nil)
	if !common.ContainsMove(ml, res.BestMove) {
		t.Errorf("best move %v is not legal", res.BestMove)
	}
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
}

func TestSolveCancelled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var p = mustPosition(t, "W:WK46,K5:BK50,K1")
	var res = Solve(ctx, &p, 1_000_000, nil)
	if res.Status != Unknown {
		t.Fatal(res.Status)
	}
}

func TestSolveStopped(t *testing.T) {
	var p = mustPosition(t, "W:WK46,K5:BK50,K1")
	var calls = 0
	var stopAfter = func(n int) func() bool {
		calls = 0
		return func() bool {
			calls++
			return calls > n
		}
	}

	var res = Solve(context.Background(), &p, 1_000_000, stopAfter(0))
	if res.Status != Unknown || res.Nodes != 1 {
		t.Fatal(res.Status, res.Nodes)
	}

	res = Solve(context.Background(), &p, 1_000_000, stopAfter(3))
	if res.Status != Unknown {
		t.Fatal(res.Status)
	}
	if calls != 4 {
		t.Error("stop polled", calls)
	}
	if res.Nodes >= 1_000_000 {
		t.Error("nodes", res.Nodes)
	}
}
