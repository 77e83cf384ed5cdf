package engine

import (
	"context"
	"time"

	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

type timeManager struct {
	ctx       context.Context
	start     time.Time
	limits    LimitsType
	stop      func() bool
	softLimit time.Duration
	hardLimit time.Duration
	cancel    context.CancelFunc
}

func newTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, stop func() bool) (context.Context, *timeManager) {

	var tm = &timeManager{
		start:  start,
		limits: limits,
		stop:   stop,
	}

	if limits.MoveTime > 0 && !limits.Infinite {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
		// no new iteration after half of the budget
		tm.softLimit = tm.hardLimit / 2
	}

	var cancel context.CancelFunc
	if tm.hardLimit != 0 {
		ctx, cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	tm.ctx = ctx
	tm.cancel = cancel
	return ctx, tm
}

func (tm *timeManager) IsDone() bool {
	if tm.ctx.Err() != nil {
		return true
	}
	if tm.stop != nil && tm.stop() {
		tm.cancel()
		return true
	}
	return false
}

func (tm *timeManager) OnNodesChanged(nodes int64) {
	if tm.limits.Nodes > 0 && nodes >= int64(tm.limits.Nodes) {
		tm.cancel()
	}
}

func (tm *timeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Infinite {
		return
	}
	if tm.limits.Depth != 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	if isDecisive(line.score) {
		tm.cancel()
		return
	}
	if tm.softLimit != 0 &&
		time.Since(tm.start) >= tm.softLimit {
		tm.cancel()
		return
	}
}

func (tm *timeManager) Close() {
	tm.cancel()
}
