package arena

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultWhiteWins
	gameResultBlackWins
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type TimeControl struct {
	FixedNodes int
	FixedDepth int
	FixedTime  time.Duration
}

type Config struct {
	Concurrency int
	TimeControl TimeControl
	// Openings are move sequences from the initial position. Every opening
	// is played twice with colours reversed.
	Openings [][]common.Move
	Shuffle  bool
	// MaxPlies adjudicates a draw when the game gets this long.
	MaxPlies   int
	NewEngineA func() IEngine
	NewEngineB func() IEngine
	Logger     zerolog.Logger
}

type gameInfo struct {
	opening        []common.Move
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	moves    []common.Move
	comment  string
	result   int
}

// Score is the match result from the point of view of engine A.
type Score struct {
	Wins   int
	Losses int
	Draws  int
}

func (s Score) Games() int {
	return s.Wins + s.Losses + s.Draws
}
