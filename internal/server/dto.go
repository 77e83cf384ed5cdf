package server

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

const (
	defaultLevel   = 5
	maxDepth       = 60
	maxTimeLimitMs = 60_000
)

type searchRequest struct {
	Position    string   `json:"position"`
	MaxDepth    int      `json:"maxDepth"`
	TimeLimitMs int      `json:"timeLimitMs"`
	Level       int      `json:"level,omitempty"`
	MoveHistory []string `json:"moveHistory"`
}

type searchResponse struct {
	Move           string   `json:"move"`
	Score          int      `json:"score"`
	NodeCount      int64    `json:"nodeCount"`
	DepthReached   int      `json:"depthReached"`
	TimeMs         int64    `json:"timeMs"`
	Source         string   `json:"source"`
	MainLine       []string `json:"mainLine"`
	FormattedStats string   `json:"formattedStats"`
}

type movesRequest struct {
	Position    string   `json:"position"`
	MoveHistory []string `json:"moveHistory"`
}

type moveDTO struct {
	Notation string `json:"notation"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Captured []int  `json:"captured"`
}

type movesResponse struct {
	Position string    `json:"position"`
	Moves    []moveDTO `json:"moves"`
}

type wsMessage struct {
	Type   string          `json:"type"`
	Result *searchResponse `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// resolvePosition replays the history from the initial position. An explicit
// position overrides the replayed one.
func resolvePosition(fen string, history []string) (common.Position, []common.Move, error) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return common.Position{}, nil, err
	}
	var moves []common.Move
	for i, s := range history {
		var move, err = p.ParseMove(s)
		if err != nil {
			return common.Position{}, nil, fmt.Errorf("move history %v: %w", i+1, err)
		}
		p.MakeMove(move)
		moves = append(moves, move)
	}
	if fen != "" {
		p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			return common.Position{}, nil, err
		}
	}
	return p, moves, nil
}

func (req *searchRequest) limits() common.LimitsType {
	var limits = common.LimitsType{
		Depth:    common.Clamp(req.MaxDepth, 0, maxDepth),
		MoveTime: common.Clamp(req.TimeLimitMs, 0, maxTimeLimitMs),
	}
	var level = req.Level
	if level == 0 && limits.Depth == 0 && limits.MoveTime == 0 {
		level = defaultLevel
	}
	if level != 0 {
		var levelLimits = engine.LevelSettings(level).Limits()
		if limits.Depth == 0 {
			limits.Depth = levelLimits.Depth
		}
		if limits.MoveTime == 0 {
			limits.MoveTime = levelLimits.MoveTime
		}
		limits.QuiescenceDepth = levelLimits.QuiescenceDepth
	}
	return limits
}

func moveStrings(ml []common.Move) []string {
	return lo.Map(ml, func(m common.Move, _ int) string { return m.String() })
}

func toSearchResponse(si common.SearchInfo) searchResponse {
	var result = searchResponse{
		Score:          si.Score,
		NodeCount:      si.Nodes,
		DepthReached:   si.Depth,
		TimeMs:         si.Time.Milliseconds(),
		Source:         si.Source,
		MainLine:       moveStrings(si.MainLine),
		FormattedStats: si.Stats,
	}
	if si.Move != common.MoveEmpty {
		result.Move = si.Move.String()
	}
	return result
}

func toMoveDTO(m common.Move, _ int) moveDTO {
	return moveDTO{
		Notation: m.LongString(),
		From:     common.SquareNumber(int(m.From)),
		To:       common.SquareNumber(int(m.To)),
		Captured: lo.Map(m.CapturedSquares(), func(sq int8, _ int) int {
			return common.SquareNumber(int(sq))
		}),
	}
}
