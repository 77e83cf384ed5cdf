package engine

import . "github.com/ChizhovVadim/CounterDraughts/pkg/common"

const (
	MinLevel = 1
	MaxLevel = 10
)

type Difficulty struct {
	Level           int
	MaxDepth        int
	TimeLimitMs     int
	QuiescenceDepth int
}

var difficultyLevels = [MaxLevel]Difficulty{
	{Level: 1, MaxDepth: 1, TimeLimitMs: 100, QuiescenceDepth: 2},
	{Level: 2, MaxDepth: 2, TimeLimitMs: 200, QuiescenceDepth: 4},
	{Level: 3, MaxDepth: 3, TimeLimitMs: 300, QuiescenceDepth: 4},
	{Level: 4, MaxDepth: 4, TimeLimitMs: 500, QuiescenceDepth: 6},
	{Level: 5, MaxDepth: 6, TimeLimitMs: 750, QuiescenceDepth: 8},
	{Level: 6, MaxDepth: 8, TimeLimitMs: 1000, QuiescenceDepth: 8},
	{Level: 7, MaxDepth: 10, TimeLimitMs: 1500, QuiescenceDepth: 10},
	{Level: 8, MaxDepth: 12, TimeLimitMs: 2500, QuiescenceDepth: 12},
	{Level: 9, MaxDepth: 16, TimeLimitMs: 4000, QuiescenceDepth: 14},
	{Level: 10, MaxDepth: 24, TimeLimitMs: 8000, QuiescenceDepth: 16},
}

// LevelSettings maps a difficulty level to search limits. Out of range
// levels are clamped.
func LevelSettings(level int) Difficulty {
	return difficultyLevels[Clamp(level, MinLevel, MaxLevel)-1]
}

func (d Difficulty) Limits() LimitsType {
	return LimitsType{
		Depth:           d.MaxDepth,
		MoveTime:        d.TimeLimitMs,
		QuiescenceDepth: d.QuiescenceDepth,
	}
}
