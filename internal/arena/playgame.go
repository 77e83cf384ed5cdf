package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

// 25 moves per side with kings only and no capture
const drawReversiblePlies = 50

func playGame(
	ctx context.Context,
	logger zerolog.Logger,
	engineA, engineB IEngine,
	tc TimeControl,
	maxPlies int,
	info gameInfo,
) (gameResult, error) {

	logger.Debug().Int("game", info.gameNumber).Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var pos, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return gameResult{}, err
	}
	var moves []common.Move
	for _, move := range info.opening {
		pos.MakeMove(move)
		moves = append(moves, move)
	}

	var keys = make(map[uint64]int)
	var buf [common.MaxMoves]common.Move
	var limits = tc.limits()

	for {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		var ml = pos.GenerateMoves(buf[:])

		var newResult = func(comment string, result int) gameResult {
			return gameResult{gameInfo: info, moves: moves, comment: comment, result: result}
		}

		if len(ml) == 0 {
			if pos.WhiteMove {
				return newResult("no moves", gameResultBlackWins), nil
			}
			return newResult("no moves", gameResultWhiteWins), nil
		}
		if pos.Reversible >= drawReversiblePlies {
			return newResult("25 king moves", gameResultDraw), nil
		}
		keys[pos.Key] += 1
		if keys[pos.Key] == 3 {
			return newResult("3 fold repetition", gameResultDraw), nil
		}
		if maxPlies > 0 && len(moves) >= maxPlies {
			return newResult("move limit", gameResultDraw), nil
		}

		var eng IEngine
		if pos.WhiteMove == info.engineAIsWhite {
			eng = engineA
		} else {
			eng = engineB
		}
		var searchResult = eng.Search(ctx, common.SearchParams{
			Position: pos,
			Moves:    append([]common.Move(nil), moves...),
			Limits:   limits,
		})
		var index = common.FindMove(ml, searchResult.Move)
		if index < 0 {
			if err := ctx.Err(); err != nil {
				return gameResult{}, err
			}
			return gameResult{}, fmt.Errorf("game %v: bad move %v in %v",
				info.gameNumber, searchResult.Move, pos.String())
		}
		pos.MakeMove(ml[index])
		moves = append(moves, ml[index])
	}
}

func (tc TimeControl) limits() common.LimitsType {
	var limits common.LimitsType
	if tc.FixedNodes != 0 {
		limits.Nodes = tc.FixedNodes
	}
	if tc.FixedDepth != 0 {
		limits.Depth = tc.FixedDepth
	}
	if tc.FixedTime != 0 {
		limits.MoveTime = int(tc.FixedTime / time.Millisecond)
	}
	return limits
}
