package arena

import (
	"context"
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

func showResults(
	ctx context.Context,
	logger zerolog.Logger,
	gameResults <-chan gameResult,
	score *Score,
) error {
	for gameResult := range gameResults {
		logger.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Int("plies", len(gameResult.moves)).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Msg("finished game")
		if gameResult.result == gameResultDraw {
			score.Draws++
		} else if gameResult.result == gameResultWhiteWins && gameResult.gameInfo.engineAIsWhite ||
			gameResult.result == gameResultBlackWins && !gameResult.gameInfo.engineAIsWhite {
			score.Wins++
		} else {
			score.Losses++
		}
		var stat = computeStat(score.Wins, score.Losses, score.Draws)
		logger.Info().
			Int("wins", score.Wins).
			Int("losses", score.Losses).
			Int("draws", score.Draws).
			Int("games", score.Games()).
			Str("fraction", formatFloat(stat.winningFraction, 3)).
			Str("elo", formatFloat(stat.eloDifference, 1)).
			Str("los", formatFloat(stat.los*100, 1)).
			Msg("score")
	}
	return nil
}

type GameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

//https://chessprogramming.wikispaces.com/Match%20Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	if games == 0 {
		return GameStatistics{winningFraction: 0.5, los: 0.5}
	}
	var winning_fraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var elo_difference = -math.Log(1/winning_fraction-1) * 400 / math.Ln10
	var los = 0.5
	if wins+losses != 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		winningFraction: winning_fraction,
		eloDifference:   elo_difference,
		los:             los,
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func gameResultString(v int) string {
	if v == gameResultWhiteWins {
		return "1-0"
	}
	if v == gameResultBlackWins {
		return "0-1"
	}
	if v == gameResultDraw {
		return "1/2-1/2"
	}
	return ""
}
