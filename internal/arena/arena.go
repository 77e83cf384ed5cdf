// Package arena plays engine-vs-engine matches from a list of openings.
package arena

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

func Run(ctx context.Context, config Config) (Score, error) {
	var logger = config.Logger
	if config.Concurrency <= 0 {
		return Score{}, errors.New("arena: concurrency must be positive")
	}
	if config.TimeControl == (TimeControl{}) {
		return Score{}, errors.New("arena: empty time control")
	}
	if config.NewEngineA == nil || config.NewEngineB == nil {
		return Score{}, errors.New("arena: engines not set")
	}

	logger.Info().
		Int("NumCPU", runtime.NumCPU()).
		Int("GOMAXPROCS", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", config.Concurrency).
		Int("openings", len(config.Openings)).
		Interface("timeControl", config.TimeControl).
		Msg("arena started")
	defer func() { logger.Info().Msg("arena finished") }()

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var score Score

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, config.Openings, config.Shuffle, gameInfos)
	})

	g.Go(func() error {
		return showResults(ctx, logger, gameResults, &score)
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, config, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	return score, err
}

func playGames(
	ctx context.Context,
	config Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var engineA = config.NewEngineA()
	var engineB = config.NewEngineB()
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, config.Logger, engineA, engineB,
			config.TimeControl, config.MaxPlies, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
