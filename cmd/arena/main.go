package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/internal/arena"
	"github.com/ChizhovVadim/CounterDraughts/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterDraughts/pkg/book"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

type Config struct {
	Concurrency int
	Nodes       int
	Depth       int
	MoveTime    int
	MaxPlies    int
	Hash        int
	EvalA       string
	EvalB       string
	Shuffle     bool
	Verbose     bool
}

var config Config

func main() {
	flag.IntVar(&config.Concurrency, "concurrency", 4, "Number of games played in parallel")
	flag.IntVar(&config.Nodes, "nodes", 0, "Nodes per move")
	flag.IntVar(&config.Depth, "depth", 0, "Depth per move")
	flag.IntVar(&config.MoveTime, "movetime", 100, "Milliseconds per move")
	flag.IntVar(&config.MaxPlies, "maxplies", 300, "Adjudicate a draw after this many plies")
	flag.IntVar(&config.Hash, "hash", 16, "Transposition table size per engine in MB")
	flag.StringVar(&config.EvalA, "evala", "classic", "Evaluation of engine A")
	flag.StringVar(&config.EvalB, "evalb", "material", "Evaluation of engine B")
	flag.BoolVar(&config.Shuffle, "shuffle", false, "Shuffle openings")
	flag.BoolVar(&config.Verbose, "v", false, "Debug logging")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !config.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	logger.Info().Interface("config", config).Msg("arena config")

	var openings, err = book.New()
	if err != nil {
		return err
	}

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	score, err := arena.Run(ctx, arena.Config{
		Concurrency: config.Concurrency,
		TimeControl: arena.TimeControl{
			FixedNodes: config.Nodes,
			FixedDepth: config.Depth,
			FixedTime:  time.Duration(config.MoveTime) * time.Millisecond,
		},
		Openings:   openings.Lines(),
		Shuffle:    config.Shuffle,
		MaxPlies:   config.MaxPlies,
		NewEngineA: newEngine(config.EvalA),
		NewEngineB: newEngine(config.EvalB),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("wins", score.Wins).
		Int("losses", score.Losses).
		Int("draws", score.Draws).
		Msg("match finished")
	return nil
}

func newEngine(evalName string) func() arena.IEngine {
	return func() arena.IEngine {
		var eng = engine.NewEngine(evalbuilder.Get(evalName))
		eng.Options.Hash = config.Hash
		eng.Options.UseBook = false
		eng.Prepare()
		return eng
	}
}
