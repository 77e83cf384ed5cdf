package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterDraughts/pkg/book"
	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

var benchFens = []string{
	common.InitialPositionFen,
	"W:W25,27,28,30,32,33,34,35,37,38,39,40,42,43,44,48:B3,6,7,8,9,11,12,13,14,16,17,18,19,21,23,26",
	"B:W27,28,32,33,37,38,42,43,46,48:B7,8,12,13,17,18,19,22,23,24",
	"W:W25,30,34,35,40,45:B6,11,15,16,20,26",
	"W:WK46,31,32,33:B9,K5,18",
}

type Config struct {
	Depth   int
	Eval    string
	Profile string
	Verbose bool
}

var config Config

func main() {
	flag.IntVar(&config.Depth, "depth", 10, "search depth per position")
	flag.StringVar(&config.Eval, "eval", "", "evaluation function: "+strings.Join(evalbuilder.Names(), ", "))
	flag.StringVar(&config.Profile, "profile", "", "cpu or mem")
	flag.BoolVar(&config.Verbose, "v", false, "log every iteration")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !config.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("bench failed")
		os.Exit(1)
	}
}

// run must return rather than exit: the deferred profile stop writes the file.
func run(logger zerolog.Logger) error {
	switch config.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "":
	default:
		return fmt.Errorf("unknown profile mode %q", config.Profile)
	}

	var positions, err = benchPositions()
	if err != nil {
		return fmt.Errorf("bench positions: %w", err)
	}

	var eng = engine.NewEngine(evalbuilder.Get(config.Eval))
	eng.Options.Hash = 64
	eng.Options.UseBook = false
	eng.Logger = logger

	var start = time.Now()
	var nodes int64
	for _, p := range positions {
		eng.Clear()
		var si = eng.Search(context.Background(), common.SearchParams{
			Position: p,
			Limits:   common.LimitsType{Depth: config.Depth},
		})
		nodes += si.Nodes
		logger.Info().
			Str("fen", p.String()).
			Str("move", si.Move.LongString()).
			Int("score", si.Score).
			Int("depth", si.Depth).
			Int64("nodes", si.Nodes).
			Str("source", si.Source).
			Msg(si.Stats)
	}
	var elapsed = time.Since(start)
	logger.Info().
		Dur("time", elapsed).
		Int64("nodes", nodes).
		Int64("kNPS", nodes/(elapsed.Milliseconds()+1)).
		Msg("benchmark finished")
	return nil
}

// benchPositions are the fixed positions plus the end of every book line.
func benchPositions() ([]common.Position, error) {
	var result []common.Position
	for _, fen := range benchFens {
		var p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	var b, err = book.New()
	if err != nil {
		return nil, err
	}
	for _, line := range b.Lines() {
		var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
		if err != nil {
			return nil, err
		}
		for _, move := range line {
			p.MakeMove(move)
		}
		result = append(result, p)
	}
	return result, nil
}
