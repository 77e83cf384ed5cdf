package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterDraughts/internal/server"
	"github.com/ChizhovVadim/CounterDraughts/pkg/book"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

func main() {
	var addr = flag.String("addr", ":8080", "listen address")
	var evalName = flag.String("eval", "", "evaluation function: "+strings.Join(evalbuilder.Names(), ", "))
	var hash = flag.Int("hash", 64, "transposition table size in MB")
	var verbose = flag.Bool("v", false, "debug logging")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	var openings, err = book.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("load opening book")
	}
	openings.Random = true

	var eng = engine.NewEngine(evalbuilder.Get(*evalName))
	eng.Options.Hash = *hash
	eng.Logger = logger
	eng.Book = openings
	eng.Prepare()

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(eng, logger).Run(ctx, *addr); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
