package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDraughts/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterDraughts/pkg/book"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
	"github.com/ChizhovVadim/CounterDraughts/pkg/protocol"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "Counter Draughts"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
	flgEval     string
	flgBook     bool
	flgVerbose  bool
)

func main() {
	flag.StringVar(&flgEval, "eval", "", "evaluation function: "+strings.Join(evalbuilder.Names(), ", "))
	flag.BoolVar(&flgBook, "randombook", false, "random choice among book moves")
	flag.BoolVar(&flgVerbose, "v", false, "debug logging")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !flgVerbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	logger.Info().
		Str("VersionName", versionName).
		Str("BuildDate", buildDate).
		Str("GitRevision", gitRevision).
		Str("RuntimeVersion", runtime.Version()).
		Str("GOARCH", runtime.GOARCH).
		Str("GOOS", runtime.GOOS).
		Int("NumCPU", runtime.NumCPU()).
		Msg(name)

	var openings, err = book.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("load opening book")
	}
	openings.Random = flgBook

	var eng = engine.NewEngine(evalbuilder.Get(flgEval))
	eng.Logger = logger
	eng.Book = openings

	var options = &eng.Options
	var pr = protocol.New(name, author, versionName, eng,
		[]protocol.Option{
			&protocol.IntOption{Key: "Hash", Min: 1, Max: 1 << 12, Value: &options.Hash},
			&protocol.IntOption{Key: "QuiescenceDepth", Min: 0, Max: 64, Value: &options.QuiescenceDepth},
			&protocol.IntOption{Key: "PNThreshold", Min: 0, Max: 40, Value: &options.PNThreshold},
			&protocol.IntOption{Key: "PNNodes", Min: 1, Max: 1 << 26, Value: &options.PNNodes},
			&protocol.BoolOption{Key: "PNFallback", Value: &options.PNFallback},
			&protocol.BoolOption{Key: "UseBook", Value: &options.UseBook},
			&protocol.BoolOption{Key: "NullMovePruning", Value: &options.NullMovePruning},
			&protocol.BoolOption{Key: "Lmr", Value: &options.Lmr},
			&protocol.IntOption{Key: "AspirationWindow", Min: 0, Max: 1000, Value: &options.AspirationWindow},
		},
	)
	pr.Logger = logger
	if err := pr.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("protocol")
		os.Exit(1)
	}
}
