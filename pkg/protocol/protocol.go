// Package protocol implements a line based text protocol in the style of UCI
// for driving the engine from a terminal or a GUI adapter.
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
	"github.com/ChizhovVadim/CounterDraughts/pkg/engine"
)

type Engine interface {
	Prepare()
	Clear()
	Evaluate(p *common.Position) int
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

var (
	errQuit          = errors.New("quit")
	errSearchRunning = errors.New("search still running")
)

type Protocol struct {
	Logger       zerolog.Logger
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	output       io.Writer
	root         common.Position
	moves        []common.Move
	position     common.Position
	thinking     bool
	engineOutput chan common.SearchInfo
	cancel       context.CancelFunc
}

func New(name, author, version string, engine Engine, options []Option) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		Logger:   zerolog.Nop(),
		name:     name,
		author:   author,
		version:  version,
		engine:   engine,
		options:  options,
		output:   io.Discard,
		root:     initPosition,
		position: initPosition,
	}
}

// Run serves commands from input until quit, end of input or ctx is done.
// At end of input a running search is allowed to finish.
func (pr *Protocol) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	pr.output = output
	var commands = make(chan string)
	var done = make(chan struct{})
	defer close(done)

	go func() {
		defer close(commands)
		readCommands(input, commands, done)
	}()

	var searchResult common.SearchInfo
	for {
		select {
		case <-ctx.Done():
			pr.stopSearch()
			return ctx.Err()
		case si, ok := <-pr.engineOutput:
			if ok {
				pr.println(searchInfoToString(si))
				searchResult = si
			} else {
				pr.bestMove(searchResult)
				searchResult = common.SearchInfo{}
			}
		case commandLine, ok := <-commands:
			if !ok {
				pr.waitSearch()
				return nil
			}
			var err = pr.handle(commandLine)
			if err == errQuit {
				pr.stopSearch()
				return nil
			}
			if err != nil {
				pr.Logger.Warn().Err(err).Str("command", commandLine).Msg("command failed")
				pr.println("info string error " + err.Error())
			}
		}
	}
}

func readCommands(input io.Reader, commands chan<- string, done <-chan struct{}) {
	var scanner = bufio.NewScanner(input)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		select {
		case commands <- commandLine:
		case <-done:
			return
		}
		if commandLine == "quit" {
			return
		}
	}
}

func (pr *Protocol) println(s string) {
	fmt.Fprintln(pr.output, s)
}

func (pr *Protocol) bestMove(si common.SearchInfo) {
	if si.Move == common.MoveEmpty {
		pr.println("bestmove none")
	} else {
		pr.println("bestmove " + si.Move.String())
	}
	pr.thinking = false
	pr.cancel = nil
	pr.engineOutput = nil
}

func (pr *Protocol) stopSearch() {
	if pr.thinking {
		pr.cancel()
		pr.waitSearch()
	}
}

func (pr *Protocol) waitSearch() {
	if !pr.thinking {
		return
	}
	var searchResult common.SearchInfo
	for si := range pr.engineOutput {
		pr.println(searchInfoToString(si))
		searchResult = si
	}
	pr.bestMove(searchResult)
}

func (pr *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if commandName == "quit" {
		return errQuit
	}

	if pr.thinking {
		switch commandName {
		case "stop":
			pr.cancel()
			return nil
		case "isready":
			pr.println("readyok")
			return nil
		}
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "id":
		h = pr.idCommand
	case "setoption":
		h = pr.setOptionCommand
	case "isready":
		h = pr.isReadyCommand
	case "newgame":
		h = pr.newGameCommand
	case "position":
		h = pr.positionCommand
	case "go":
		h = pr.goCommand
	case "stop":
		return nil
	case "eval":
		h = pr.evalCommand
	case "moves":
		h = pr.movesCommand
	case "board":
		h = pr.boardCommand
	}

	if h == nil {
		return fmt.Errorf("command not found: %v", commandName)
	}

	return h(fields)
}

func (pr *Protocol) idCommand(fields []string) error {
	pr.println(fmt.Sprintf("id name %s %s", pr.name, pr.version))
	pr.println(fmt.Sprintf("id author %s", pr.author))
	for _, option := range pr.options {
		pr.println(option.String())
	}
	pr.println("idok")
	return nil
}

func (pr *Protocol) setOptionCommand(fields []string) error {
	var valueIndex = lo.IndexOf(fields, "value")
	if len(fields) < 4 || fields[0] != "name" || valueIndex < 2 || valueIndex+1 >= len(fields) {
		return errors.New("invalid setoption arguments")
	}
	var name = strings.Join(fields[1:valueIndex], " ")
	var value = strings.Join(fields[valueIndex+1:], " ")
	for _, option := range pr.options {
		if strings.EqualFold(option.Name(), name) {
			return option.Set(value)
		}
	}
	return fmt.Errorf("unhandled option %v", name)
}

func (pr *Protocol) isReadyCommand(fields []string) error {
	pr.engine.Prepare()
	pr.println("readyok")
	return nil
}

func (pr *Protocol) newGameCommand(fields []string) error {
	pr.engine.Clear()
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return err
	}
	pr.root = p
	pr.position = p
	pr.moves = nil
	return nil
}

func (pr *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("empty position command")
	}
	var movesIndex = lo.IndexOf(fields, "moves")
	var fen string
	switch fields[0] {
	case "startpos":
		fen = common.InitialPositionFen
	case "fen":
		var end = len(fields)
		if movesIndex >= 0 {
			end = movesIndex
		}
		fen = strings.Join(fields[1:end], " ")
	default:
		return fmt.Errorf("unknown position command %v", fields[0])
	}
	var root, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var p = root
	var moves []common.Move
	if movesIndex >= 0 {
		for _, smove := range fields[movesIndex+1:] {
			var move, err = p.ParseMove(smove)
			if err != nil {
				return fmt.Errorf("position after %v moves: %w", len(moves), err)
			}
			p.MakeMove(move)
			moves = append(moves, move)
		}
	}
	pr.root = root
	pr.moves = moves
	pr.position = p
	return nil
}

func (pr *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	var ctx, cancel = context.WithCancel(context.Background())
	pr.cancel = cancel
	pr.thinking = true
	var engineOutput = make(chan common.SearchInfo, 3)
	pr.engineOutput = engineOutput
	var searchParams = common.SearchParams{
		Position: pr.position,
		Moves:    cloneMoves(pr.moves),
		Limits:   limits,
		Progress: func(si common.SearchInfo) {
			select {
			case engineOutput <- si:
			default:
			}
		},
	}
	go func() {
		defer cancel()
		var searchResult = pr.engine.Search(ctx, searchParams)
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func (pr *Protocol) evalCommand(fields []string) error {
	pr.println(fmt.Sprintf("eval %v", pr.engine.Evaluate(&pr.position)))
	return nil
}

func (pr *Protocol) movesCommand(fields []string) error {
	var ml = pr.position.GenerateMoves(nil)
	var names = lo.Map(ml, func(m common.Move, _ int) string { return m.String() })
	pr.println(strings.TrimSpace("moves " + strings.Join(names, " ")))
	return nil
}

func (pr *Protocol) boardCommand(fields []string) error {
	pr.println(pr.position.Diagram())
	pr.println("fen " + pr.position.String())
	return nil
}

func searchInfoToString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.Score)
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if si.Source != "" && si.Source != common.SourceSearch {
		fmt.Fprintf(sb, " source %v", si.Source)
	}
	if len(si.MainLine) != 0 {
		sb.WriteString(" pv ")
		sb.WriteString(strings.Join(lo.Map(si.MainLine, func(m common.Move, _ int) string {
			return m.String()
		}), " "))
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType, err error) {
	var intArg = func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("missing value for %v", args[i])
		}
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, fmt.Errorf("bad value for %v: %w", args[i], err)
		}
		return v, nil
	}
	for i := 0; i < len(args); i++ {
		var v int
		switch args[i] {
		case "infinite":
			result.Infinite = true
			continue
		case "depth", "movetime", "nodes", "qdepth", "level":
			if v, err = intArg(i); err != nil {
				return
			}
		default:
			err = fmt.Errorf("unknown go argument %v", args[i])
			return
		}
		switch args[i] {
		case "depth":
			result.Depth = v
		case "movetime":
			result.MoveTime = v
		case "nodes":
			result.Nodes = v
		case "qdepth":
			result.QuiescenceDepth = v
		case "level":
			var levelLimits = engine.LevelSettings(v).Limits()
			if result.Depth == 0 {
				result.Depth = levelLimits.Depth
			}
			if result.MoveTime == 0 {
				result.MoveTime = levelLimits.MoveTime
			}
			if result.QuiescenceDepth == 0 {
				result.QuiescenceDepth = levelLimits.QuiescenceDepth
			}
		}
		i++
	}
	return
}

func cloneMoves(ml []common.Move) []common.Move {
	return append([]common.Move(nil), ml...)
}
