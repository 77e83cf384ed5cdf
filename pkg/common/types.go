package common

import "time"

type Piece int8

const (
	Empty Piece = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

const (
	BoardSize   = 10
	SquareCount = BoardSize * BoardSize
	MaxMoves    = 128
	MaxCaptures = 20
)

const InitialPositionFen = "W:W31-50:B1-20"

// Position is a 10x10 mailbox board. Squares, counts and Key are kept in sync
// incrementally by MakeMove/UnmakeMove.
type Position struct {
	Squares    [SquareCount]Piece
	WhiteMove  bool
	WhiteCount int
	BlackCount int
	WhiteKings int
	BlackKings int
	Reversible int
	Key        uint64
}

// Move is comparable; the zero value is MoveEmpty.
type Move struct {
	From     int8
	To       int8
	Count    int8
	Captured [MaxCaptures]int8
}

var MoveEmpty = Move{}

type Undo struct {
	Moved      Piece
	Promoted   bool
	Captured   [MaxCaptures]Piece
	Key        uint64
	Reversible int
}

type LimitsType struct {
	Infinite        bool
	MoveTime        int
	Depth           int
	Nodes           int
	QuiescenceDepth int
}

type SearchParams struct {
	Position Position
	Moves    []Move
	Limits   LimitsType
	Progress func(si SearchInfo)
	Stop     func() bool
}

const (
	SourceSearch = "search"
	SourceBook   = "book"
	SourceSolver = "pns"
	SourceForced = "forced"
	SourceNone   = "none"
)

type SearchInfo struct {
	Move     Move
	Score    int
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
	Source   string
	Stats    string
}

func (p Piece) IsWhite() bool {
	return p == WhiteMan || p == WhiteKing
}

func (p Piece) IsBlack() bool {
	return p == BlackMan || p == BlackKing
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

func (p Piece) IsMan() bool {
	return p == WhiteMan || p == BlackMan
}

func (p Piece) Crowned() Piece {
	switch p {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	}
	return p
}

func MakePiece(white, king bool) Piece {
	if white {
		return let(king, WhiteKing, WhiteMan)
	}
	return let(king, BlackKing, BlackMan)
}

func (p Piece) String() string {
	switch p {
	case WhiteMan:
		return "w"
	case BlackMan:
		return "b"
	case WhiteKing:
		return "W"
	case BlackKing:
		return "B"
	}
	return "."
}
