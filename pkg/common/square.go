package common

import "strconv"

// Directions in row/col space. White men move toward row 0.
const (
	DirNW = iota
	DirNE
	DirSW
	DirSE
)

const SquareNone = -1

var dirDelta = [4][2]int{
	DirNW: {-1, -1},
	DirNE: {-1, 1},
	DirSW: {1, -1},
	DirSE: {1, 1},
}

var (
	// rays[sq][dir] lists the squares met walking from sq in dir, nearest first.
	rays        [SquareCount][4][]int8
	darkSquares [50]int8
)

func init() {
	for n := 1; n <= 50; n++ {
		darkSquares[n-1] = int8(SquareFromNumber(n))
	}
	for _, sq := range darkSquares {
		for dir := range dirDelta {
			var r, c = Row(int(sq)), Col(int(sq))
			for {
				r += dirDelta[dir][0]
				c += dirDelta[dir][1]
				if r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
					break
				}
				rays[sq][dir] = append(rays[sq][dir], int8(MakeSquare(r, c)))
			}
		}
	}
}

func MakeSquare(row, col int) int {
	return row*BoardSize + col
}

func Row(sq int) int {
	return sq / BoardSize
}

func Col(sq int) int {
	return sq % BoardSize
}

func IsDarkSquare(sq int) bool {
	return sq >= 0 && sq < SquareCount && (Row(sq)+Col(sq))&1 == 1
}

// SquareFromNumber maps standard numbering 1..50 to a board index.
func SquareFromNumber(n int) int {
	if n < 1 || n > 50 {
		return SquareNone
	}
	var row = (n - 1) / 5
	var col = 2 * ((n - 1) % 5)
	if row&1 == 0 {
		col++
	}
	return MakeSquare(row, col)
}

// SquareNumber is the inverse of SquareFromNumber. Light squares map to 0.
func SquareNumber(sq int) int {
	if !IsDarkSquare(sq) {
		return 0
	}
	return Row(sq)*5 + Col(sq)/2 + 1
}

func SquareName(sq int) string {
	return strconv.Itoa(SquareNumber(sq))
}

// DarkSquares returns board indexes in numbering order.
func DarkSquares() []int8 {
	return darkSquares[:]
}

func Ray(sq, dir int) []int8 {
	return rays[sq][dir]
}

// Neighbour returns the adjacent square in dir or SquareNone.
func Neighbour(sq, dir int) int {
	var r = rays[sq][dir]
	if len(r) == 0 {
		return SquareNone
	}
	return int(r[0])
}

func OppositeDir(dir int) int {
	return 3 - dir
}

func ForwardDirs(white bool) [2]int {
	if white {
		return [2]int{DirNW, DirNE}
	}
	return [2]int{DirSW, DirSE}
}

func PromotionRow(white bool) int {
	return let(white, 0, BoardSize-1)
}

// MirrorSquare rotates the board by 180 degrees.
func MirrorSquare(sq int) int {
	return SquareCount - 1 - sq
}
