package common

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

var (
	pieceKeys [BlackKing + 1][SquareCount]uint64
	sideKey   uint64
)

func init() {
	var seed [32]byte
	copy(seed[:], "counter draughts zobrist keys v1")
	var rng = frand.NewCustom(seed[:], 1024, 12)
	var buf [8]byte
	var next = func() uint64 {
		for {
			rng.Read(buf[:])
			if v := binary.LittleEndian.Uint64(buf[:]); v != 0 {
				return v
			}
		}
	}
	for piece := WhiteMan; piece <= BlackKing; piece++ {
		for _, sq := range darkSquaresInit() {
			pieceKeys[piece][sq] = next()
		}
	}
	sideKey = next()
}

// darkSquaresInit does not rely on the square.go init having run.
func darkSquaresInit() []int {
	var result = make([]int, 0, 50)
	for n := 1; n <= 50; n++ {
		result = append(result, SquareFromNumber(n))
	}
	return result
}

// ComputeKey hashes the position from scratch.
func (p *Position) ComputeKey() uint64 {
	var key uint64
	for _, sq := range darkSquares {
		if piece := p.Squares[sq]; piece != Empty {
			key ^= pieceKeys[piece][sq]
		}
	}
	if !p.WhiteMove {
		key ^= sideKey
	}
	return key
}
