package engine

import (
	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// 16 bytes. Only origin and destination of the best move are kept.
type transEntry struct {
	key   uint64
	score int16
	depth int8
	bound uint8
	from  int8
	to    int8
	used  bool
}

type transTable struct {
	megabytes int
	entries   []transEntry
	mask      uint64
	used      int
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * Max(megabytes, 1) / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
	tt.used = 0
}

// Hashfull is the per mille of occupied slots.
func (tt *transTable) Hashfull() int {
	return tt.used * 1000 / len(tt.entries)
}

// Read returns the entry stored under the full key. move carries From/To only
// and must be matched against generated moves before use.
func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = &tt.entries[key&tt.mask]
	if !entry.used || entry.key != key {
		return
	}
	return int(entry.depth), int(entry.score), int(entry.bound),
		Move{From: entry.from, To: entry.to}, true
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[key&tt.mask]
	if entry.used && entry.key != key && depth < int(entry.depth) {
		return
	}
	if !entry.used {
		tt.used++
	}
	*entry = transEntry{
		key:   key,
		score: int16(score),
		depth: int8(Clamp(depth, 0, 127)),
		bound: uint8(bound),
		from:  move.From,
		to:    move.To,
		used:  true,
	}
}
