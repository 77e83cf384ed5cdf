package engine

import . "github.com/ChizhovVadim/CounterDraughts/pkg/common"

const historyMax = 1 << 16

// historyService counts quiet moves by origin and destination that caused a
// cutoff or became the best move.
type historyService struct {
	table [SquareCount][SquareCount]int32
}

func (h *historyService) Clear() {
	for i := range h.table {
		for j := range h.table[i] {
			h.table[i][j] = 0
		}
	}
}

func (h *historyService) Read(m Move) int {
	return int(h.table[m.From][m.To])
}

func (h *historyService) Update(m Move, depth int) {
	var v = &h.table[m.From][m.To]
	*v += int32(depth * depth)
	if *v > historyMax {
		h.halve()
	}
}

func (h *historyService) halve() {
	for i := range h.table {
		for j := range h.table[i] {
			h.table[i][j] /= 2
		}
	}
}

func (t *thread) updateKiller(move Move, height int) {
	if t.stack[height].killer1 != move {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = move
	}
}

func (t *thread) clearKillers() {
	for i := range t.stack {
		t.stack[i].killer1 = MoveEmpty
		t.stack[i].killer2 = MoveEmpty
	}
}
