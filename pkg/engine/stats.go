package engine

import (
	"fmt"
	"strings"
)

// Stats counts search events of one Search call.
type Stats struct {
	Nodes           uint64
	QNodes          uint64
	TTProbes        uint64
	TTHits          uint64
	TTCuts          uint64
	BetaCuts        uint64
	FirstMoveCuts   uint64
	NullMoveCuts    uint64
	LmrReSearches   uint64
	AspirationFails uint64
	Repetitions     uint64
	SelDepth        int
	Hashfull        int
}

func perC(n, total uint64) string {
	if total == 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d [%.1f%%]", n, float64(n)/float64(total)*100)
}

func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "nodes: %d qnodes: %s", s.Nodes, perC(s.QNodes, s.Nodes))
	fmt.Fprintf(&sb, " tt-hits: %s tt-cuts: %s", perC(s.TTHits, s.TTProbes), perC(s.TTCuts, s.TTProbes))
	fmt.Fprintf(&sb, " cuts: %d first-move-cuts: %s", s.BetaCuts, perC(s.FirstMoveCuts, s.BetaCuts))
	fmt.Fprintf(&sb, " null-cuts: %d lmr-researches: %d", s.NullMoveCuts, s.LmrReSearches)
	fmt.Fprintf(&sb, " aspiration-fails: %d repetitions: %d", s.AspirationFails, s.Repetitions)
	fmt.Fprintf(&sb, " seldepth: %d hashfull: %d", s.SelDepth, s.Hashfull)
	return sb.String()
}
