// Package pns implements a proof-number search that decides whether the side
// to move can force a win in small endgames.
package pns

import (
	"context"

	. "github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

type Status int

const (
	Unknown Status = iota
	Proven
	Disproven
)

func (s Status) String() string {
	switch s {
	case Proven:
		return "proven"
	case Disproven:
		return "disproven"
	}
	return "unknown"
}

const (
	infinity = 1 << 30
	// lines longer than this are treated as not winning
	maxPly = 80
	// score reported for a proven win
	ScoreWin = 19000
)

type Result struct {
	Status   Status
	BestMove Move
	Nodes    int
	Score    int
}

// node is an OR node when the root side is to move and an AND node otherwise.
// The position of a node is rebuilt by replaying moves from the root.
type node struct {
	move     Move
	key      uint64
	and      bool
	expanded bool
	proof    int
	disproof int
	children []*node
}

func (n *node) solved() bool {
	return n.proof == 0 || n.disproof == 0
}

type solver struct {
	ctx      context.Context
	position Position
	maxNodes int
	nodes    int
	path     []*node
	undo     []Undo
	moves    [MaxMoves]Move
	probe    [MaxMoves]Move
}

// Solve runs until the root is proven, disproven, the node budget is spent,
// ctx is done or stop reports true. stop may be nil. p is not modified.
func Solve(ctx context.Context, p *Position, maxNodes int, stop func() bool) Result {
	var s = &solver{
		ctx:      ctx,
		position: *p,
		maxNodes: maxNodes,
	}
	var root = &node{key: p.Key}
	s.initNumbers(root)
	s.nodes = 1

	for iteration := 0; !root.solved() && s.nodes < s.maxNodes; iteration++ {
		if iteration&63 == 0 && (ctx.Err() != nil || stop != nil && stop()) {
			break
		}
		var leaf = s.selectMostProving(root)
		s.expand(leaf)
		s.update()
	}

	var result = Result{
		Nodes:    s.nodes,
		BestMove: bestChild(root),
	}
	switch {
	case root.proof == 0:
		result.Status = Proven
		result.Score = ScoreWin
	case root.disproof == 0:
		result.Status = Disproven
	default:
		result.Status = Unknown
	}
	return result
}

func bestChild(root *node) Move {
	var best *node
	for _, child := range root.children {
		if best == nil || child.proof < best.proof {
			best = child
		}
	}
	if best == nil {
		return MoveEmpty
	}
	return best.move
}

// selectMostProving descends from the root along children whose number equals
// the parent's, applying their moves to the working position.
func (s *solver) selectMostProving(root *node) *node {
	s.path = append(s.path[:0], root)
	s.undo = s.undo[:0]
	var n = root
	for n.expanded {
		var next *node
		for _, child := range n.children {
			if !n.and && child.proof == n.proof ||
				n.and && child.disproof == n.disproof {
				next = child
				break
			}
		}
		if next == nil {
			break
		}
		s.undo = append(s.undo, s.position.MakeMove(next.move))
		s.path = append(s.path, next)
		n = next
	}
	return n
}

func (s *solver) expand(n *node) {
	var ml = s.position.GenerateMoves(s.moves[:])
	n.expanded = true
	n.children = make([]*node, 0, len(ml))
	for _, m := range ml {
		var u = s.position.MakeMove(m)
		var child = &node{
			move: m,
			key:  s.position.Key,
			and:  !n.and,
		}
		s.initNumbers(child)
		s.position.UnmakeMove(m, &u)
		n.children = append(n.children, child)
		s.nodes++
		if !n.and && child.proof == 0 || n.and && child.disproof == 0 {
			break
		}
	}
	n.setNumbers()
}

// initNumbers sets the numbers of a fresh node from the working position.
// A side without moves loses. Repetitions and over-long lines count as not
// winning for the root side.
func (s *solver) initNumbers(n *node) {
	if len(s.path) >= maxPly || s.isRepeat(n.key) {
		n.proof, n.disproof = infinity, 0
		return
	}
	var count = len(s.position.GenerateMoves(s.probe[:]))
	switch {
	case count == 0 && n.and:
		n.proof, n.disproof = 0, infinity
	case count == 0:
		n.proof, n.disproof = infinity, 0
	case n.and:
		n.proof, n.disproof = count, 1
	default:
		n.proof, n.disproof = 1, count
	}
}

func (s *solver) isRepeat(key uint64) bool {
	for _, ancestor := range s.path {
		if ancestor.key == key {
			return true
		}
	}
	return false
}

// update recomputes the numbers along the selected path bottom up and
// restores the working position. Solved subtrees below the root are released.
func (s *solver) update() {
	for i := len(s.path) - 1; i >= 0; i-- {
		var n = s.path[i]
		n.setNumbers()
		if i == 0 {
			break
		}
		if n.solved() {
			n.children = nil
		}
		s.position.UnmakeMove(n.move, &s.undo[i-1])
	}
	s.undo = s.undo[:0]
}

func (n *node) setNumbers() {
	if !n.expanded || len(n.children) == 0 {
		return
	}
	if n.and {
		n.proof, n.disproof = 0, infinity
		for _, child := range n.children {
			n.proof = add(n.proof, child.proof)
			n.disproof = Min(n.disproof, child.disproof)
		}
	} else {
		n.proof, n.disproof = infinity, 0
		for _, child := range n.children {
			n.proof = Min(n.proof, child.proof)
			n.disproof = add(n.disproof, child.disproof)
		}
	}
}

func add(a, b int) int {
	return Min(a+b, infinity)
}
