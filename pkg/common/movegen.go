package common

// GenerateMoves appends legal moves to ml[:0]. Captures are mandatory and only
// sequences with the maximum number of captured pieces are legal.
func (p *Position) GenerateMoves(ml []Move) []Move {
	ml = p.GenerateCaptures(ml)
	if len(ml) != 0 {
		return ml
	}
	return p.generateQuiets(ml)
}

func (p *Position) generateQuiets(ml []Move) []Move {
	ml = ml[:0]
	var forward = ForwardDirs(p.WhiteMove)
	for _, from := range darkSquares {
		var piece = p.Squares[from]
		if !p.IsOwn(piece) {
			continue
		}
		if piece.IsKing() {
			for dir := 0; dir < 4; dir++ {
				for _, to := range rays[from][dir] {
					if p.Squares[to] != Empty {
						break
					}
					ml = append(ml, Move{From: from, To: to})
				}
			}
		} else {
			for _, dir := range forward {
				var ray = rays[from][dir]
				if len(ray) != 0 && p.Squares[ray[0]] == Empty {
					ml = append(ml, Move{From: from, To: ray[0]})
				}
			}
		}
	}
	return ml
}

// GenerateCaptures appends the legal capture sequences to ml[:0].
func (p *Position) GenerateCaptures(ml []Move) []Move {
	var gen = captureGenerator{
		position: p,
		moves:    ml[:0],
	}
	for _, from := range darkSquares {
		if p.IsOwn(p.Squares[from]) {
			gen.generateFrom(int(from))
		}
	}
	return gen.moves
}

// HasCaptures reports whether the side to move has at least one capture.
func (p *Position) HasCaptures() bool {
	for _, from := range darkSquares {
		var piece = p.Squares[from]
		if !p.IsOwn(piece) {
			continue
		}
		for dir := 0; dir < 4; dir++ {
			var ray = rays[from][dir]
			var i = 0
			if piece.IsKing() {
				for i < len(ray) && p.Squares[ray[i]] == Empty {
					i++
				}
			}
			if i+1 < len(ray) && p.IsEnemy(p.Squares[ray[i]]) && p.Squares[ray[i+1]] == Empty {
				return true
			}
		}
	}
	return false
}

type captureGenerator struct {
	position *Position
	moves    []Move
	best     int
	king     bool
	current  Move
	captured [SquareCount]bool
}

// generateFrom lifts the piece off its origin for the duration of the
// enumeration so that it may pass over or land on its starting square.
func (g *captureGenerator) generateFrom(from int) {
	var p = g.position
	var piece = p.Squares[from]
	p.Squares[from] = Empty
	defer func() {
		p.Squares[from] = piece
	}()
	g.king = piece.IsKing()
	g.current = Move{From: int8(from)}
	g.search(from)
}

func (g *captureGenerator) search(sq int) {
	var p = g.position
	var extended = false
	for dir := 0; dir < 4; dir++ {
		var ray = rays[sq][dir]
		var i = 0
		if g.king {
			for i < len(ray) && p.Squares[ray[i]] == Empty {
				i++
			}
		}
		if i+1 >= len(ray) {
			continue
		}
		var victim = int(ray[i])
		if !p.IsEnemy(p.Squares[victim]) || g.captured[victim] {
			continue
		}
		for j := i + 1; j < len(ray) && p.Squares[ray[j]] == Empty; j++ {
			extended = true
			g.jump(victim, int(ray[j]))
			if !g.king {
				break
			}
		}
	}
	if !extended && g.current.Count != 0 {
		g.emit(sq)
	}
}

func (g *captureGenerator) jump(victim, landing int) {
	var n = g.current.Count
	g.current.Captured[n] = int8(victim)
	g.current.Count++
	g.captured[victim] = true
	defer func() {
		g.captured[victim] = false
		g.current.Count = n
	}()
	g.search(landing)
}

func (g *captureGenerator) emit(to int) {
	var count = int(g.current.Count)
	if count < g.best {
		return
	}
	if count > g.best {
		g.best = count
		g.moves = g.moves[:0]
	}
	var m = g.current
	m.To = int8(to)
	for i := int(m.Count); i < MaxCaptures; i++ {
		m.Captured[i] = 0
	}
	for i := range g.moves {
		if g.moves[i].Equivalent(m) {
			return
		}
	}
	g.moves = append(g.moves, m)
}
