package common

import (
	"errors"
	"fmt"
)

func (p *Position) put(sq int, piece Piece) {
	p.Squares[sq] = piece
	p.Key ^= pieceKeys[piece][sq]
	switch piece {
	case WhiteMan:
		p.WhiteCount++
	case BlackMan:
		p.BlackCount++
	case WhiteKing:
		p.WhiteCount++
		p.WhiteKings++
	case BlackKing:
		p.BlackCount++
		p.BlackKings++
	}
}

func (p *Position) remove(sq int) Piece {
	var piece = p.Squares[sq]
	p.Squares[sq] = Empty
	p.Key ^= pieceKeys[piece][sq]
	switch piece {
	case WhiteMan:
		p.WhiteCount--
	case BlackMan:
		p.BlackCount--
	case WhiteKing:
		p.WhiteCount--
		p.WhiteKings--
	case BlackKing:
		p.BlackCount--
		p.BlackKings--
	}
	return piece
}

func (p *Position) TotalPieces() int {
	return p.WhiteCount + p.BlackCount
}

func (p *Position) SideCount(white bool) int {
	return let(white, p.WhiteCount, p.BlackCount)
}

func (p *Position) IsOwn(piece Piece) bool {
	return piece != Empty && piece.IsWhite() == p.WhiteMove
}

func (p *Position) IsEnemy(piece Piece) bool {
	return piece != Empty && piece.IsWhite() != p.WhiteMove
}

// IsPromotion reports whether m crowns a man. Call before MakeMove.
func (p *Position) IsPromotion(m Move) bool {
	var piece = p.Squares[m.From]
	return piece.IsMan() && Row(int(m.To)) == PromotionRow(piece.IsWhite())
}

func (p *Position) MakeMove(m Move) Undo {
	var u = Undo{
		Moved:      p.Squares[m.From],
		Key:        p.Key,
		Reversible: p.Reversible,
	}
	var piece = p.remove(int(m.From))
	for i := 0; i < int(m.Count); i++ {
		u.Captured[i] = p.remove(int(m.Captured[i]))
	}
	if piece.IsMan() && Row(int(m.To)) == PromotionRow(piece.IsWhite()) {
		piece = piece.Crowned()
		u.Promoted = true
	}
	p.put(int(m.To), piece)
	if m.Count == 0 && u.Moved.IsKing() {
		p.Reversible++
	} else {
		p.Reversible = 0
	}
	p.WhiteMove = !p.WhiteMove
	p.Key ^= sideKey
	return u
}

func (p *Position) UnmakeMove(m Move, u *Undo) {
	p.WhiteMove = !p.WhiteMove
	p.remove(int(m.To))
	for i := int(m.Count) - 1; i >= 0; i-- {
		p.put(int(m.Captured[i]), u.Captured[i])
	}
	p.put(int(m.From), u.Moved)
	p.Key = u.Key
	p.Reversible = u.Reversible
}

func (p *Position) MakeNullMove() {
	p.WhiteMove = !p.WhiteMove
	p.Key ^= sideKey
}

func (p *Position) UnmakeNullMove() {
	p.MakeNullMove()
}

// Validate checks the incremental state against a full scan.
func (p *Position) Validate() error {
	var wc, bc, wk, bk int
	for sq, piece := range p.Squares {
		if piece == Empty {
			continue
		}
		if !IsDarkSquare(sq) {
			return fmt.Errorf("piece on light square %v", sq)
		}
		switch piece {
		case WhiteMan:
			wc++
		case BlackMan:
			bc++
		case WhiteKing:
			wc++
			wk++
		case BlackKing:
			bc++
			bk++
		default:
			return fmt.Errorf("bad piece %v on square %v", piece, SquareNumber(sq))
		}
	}
	if wc != p.WhiteCount || bc != p.BlackCount ||
		wk != p.WhiteKings || bk != p.BlackKings {
		return errors.New("piece counts out of sync")
	}
	if p.Key != p.ComputeKey() {
		return errors.New("hash key out of sync")
	}
	return nil
}

// Mirror returns the position rotated by 180 degrees with colours swapped.
func (p *Position) Mirror() Position {
	var result = Position{WhiteMove: !p.WhiteMove, Reversible: p.Reversible}
	for _, sq := range darkSquares {
		var piece = p.Squares[sq]
		if piece == Empty {
			continue
		}
		result.put(MirrorSquare(int(sq)), MakePiece(!piece.IsWhite(), piece.IsKing()))
	}
	if !result.WhiteMove {
		result.Key ^= sideKey
	}
	return result
}
