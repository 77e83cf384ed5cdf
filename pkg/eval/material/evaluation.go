package eval

import (
	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var eval int
	switch {
	case p.WhiteCount == 0:
		eval = -20000
	case p.BlackCount == 0:
		eval = 20000
	default:
		var whiteMen = p.WhiteCount - p.WhiteKings
		var blackMen = p.BlackCount - p.BlackKings
		eval = 100*(whiteMen-blackMen) + 300*(p.WhiteKings-p.BlackKings)
	}
	if !p.WhiteMove {
		eval = -eval
	}
	return eval
}
