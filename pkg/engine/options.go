package engine

import (
	"math"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

type Options struct {
	Hash             int
	QuiescenceDepth  int
	DeltaMargin      int
	UseBook          bool
	PNThreshold      int
	PNNodes          int
	PNFallback       bool
	NullMovePruning  bool
	Lmr              bool
	AspirationWindow int
	ProgressMinNodes int
	reductions       [64][64]int
}

func NewOptions() Options {
	var result = Options{
		Hash:             16,
		QuiescenceDepth:  16,
		DeltaMargin:      200,
		UseBook:          true,
		PNThreshold:      6,
		PNNodes:          200_000,
		PNFallback:       true,
		NullMovePruning:  true,
		Lmr:              true,
		AspirationWindow: 50,
		ProgressMinNodes: 0,
	}
	result.InitLmr(LmrMult)
	return result
}

// Reduction returns the late move reduction in plies, 1 or 2.
func (o *Options) Reduction(d, m int) int {
	return o.reductions[common.Min(d, 63)][common.Min(m, 63)]
}

func (o *Options) InitLmr(f func(d, m float64) float64) {
	initLmr(&o.reductions, f)
}

func initLmr(reductions *[64][64]int,
	f func(d, m float64) float64) {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			var r = f(float64(d), float64(m))
			reductions[d][m] = common.Clamp(int(r), 1, 2)
		}
	}
}

func LmrMult(d, m float64) float64 {
	return lirp(math.Log(d)*math.Log(m), math.Log(3)*math.Log(4), math.Log(20)*math.Log(30), 1, 2)
}

func lirp(x, x1, x2, y1, y2 float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
