package arena

import (
	"context"

	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

func loadOpenings(
	ctx context.Context,
	openings [][]common.Move,
	shuffle bool,
	gameInfos chan<- gameInfo,
) error {

	if shuffle {
		openings = append([][]common.Move(nil), openings...)
		frand.Shuffle(len(openings), func(i, j int) {
			openings[i], openings[j] = openings[j], openings[i]
		})
	}

	for i, opening := range openings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsWhite: true, gameNumber: 1 + 2*i}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsWhite: false, gameNumber: 1 + 2*i + 1}:
		}
	}

	return nil
}
