package evalbuilder

import (
	"fmt"

	classic "github.com/ChizhovVadim/CounterDraughts/pkg/eval/classic"
	material "github.com/ChizhovVadim/CounterDraughts/pkg/eval/material"
)

func Get(key string) func() interface{} {
	return func() interface{} {
		switch key {
		case "", "classic":
			return classic.NewEvaluationService()
		case "material":
			return material.NewEvaluationService()
		}
		panic(fmt.Errorf("bad eval %v", key))
	}
}

func Names() []string {
	return []string{"classic", "material"}
}
