package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	IntN    func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		IntN:    random.Intn,
	}
}
