package emulator

import "math/rand/v2"

// RandomSource provides the random bytes for the RND instruction.
type RandomSource interface {
	Uint8() uint8
}

// mathRandom is the default RandomSource.
type mathRandom struct{}

func (mathRandom) Uint8() uint8 {
	return uint8(rand.UintN(256))
}
