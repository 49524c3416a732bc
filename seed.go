// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"math/rand/v2"
	"sync"
)

// rngs holds the host generator, used for scalar draws, and the array
// generator, used to fill Arrays. They are separate instances so draws
// from one never shift the sequence of the other.
var rngs = struct {
	mu    sync.Mutex
	host  *rand.Rand
	array *rand.Rand
}{
	host:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	array: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
}

// SetRNGSeed re-seeds both the host and the array generator with seed.
func SetRNGSeed(seed uint64) {
	rngs.mu.Lock()
	rngs.host = rand.New(rand.NewPCG(seed, seed))
	rngs.array = rand.New(rand.NewPCG(seed, seed))
	rngs.mu.Unlock()
}

// HostFloat64 draws from the host generator in [0, 1).
func HostFloat64() float64 {
	rngs.mu.Lock()
	defer rngs.mu.Unlock()
	return rngs.host.Float64()
}

// HostIntN draws from the host generator in [0, n). Panics if n <= 0.
func HostIntN(n int) int {
	rngs.mu.Lock()
	defer rngs.mu.Unlock()
	return rngs.host.IntN(n)
}

// RandomNormal returns an array of standard normal draws from the array generator.
func RandomNormal(shape ...int) Array {
	return fill(shape, (*rand.Rand).NormFloat64)
}

// RandomUniform returns an array of draws in [0, 1) from the array generator.
func RandomUniform(shape ...int) Array {
	return fill(shape, (*rand.Rand).Float64)
}

func fill(shape []int, draw func(*rand.Rand) float64) Array {
	a := Zeros(shape...)
	rngs.mu.Lock()
	defer rngs.mu.Unlock()
	for i := range a.data {
		a.data[i] = draw(rngs.array)
	}
	return a
}
