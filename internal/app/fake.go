package app

import (
	"math"
	"math/rand"
)

// fakeGenerator produces synthetic amplitude frames so the overlay can run
// without a host feeding it audio.
type fakeGenerator struct {
	rng   *rand.Rand
	bars  int
	phase float64
	peaks []float64
}

func newFakeGenerator(bars int, seed int64) *fakeGenerator {
	if bars <= 0 {
		bars = 64
	}
	return &fakeGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		bars:  bars,
		peaks: make([]float64, bars),
	}
}

// Next advances the generator by delta seconds and returns a frame of
// normalized amplitudes.
func (f *fakeGenerator) Next(delta float64) []float64 {
	f.phase += delta * 1.3
	beat := math.Max(0, math.Sin(f.phase*2.0))
	if f.rng.Float64() < 0.02 {
		beat = 1.0
	}

	frame := make([]float64, f.bars)
	for i := range frame {
		pos := float64(i) / float64(f.bars)
		// bass heavy tilt with a travelling wave on top
		tilt := 1.0 - 0.6*pos
		wave := 0.5 + 0.5*math.Sin(f.phase+pos*math.Pi*3)
		v := tilt * (0.25 + 0.45*wave + 0.3*beat*(1-pos))
		v += f.rng.Float64() * 0.08
		// fall off slowly so bars do not flicker
		f.peaks[i] = math.Max(v, f.peaks[i]*0.85)
		frame[i] = clamp01(f.peaks[i])
	}
	return frame
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
