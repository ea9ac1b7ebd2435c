package randx

import (
	"math"
	"math/rand"
)

// MaxLongRand mirrors the 8-bit-shifted bound the source divides rain
// start-chance draws by (see LongRand.Chance).
const MaxLongRand = 1 << 16

// LongRand is the long-period generator reserved exclusively for rain
// sampling, kept separate from LCG so that adding or removing automaton
// draws elsewhere never perturbs the rain sequence.
type LongRand struct {
	r *rand.Rand
}

// NewLongRand seeds a long-period generator.
func NewLongRand(seed int64) *LongRand {
	return &LongRand{r: rand.New(rand.NewSource(seed))}
}

// Chance reports whether a draw in [0, MaxLongRand) falls below threshold.
func (l *LongRand) Chance(threshold uint32) bool {
	return uint32(l.r.Intn(MaxLongRand)) < threshold
}

// Uniform01 returns a uniform sample in [0, 1).
func (l *LongRand) Uniform01() float64 {
	return l.r.Float64()
}

// Uniform returns a uniform sample in [lo, hi).
func (l *LongRand) Uniform(lo, hi float64) float64 {
	return lo + l.r.Float64()*(hi-lo)
}

// LogNormal samples a log-normal distribution scaled so that its median
// equals median (used by rain duration sampling, where the source wants
// the "middle" duration to equal day_length/8).
func (l *LongRand) LogNormal(median, sigma float64) float64 {
	normal := l.r.NormFloat64() * sigma
	return median * math.Exp(normal)
}
