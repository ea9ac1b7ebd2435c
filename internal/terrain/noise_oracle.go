// Package terrain supplies the reference world.Oracle implementation a
// standalone daemon falls back to when no external height/biome source is
// wired in: layered Perlin noise over continuous world coordinates,
// thresholded into plains/forest/desert bands.
package terrain

import (
	"github.com/aquilax/go-perlin"

	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

// Perlin tuning, chosen the way annel0-mmo-game's noise helper does:
// alpha is the per-octave amplitude falloff and beta the per-octave
// frequency gain; the height field sums three octaves, the moisture field
// two.
const (
	heightAlpha = 2.0
	heightBeta  = 2.0
	heightOctaves int32 = 3

	moistureAlpha = 1.8
	moistureBeta  = 1.6
	moistureOctaves int32 = 2
)

// Height-map shaping constants: baseHeight is the column height a flat
// noise reading of 0 maps to, heightAmplitude the +/- spread around it.
const (
	baseHeight     = 62
	heightAmplitude = 24
	noiseScale      = 48.0
)

// NoiseOracle is a world.Oracle backed by two independent Perlin fields:
// one drives column height, the other biome moisture.
type NoiseOracle struct {
	height   *perlin.Perlin
	moisture *perlin.Perlin
}

// NewNoiseOracle seeds both noise fields from seed, offsetting the
// moisture field's seed so the two fields are not simply rescaled copies
// of each other.
func NewNoiseOracle(seed int64) *NoiseOracle {
	return &NoiseOracle{
		height:   perlin.NewPerlin(heightAlpha, heightBeta, heightOctaves, seed),
		moisture: perlin.NewPerlin(moistureAlpha, moistureBeta, moistureOctaves, seed^0x5bd1e995),
	}
}

// HeightAt samples the height field at the column's continuous world
// position and maps the [-1,1] reading onto [baseHeight-heightAmplitude,
// baseHeight+heightAmplitude].
func (o *NoiseOracle) HeightAt(lon, lat int32, x, y int) int {
	p := hexmath.ToWorld(world.GlobalHex(lon, lat, x, y))
	n := o.height.Noise2D(p.X/noiseScale, p.Y/noiseScale)
	return baseHeight + int(n*heightAmplitude)
}

// BiomeAt samples the moisture field and buckets it into the three
// world.Biome bands: dry columns are desert, wet columns forest, the
// remainder plains.
func (o *NoiseOracle) BiomeAt(lon, lat int32, x, y int) world.Biome {
	p := hexmath.ToWorld(world.GlobalHex(lon, lat, x, y))
	n := o.moisture.Noise2D(p.X/noiseScale+1000, p.Y/noiseScale+1000)
	switch {
	case n < -0.25:
		return world.BiomeDesert
	case n > 0.25:
		return world.BiomeForest
	default:
		return world.BiomePlains
	}
}
