package terrain

import "testing"

func TestNoiseOracleHeightIsDeterministic(t *testing.T) {
	a := NewNoiseOracle(42)
	b := NewNoiseOracle(42)

	for _, p := range [][4]int32{{0, 0, 3, 3}, {2, -1, 10, 20}, {-5, 4, 0, 31}} {
		ha := a.HeightAt(p[0], p[1], int(p[2]), int(p[3]))
		hb := b.HeightAt(p[0], p[1], int(p[2]), int(p[3]))
		if ha != hb {
			t.Fatalf("same seed should reproduce the same height: %d vs %d", ha, hb)
		}
	}
}

func TestNoiseOracleDifferentSeedsDiverge(t *testing.T) {
	a := NewNoiseOracle(1)
	b := NewNoiseOracle(2)

	same := true
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			if a.HeightAt(0, 0, x, y) != b.HeightAt(0, 0, x, y) {
				same = false
			}
		}
	}
	if same {
		t.Fatalf("expected differing seeds to produce differing height maps somewhere in a 32x32 sample")
	}
}

func TestNoiseOracleHeightWithinExpectedBand(t *testing.T) {
	o := NewNoiseOracle(7)
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			h := o.HeightAt(0, 0, x, y)
			if h < baseHeight-heightAmplitude-1 || h > baseHeight+heightAmplitude+1 {
				t.Fatalf("height %d at (%d,%d) outside expected band", h, x, y)
			}
		}
	}
}

func TestNoiseOracleProducesSeveralBiomesAcrossWideSample(t *testing.T) {
	o := NewNoiseOracle(99)
	seen := map[interface{}]bool{}
	for lon := int32(-6); lon <= 6; lon++ {
		for lat := int32(-6); lat <= 6; lat++ {
			seen[o.BiomeAt(lon, lat, 16, 16)] = true
		}
	}
	if len(seen) < 2 {
		t.Fatalf("expected more than one biome across a wide sample, saw %d", len(seen))
	}
}
