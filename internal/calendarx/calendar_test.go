package calendarx

import "testing"

func TestSunVectorIsUnitAcrossDay(t *testing.T) {
	cal := New(24000, 365, 23.4, 172)
	for tick := uint64(0); tick < 24000; tick += 997 {
		x, y, z := cal.SunVector(tick, 0)
		mag := x*x + y*y + z*z
		if mag < 0.98 || mag > 1.02 {
			t.Fatalf("tick %d: |sun_vector|^2 = %f, want ~1", tick, mag)
		}
	}
}

func TestNoonIsBrighterThanMidnightAtEquator(t *testing.T) {
	cal := New(24000, 365, 23.4, 172)
	_, _, noonZ := cal.SunVector(12000, 0)
	_, _, midnightZ := cal.SunVector(0, 0)
	if noonZ <= midnightZ {
		t.Fatalf("expected noon elevation (%f) > midnight elevation (%f)", noonZ, midnightZ)
	}
}

func TestIsDaytimeMatchesNightLength(t *testing.T) {
	cal := New(24000, 365, 23.4, 172)
	night := cal.GetNightLength(0, 0)
	if night == 0 || night >= 24000 {
		t.Fatalf("expected a partial night length at the equator, got %d", night)
	}
	if cal.IsDaytime(12000, 0) == false {
		t.Fatalf("expected noon to be daytime at the equator")
	}
}
