package block

import "testing"

func TestPackedUnpackRoundTrip(t *testing.T) {
	for vis := VisibilityClass(0); vis <= 3; vis++ {
		for pass := LightPassClass(0); pass <= 2; pass++ {
			packed := Packed(vis, pass)
			gotVis, gotPass := Unpack(packed)
			if gotVis != vis || gotPass != pass {
				t.Fatalf("Unpack(Packed(%v,%v)) = (%v,%v)", vis, pass, gotVis, gotPass)
			}
		}
	}
}

func TestTransparencyForMatchesFlyweight(t *testing.T) {
	for typ := Type(0); typ < NumBlockTypes; typ++ {
		info := InfoFor(typ)
		want := Packed(info.Visibility, info.LightPass)
		got := TransparencyFor(typ)
		if got != want {
			t.Fatalf("type %v: TransparencyFor = %d, want %d", typ, got, want)
		}
	}
}

func TestLiquidAndAirShareVisibilityClass(t *testing.T) {
	// Open question resolution: the source conflates these; we preserve it.
	if VisLiquid != VisAir {
		t.Fatalf("expected VisLiquid == VisAir per preserved source conflation")
	}
}

func TestAirIsFullyTransparent(t *testing.T) {
	info := InfoFor(Air)
	if info.Visibility != VisAir || info.LightPass != PassClear {
		t.Fatalf("air block has unexpected transparency: %+v", info)
	}
}

func TestFireStoneEmitsMaxFireLight(t *testing.T) {
	info := InfoFor(FireStone)
	if info.LightEmit != MaxFireLight {
		t.Fatalf("fire-stone LightEmit = %d, want %d", info.LightEmit, MaxFireLight)
	}
}
