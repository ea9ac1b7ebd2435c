package block

// Info is the immutable, process-lifetime set of derived constants for one
// block type (spec.md §3 "Normal" variant / Design Notes §9 flyweight
// singleton). It is never mutated after init.
type Info struct {
	Type         Type
	Visibility   VisibilityClass
	LightPass    LightPassClass
	Form         Form
	Flammability uint8 // 0..255
	LightEmit    uint8 // static emitted fire-light level, 0 unless a light source type
	Material     string
	Color        string
	Texture      string

	// ConnectingForce and Weight feed the collapse detector's per-column
	// support check (internal/automata/collapse.go), adapted from the
	// teacher's evaluateColumnStability: a cell can bear a neighbor resting
	// on it up to ConnectingForce, and itself presses down with Weight.
	ConnectingForce float64
	Weight          float64
}

var typeInfo [NumBlockTypes]Info

func init() {
	set := func(t Type, vis VisibilityClass, pass LightPassClass, form Form, flammability, lightEmit uint8, material, color, texture string, connectingForce, weight float64) {
		typeInfo[t] = Info{
			Type: t, Visibility: vis, LightPass: pass, Form: form,
			Flammability: flammability, LightEmit: lightEmit,
			Material: material, Color: color, Texture: texture,
			ConnectingForce: connectingForce, Weight: weight,
		}
	}

	set(Air, VisAir, PassClear, FormFull, 0, 0, "air", "", "", 0, 0)
	set(Spherical, VisSolid, PassBlocked, FormNonStandard, 0, 0, "spherical", "#888888", "assets/textures/spherical.png", 4, 6)
	set(Stone, VisSolid, PassBlocked, FormFull, 0, 0, "stone", "#6e6e6e", "assets/textures/stone.png", 1e5, 12)
	set(Soil, VisSolid, PassBlocked, FormFull, 30, 0, "soil", "#8b5a2b", "assets/textures/soil.png", 400, 8)
	set(Wood, VisSolid, PassBlocked, FormFull, 120, 0, "wood", "#79562c", "assets/textures/wood.png", 900, 6)
	set(Grass, VisSolid, PassBlocked, FormFull, 60, 0, "grass", "#5d9b3d", "assets/textures/grass.png", 400, 8)
	set(Water, VisLiquid, PassAttenuated, FormFull, 0, 0, "water", "#2d6ea6", "assets/textures/water.png", 0, 0)
	set(Sand, VisSolid, PassBlocked, FormFull, 0, 0, "sand", "#d8c98a", "assets/textures/sand.png", 4, 6)
	set(Foliage, VisTranslucent, PassClear, FormNonStandard, 200, 0, "foliage", "#3f7d29", "assets/textures/foliage.png", 50, 1)
	set(FireStone, VisSolid, PassBlocked, FormFull, 0, MaxFireLight, "fire-stone", "#b33b1e", "assets/textures/fire_stone.png", 1e5, 12)
	set(Brick, VisSolid, PassBlocked, FormFull, 0, 0, "brick", "#a0522d", "assets/textures/brick.png", 1e5, 10)
}

// InfoFor returns the flyweight Info for a block type. Unknown types
// return the Air entry so callers never dereference a zero value.
func InfoFor(t Type) Info {
	if t >= NumBlockTypes {
		return typeInfo[Air]
	}
	return typeInfo[t]
}

// TransparencyFor returns the packed transparency byte a cell of type t
// should carry, per spec.md §3 ("Derived from the block's type at every
// write").
func TransparencyFor(t Type) uint8 {
	info := InfoFor(t)
	return Packed(info.Visibility, info.LightPass)
}
