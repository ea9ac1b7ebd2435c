// Package calendarx tracks in-game time of day and season and derives the
// sun vector the grass and fire automata need, ported from
// original_source/src/calendar.hpp's h_Calendar (its .cpp was not part of
// the retrieved source; the day/night geometry below is reconstructed from
// the parameters the header exposes and from world.cpp's one call site,
// GetSunVector(tick, latitude), whose z-component is compared against
// sin(4 degrees) to decide daytime).
package calendarx

import "math"

const deg2rad = math.Pi / 180

// Calendar mirrors h_Calendar's constructor parameters: a day length in
// ticks, a year length in days, the planet's axial tilt, and which day of
// the year is the northern-hemisphere summer solstice.
type Calendar struct {
	ticksInDay        uint64
	solarDaysInYear   uint64
	rotationAxisAngle float64 // radians
	summerSolsticeDay uint64
}

// New builds a calendar. rotationAxisAngleDeg is the angle between the
// orbital plane and the rotation axis, in degrees (h_Calendar takes it in
// radians; spec.md's worked examples are easier to write in degrees, so
// the conversion happens here).
func New(ticksInDay, solarDaysInYear uint64, rotationAxisAngleDeg float64, summerSolsticeDay uint64) *Calendar {
	return &Calendar{
		ticksInDay:        ticksInDay,
		solarDaysInYear:   solarDaysInYear,
		rotationAxisAngle: rotationAxisAngleDeg * deg2rad,
		summerSolsticeDay: summerSolsticeDay,
	}
}

// SunVector returns the unit sun direction at the given tick count and
// observer latitude (radians). Its z-component is the sun's elevation:
// 1 at zenith, 0 at the horizon, negative below it.
func (c *Calendar) SunVector(tick uint64, latitude float64) (x, y, z float64) {
	dayPhase := float64(tick%c.ticksInDay) / float64(c.ticksInDay) // 0 at midnight, 0.5 at noon
	hourAngle := (dayPhase - 0.5) * 2 * math.Pi

	day := (tick / c.ticksInDay) % c.solarDaysInYear
	yearPhase := float64(int64(day)-int64(c.summerSolsticeDay)) / float64(c.solarDaysInYear)
	declination := c.rotationAxisAngle * math.Cos(2*math.Pi*yearPhase)

	sinLat, cosLat := math.Sin(latitude), math.Cos(latitude)
	sinDec, cosDec := math.Sin(declination), math.Cos(declination)

	elevation := sinLat*sinDec + cosLat*cosDec*math.Cos(hourAngle)
	horizontal := math.Sqrt(math.Max(0, 1-elevation*elevation))

	x = horizontal * math.Sin(hourAngle)
	y = horizontal * math.Cos(hourAngle)
	z = elevation
	return
}

// minSunElevation is sin(4 degrees), the threshold world.cpp compares
// sun_vector.z against to decide current_sun_multiplier.
var minSunElevation = math.Sin(4 * deg2rad)

// IsDaytime reports whether the sun sits above the 4-degree elevation
// threshold at tick/latitude, matching world.cpp's daylight gate used by
// both rendering and the grass automaton's effective-light formula.
func (c *Calendar) IsDaytime(tick uint64, latitude float64) bool {
	_, _, z := c.SunVector(tick, latitude)
	return z > minSunElevation
}

// GetNightLength returns the number of ticks the sun spends below the
// 4-degree threshold on the given day at latitude, by sampling the sun's
// elevation once per tick. day is a day-of-year index, not an absolute
// tick; the scan starts at that day's midnight.
func (c *Calendar) GetNightLength(day uint64, latitude float64) uint64 {
	start := day * c.ticksInDay
	var night uint64
	for t := start; t < start+c.ticksInDay; t++ {
		if !c.IsDaytime(t, latitude) {
			night++
		}
	}
	return night
}
