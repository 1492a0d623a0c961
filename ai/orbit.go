// Package ai implements the orbit simulation (SPEC_FULL.md "Supplemented
// features" §2), grounded on the original simulator's acceleration/quadrant
// logic: gravity pulls toward the origin along whichever axis has the larger
// coordinate magnitude (along both on a diagonal). Ships are stepped under
// gravity alone; no thrust is computed.
package ai

// XY is an integer position or velocity vector.
type XY struct{ X, Y int64 }

func sign(n int64) int64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// AccelerationAt returns the gravitational acceleration a ship at pos
// experiences: toward the origin along whichever axis has the larger
// magnitude, or along both when they're equal.
func AccelerationAt(pos XY) XY {
	switch {
	case abs(pos.X) == abs(pos.Y):
		return XY{X: -sign(pos.X), Y: -sign(pos.Y)}
	case abs(pos.X) > abs(pos.Y):
		return XY{X: -sign(pos.X), Y: 0}
	default:
		return XY{X: 0, Y: -sign(pos.Y)}
	}
}

// QuadrantOf returns 1..4 for pos, with (+x, >=0) in quadrant 1 and
// proceeding counter-clockwise; the origin is arbitrarily quadrant 1.
func QuadrantOf(pos XY) int {
	switch {
	case pos.X > 0 && pos.Y >= 0:
		return 1
	case pos.X <= 0 && pos.Y > 0:
		return 2
	case pos.X < 0 && pos.Y <= 0:
		return 3
	case pos.X >= 0 && pos.Y < 0:
		return 4
	default:
		return 1
	}
}

// SV is a ship's position and velocity, steppable one tick at a time.
type SV struct {
	S, V XY
}

// Step advances sv by one tick: gravity is applied to the velocity before
// the position update, as in the underlying simulation's step order.
func (sv *SV) Step() {
	a := AccelerationAt(sv.S)
	sv.V = XY{X: sv.V.X + a.X, Y: sv.V.Y + a.Y}
	sv.S = XY{X: sv.S.X + sv.V.X, Y: sv.S.Y + sv.V.Y}
}

// Orbit iterates the positions of one full orbit starting from sv, for up
// to maxSteps ticks or until the ship has crossed five quadrant boundaries
// (one quadrant revisited), whichever comes first.
type Orbit struct {
	sv            SV
	stepsLeft     int64
	lastQuadrant  int
	quadrantsLeft int
	done          bool
}

// NewOrbit starts an orbit walk from sv.
func NewOrbit(sv SV, maxSteps int64) *Orbit {
	return &Orbit{
		sv:            sv,
		stepsLeft:     maxSteps,
		lastQuadrant:  QuadrantOf(sv.S),
		quadrantsLeft: 5,
	}
}

// Next advances the orbit by one step and returns the new position, or
// false once the orbit has completed (§ original one_orbit_positions).
func (o *Orbit) Next() (XY, bool) {
	if o.done {
		return XY{}, false
	}

	o.sv.Step()

	q := QuadrantOf(o.sv.S)
	if q != o.lastQuadrant {
		o.lastQuadrant = q
		o.quadrantsLeft--
	}
	o.stepsLeft--

	if o.stepsLeft <= 0 || o.quadrantsLeft <= 0 {
		o.done = true
		return XY{}, false
	}
	return o.sv.S, true
}
