// Package gait generates foot trajectories for the walking and trotting
// cycles. A generator is a pure function of its construction parameters:
// identical (direction, turn) inputs always produce identical sequences,
// so a cycle can be replayed or re-enqueued without recomputation drift.
//
// A cycle subdivides into phases (which legs are raised) and steps (time
// slices within a phase). Output frames are phase-major: phase 0 step 0
// through the last phase's last step.
package gait

import (
	"math"

	"github.com/strideworks/go-pup/pkg/kinematics"
)

// Direction selects the travel direction of a gait cycle.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) factor() float64 {
	if d == Backward {
		return -1
	}
	return 1
}

// Turn selects the turn bias of a gait cycle. The values index the
// columns of the per-leg turn-scale table.
type Turn int

const (
	TurnLeft Turn = iota
	Straight
	TurnRight
)

// Frame is one coordinate set: a foot target for each leg.
type Frame [kinematics.LegCount]kinematics.Point

// Generator produces the finite trajectory of one full gait cycle.
type Generator interface {
	Sequence() []Frame
}

// Params is the immutable per-invocation gait configuration. It is
// fixed at generator construction and never mutated afterwards.
type Params struct {
	StepWidth  float64
	StepHeight float64

	// GroundRef is the stance vertical (hip-to-ground distance).
	GroundRef float64

	// COGBias shifts all foot origins to keep the center of gravity
	// over the supporting legs; it flips with the travel direction.
	COGBias float64

	// StanceOffsets bias each leg's origin along the travel axis.
	StanceOffsets [kinematics.LegCount]float64

	// TurnScale columns are indexed by Turn: legs on the inside of a
	// turn get a reduced step width, which produces net yaw.
	TurnScale [kinematics.LegCount][3]float64

	Phases        int
	StepsPerPhase int
}

// legGeometry is the per-leg state derived from Params for one cycle.
type legGeometry struct {
	origin  [kinematics.LegCount]float64
	width   [kinematics.LegCount]float64
	advance [kinematics.LegCount]float64
}

// derive resolves the per-leg origins, turn-scaled widths and stance
// advance increments. raisesPerLeg is how many phases of the cycle
// each leg spends raised; the rest is stance, during which the leg
// must travel one full step width.
func derive(p Params, d Direction, t Turn, raisesPerLeg int) legGeometry {
	var g legGeometry
	stanceSteps := float64((p.Phases - raisesPerLeg) * p.StepsPerPhase)

	for i := 0; i < kinematics.LegCount; i++ {
		scale := p.TurnScale[i][t]
		g.width[i] = p.StepWidth * scale
		g.origin[i] = g.width[i]/2 + p.COGBias*d.factor() + p.StanceOffsets[i]*scale
		g.advance[i] = g.width[i] / stanceSteps
	}
	return g
}

// swingLateral is the half-cosine swing of a raised leg: it departs
// from and returns to the same lateral extent at phase boundaries.
func swingLateral(origin, width, dir float64, step, steps int) float64 {
	theta := float64(step) * math.Pi / float64(steps-1)
	return origin + width/2*(math.Cos(theta)-dir)*dir
}
