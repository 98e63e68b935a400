package gait

import "github.com/strideworks/go-pup/pkg/kinematics"

// walkParams is the tuned walking cycle: 8 phases of 6 steps, one leg
// raised per phase, every leg raised twice per cycle.
var walkParams = Params{
	StepWidth:  80,
	StepHeight: 20,
	GroundRef:  kinematics.GroundClearance,
	COGBias:    -15,
	StanceOffsets: [kinematics.LegCount]float64{
		-10, -10, 20, 20,
	},
	TurnScale: [kinematics.LegCount][3]float64{
		{0.5, 1, 1}, // front left
		{1, 1, 0.5}, // front right
		{0.5, 1, 1}, // hind left
		{1, 1, 0.5}, // hind right
	},
	Phases:        8,
	StepsPerPhase: 6,
}

// walkRaiseOrder keeps three feet planted at all times; diagonally
// opposed legs alternate for stability.
var walkRaiseOrder = [8]int{
	kinematics.LegFrontLeft,
	kinematics.LegHindRight,
	kinematics.LegFrontRight,
	kinematics.LegHindLeft,
	kinematics.LegFrontLeft,
	kinematics.LegHindRight,
	kinematics.LegFrontRight,
	kinematics.LegHindLeft,
}

// WalkParams returns a copy of the walking cycle configuration.
func WalkParams() Params {
	return walkParams
}

// Walk generates one walking cycle for the given direction and turn
// bias. The zero value is not usable; construct with NewWalk.
type Walk struct {
	params Params
	dir    float64
	raise  [8]int
	geom   legGeometry
}

// NewWalk builds a walking-cycle generator. The parameters are fixed
// here; the generator is immutable and safe for concurrent use.
func NewWalk(d Direction, t Turn) *Walk {
	w := &Walk{
		params: walkParams,
		dir:    d.factor(),
		raise:  walkRaiseOrder,
		geom:   derive(walkParams, d, t, 2),
	}
	if d == Backward {
		for i, j := 0, len(w.raise)-1; i < j; i, j = i+1, j-1 {
			w.raise[i], w.raise[j] = w.raise[j], w.raise[i]
		}
	}
	return w
}

// Sequence returns the full cycle, phase-major, plus one trailing
// closed frame that returns every foot to its pre-cycle origin.
func (w *Walk) Sequence() []Frame {
	p := w.params
	lat := w.geom.origin

	frames := make([]Frame, 0, p.Phases*p.StepsPerPhase+1)
	for phase := 0; phase < p.Phases; phase++ {
		raised := w.raise[phase]
		for step := 0; step < p.StepsPerPhase; step++ {
			var f Frame
			for leg := 0; leg < kinematics.LegCount; leg++ {
				if leg == raised {
					l := swingLateral(w.geom.origin[leg], w.geom.width[leg], w.dir, step, p.StepsPerPhase)
					lat[leg] = l
					// The lift ramps down monotonically with the step
					// index instead of peaking mid-swing. Kept as-is
					// pending gait validation on hardware.
					f[leg] = kinematics.Point{
						Lateral:  l,
						Vertical: p.GroundRef - p.StepHeight*float64(step)/float64(p.StepsPerPhase-1),
					}
					continue
				}
				// Stance: on the ground, propelling the body.
				f[leg] = kinematics.Point{Lateral: lat[leg], Vertical: p.GroundRef}
				lat[leg] += w.geom.advance[leg] * w.dir
			}
			frames = append(frames, f)
		}
	}

	var closed Frame
	for leg := 0; leg < kinematics.LegCount; leg++ {
		closed[leg] = kinematics.Point{Lateral: w.geom.origin[leg], Vertical: p.GroundRef}
	}
	return append(frames, closed)
}
