package gait

import (
	"math"

	"github.com/strideworks/go-pup/pkg/kinematics"
)

// trotParams is the tuned trotting cycle: 2 phases of 3 steps, one
// diagonal leg pair raised per phase.
var trotParams = Params{
	StepWidth:  50,
	StepHeight: 20,
	GroundRef:  kinematics.GroundClearance,
	COGBias:    -15,
	StanceOffsets: [kinematics.LegCount]float64{
		-10, -10, 20, 20,
	},
	TurnScale: [kinematics.LegCount][3]float64{
		{0.5, 1, 1},
		{1, 1, 0.5},
		{0.5, 1, 1},
		{1, 1, 0.5},
	},
	Phases:        2,
	StepsPerPhase: 3,
}

// trotPairs are the diagonal pairs raised together.
var trotPairs = [2][2]int{
	{kinematics.LegFrontLeft, kinematics.LegHindRight},
	{kinematics.LegFrontRight, kinematics.LegHindLeft},
}

// TrotParams returns a copy of the trotting cycle configuration.
func TrotParams() Params {
	return trotParams
}

// Trot generates one trotting cycle. Construct with NewTrot.
type Trot struct {
	params Params
	dir    float64
	geom   legGeometry
}

// NewTrot builds a trotting-cycle generator for the given direction
// and turn bias.
func NewTrot(d Direction, t Turn) *Trot {
	return &Trot{
		params: trotParams,
		dir:    d.factor(),
		geom:   derive(trotParams, d, t, 1),
	}
}

// Sequence returns the full cycle, phase-major. Unlike Walk there is
// no trailing closed frame; trot cycles chain directly.
func (tr *Trot) Sequence() []Frame {
	p := tr.params
	lat := tr.geom.origin

	frames := make([]Frame, 0, p.Phases*p.StepsPerPhase)
	for phase := 0; phase < p.Phases; phase++ {
		raised := trotPairs[phase]
		for step := 0; step < p.StepsPerPhase; step++ {
			var f Frame
			for leg := 0; leg < kinematics.LegCount; leg++ {
				if leg == raised[0] || leg == raised[1] {
					l := swingLateral(tr.geom.origin[leg], tr.geom.width[leg], tr.dir, step, p.StepsPerPhase)
					lat[leg] = l
					// Sine lift: on the ground at the phase edges,
					// peak clearance mid-swing.
					f[leg] = kinematics.Point{
						Lateral:  l,
						Vertical: p.GroundRef - p.StepHeight*math.Sin(float64(step)*math.Pi/float64(p.StepsPerPhase-1)),
					}
					continue
				}
				f[leg] = kinematics.Point{Lateral: lat[leg], Vertical: p.GroundRef}
				lat[leg] += tr.geom.advance[leg] * tr.dir
			}
			frames = append(frames, f)
		}
	}
	return frames
}
