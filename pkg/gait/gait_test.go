package gait

import (
	"math"
	"reflect"
	"testing"

	"github.com/strideworks/go-pup/pkg/kinematics"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestWalk_SequenceLength(t *testing.T) {
	p := WalkParams()
	seq := NewWalk(Forward, Straight).Sequence()

	want := p.Phases*p.StepsPerPhase + 1 // trailing closed frame
	if len(seq) != want {
		t.Fatalf("sequence length: got %d, want %d", len(seq), want)
	}
	for i, f := range seq {
		if len(f) != kinematics.LegCount {
			t.Fatalf("frame %d: got %d legs, want %d", i, len(f), kinematics.LegCount)
		}
	}
}

func TestWalk_Deterministic(t *testing.T) {
	a := NewWalk(Forward, TurnRight).Sequence()
	b := NewWalk(Forward, TurnRight).Sequence()

	if !reflect.DeepEqual(a, b) {
		t.Error("two generators with identical parameters produced different sequences")
	}
}

func TestWalk_FirstFrameMatchesLegOrigins(t *testing.T) {
	p := WalkParams()
	seq := NewWalk(Forward, Straight).Sequence()

	for leg := 0; leg < kinematics.LegCount; leg++ {
		origin := p.StepWidth/2 + p.COGBias + p.StanceOffsets[leg]
		if !floatEquals(seq[0][leg].Lateral, origin) {
			t.Errorf("leg %d lateral: got %v, want %v", leg, seq[0][leg].Lateral, origin)
		}
		if !floatEquals(seq[0][leg].Vertical, p.GroundRef) {
			t.Errorf("leg %d vertical: got %v, want %v", leg, seq[0][leg].Vertical, p.GroundRef)
		}
	}
}

func TestWalk_ClosedFrameReturnsToOrigin(t *testing.T) {
	seq := NewWalk(Forward, Straight).Sequence()

	first, last := seq[0], seq[len(seq)-1]
	if !reflect.DeepEqual(first, last) {
		t.Errorf("closed frame %v does not match pre-cycle origins %v", last, first)
	}
}

func TestWalk_TurnReducesInsideLegWidth(t *testing.T) {
	left := NewWalk(Forward, TurnLeft).Sequence()

	// Turning left shrinks the left legs' step width, which pulls
	// their origins inward relative to the right legs.
	if left[0][kinematics.LegFrontLeft].Lateral >= left[0][kinematics.LegFrontRight].Lateral {
		t.Errorf("turn-left origins: front-left %v should sit inside front-right %v",
			left[0][kinematics.LegFrontLeft].Lateral, left[0][kinematics.LegFrontRight].Lateral)
	}
}

func TestWalk_BackwardReversesRaiseOrder(t *testing.T) {
	p := WalkParams()

	fwd := NewWalk(Forward, Straight).Sequence()
	bwd := NewWalk(Backward, Straight).Sequence()

	// Mid-phase, the raised leg is the only one off the ground.
	raisedLeg := func(f Frame) int {
		for leg := 0; leg < kinematics.LegCount; leg++ {
			if f[leg].Vertical < p.GroundRef {
				return leg
			}
		}
		return -1
	}

	midStep := p.StepsPerPhase / 2
	if got := raisedLeg(fwd[midStep]); got != walkRaiseOrder[0] {
		t.Errorf("forward phase 0 raised leg: got %d, want %d", got, walkRaiseOrder[0])
	}
	if got := raisedLeg(bwd[midStep]); got != walkRaiseOrder[len(walkRaiseOrder)-1] {
		t.Errorf("backward phase 0 raised leg: got %d, want %d", got, walkRaiseOrder[len(walkRaiseOrder)-1])
	}
}

func TestWalk_RaisedLiftIsMonotonic(t *testing.T) {
	p := WalkParams()
	seq := NewWalk(Forward, Straight).Sequence()

	raised := walkRaiseOrder[0]
	for step := 1; step < p.StepsPerPhase; step++ {
		prev := seq[step-1][raised].Vertical
		cur := seq[step][raised].Vertical
		if cur >= prev {
			t.Errorf("step %d: vertical %v not below previous %v", step, cur, prev)
		}
	}
}

func TestTrot_SequenceLength(t *testing.T) {
	p := TrotParams()
	seq := NewTrot(Forward, Straight).Sequence()

	if len(seq) != p.Phases*p.StepsPerPhase {
		t.Fatalf("sequence length: got %d, want %d", len(seq), p.Phases*p.StepsPerPhase)
	}
}

func TestTrot_Deterministic(t *testing.T) {
	a := NewTrot(Backward, TurnLeft).Sequence()
	b := NewTrot(Backward, TurnLeft).Sequence()

	if !reflect.DeepEqual(a, b) {
		t.Error("two generators with identical parameters produced different sequences")
	}
}

func TestTrot_DiagonalPairPeaksMidSwing(t *testing.T) {
	p := TrotParams()
	seq := NewTrot(Forward, Straight).Sequence()

	for _, leg := range trotPairs[0] {
		if !floatEquals(seq[0][leg].Vertical, p.GroundRef) {
			t.Errorf("leg %d step 0: got %v, want on ground %v", leg, seq[0][leg].Vertical, p.GroundRef)
		}
		if !floatEquals(seq[1][leg].Vertical, p.GroundRef-p.StepHeight) {
			t.Errorf("leg %d mid-swing: got %v, want peak %v", leg, seq[1][leg].Vertical, p.GroundRef-p.StepHeight)
		}
		if !floatEquals(seq[2][leg].Vertical, p.GroundRef) {
			t.Errorf("leg %d step 2: got %v, want on ground %v", leg, seq[2][leg].Vertical, p.GroundRef)
		}
	}
}
