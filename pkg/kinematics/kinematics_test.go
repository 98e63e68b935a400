package kinematics

import (
	"math"
	"testing"
)

const floatTolerance = 1e-6

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestLegIK_FullExtension(t *testing.T) {
	// Foot straight below the hip at maximum reach: both joints neutral.
	hip, knee := LegIK(0, ThighLength+ShinLength)

	if math.Abs(knee) > 1e-3 {
		t.Errorf("knee: got %v, want ~0", knee)
	}
	if math.Abs(hip) > 1e-3 {
		t.Errorf("hip: got %v, want ~0", hip)
	}
}

func TestLegIK_UnreachableTargetClamped(t *testing.T) {
	// A target far beyond the leg's reach must not produce NaN; the
	// clamp resolves it to the fully extended posture.
	hip, knee := LegIK(0, 1000)

	if math.IsNaN(hip) || math.IsNaN(knee) {
		t.Fatalf("got NaN for unreachable target: hip=%v knee=%v", hip, knee)
	}
	if math.Abs(knee) > 1e-3 {
		t.Errorf("knee: got %v, want ~0 (fully extended)", knee)
	}
}

func TestLegIK_BentKneePositive(t *testing.T) {
	// Pulling the foot closer than full reach bends the knee.
	_, knee := LegIK(0, GroundClearance)
	if knee <= 0 {
		t.Errorf("knee: got %v, want > 0 for a bent leg", knee)
	}
}

func TestMirrorLegAngles(t *testing.T) {
	targets := []Point{
		{0, 80},
		{20, 75},
		{-15, 90},
		{40, 60},
	}

	for _, p := range targets {
		hip, knee := LegIK(p.Lateral, p.Vertical)

		for index := 0; index < LegCount; index++ {
			mh, mk := MirrorLegAngles(index, hip, knee)
			if index%2 == 0 {
				if mh != hip || mk != knee {
					t.Errorf("leg %d: mirror applied to even index", index)
				}
				continue
			}
			if !floatEquals(mh, -hip) {
				t.Errorf("leg %d hip: got %v, want %v", index, mh, -hip)
			}
			if !floatEquals(mk, -knee-KneeMirrorOffset) {
				t.Errorf("leg %d knee: got %v, want %v", index, mk, -knee-KneeMirrorOffset)
			}
		}
	}
}

func TestLegAngles_MatchesLegIK(t *testing.T) {
	p := Point{Lateral: 10, Vertical: 85}

	hip, knee := LegIK(p.Lateral, p.Vertical)
	gotHip, gotKnee := LegAngles(LegFrontRight, p)

	wantHip, wantKnee := MirrorLegAngles(LegFrontRight, hip, knee)
	if !floatEquals(gotHip, wantHip) || !floatEquals(gotKnee, wantKnee) {
		t.Errorf("LegAngles: got (%v, %v), want (%v, %v)", gotHip, gotKnee, wantHip, wantKnee)
	}
}

func TestForwardKinematics_NeutralPose(t *testing.T) {
	targets := ForwardKinematics(BodyPose{})

	for i, p := range targets {
		if math.Abs(p.Lateral) > 1e-9 {
			t.Errorf("leg %d lateral: got %v, want 0", i, p.Lateral)
		}
		if !floatEquals(p.Vertical, GroundClearance) {
			t.Errorf("leg %d vertical: got %v, want %v", i, p.Vertical, GroundClearance)
		}
	}
}

func TestForwardKinematics_BodyLift(t *testing.T) {
	targets := ForwardKinematics(BodyPose{Z: 10})

	for i, p := range targets {
		if !floatEquals(p.Vertical, GroundClearance+10) {
			t.Errorf("leg %d vertical: got %v, want %v", i, p.Vertical, GroundClearance+10)
		}
	}
}

func TestForwardKinematics_PitchSplitsFrontAndHind(t *testing.T) {
	targets := ForwardKinematics(BodyPose{Pitch: 10})

	if targets[LegFrontLeft].Vertical >= targets[LegHindLeft].Vertical {
		t.Errorf("pitch forward should shorten front legs: front=%v hind=%v",
			targets[LegFrontLeft].Vertical, targets[LegHindLeft].Vertical)
	}
	if !floatEquals(targets[LegFrontLeft].Vertical, targets[LegFrontRight].Vertical) {
		t.Errorf("pure pitch must stay left/right symmetric: %v vs %v",
			targets[LegFrontLeft].Vertical, targets[LegFrontRight].Vertical)
	}
}
