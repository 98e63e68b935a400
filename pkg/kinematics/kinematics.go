// Package kinematics solves the leg geometry of the quadruped.
//
// Each leg is a two-link planar chain (thigh + shin) driven by a hip and a
// knee servo. Targets are given in the leg's sagittal plane: Lateral runs
// along the direction of travel, Vertical runs from the hip down to the
// ground. All angles are in degrees, matching the servo command units.
package kinematics

import "math"

// Physical dimensions in millimeters.
const (
	ThighLength = 42.0
	ShinLength  = 76.0

	// Hip spacing of the rectangular leg layout.
	BodyLength = 117.0
	BodyWidth  = 98.0

	// GroundClearance is the hip-to-ground distance of the neutral stance.
	GroundClearance = 80.0

	// KneeMirrorOffset is the alignment offset subtracted from the knee
	// angle of mirrored legs. Right-side servos are mounted rotated 90
	// degrees relative to their left-side counterparts.
	KneeMirrorOffset = 90.0
)

// Point is a foot target in a leg's sagittal plane.
type Point struct {
	Lateral  float64 `json:"lateral"`
	Vertical float64 `json:"vertical"`
}

// LegIK computes the hip and knee angles that place the foot at the given
// lateral/vertical target. The law-of-cosines argument is clamped to
// [-1, 1], so a geometrically unreachable target yields the closest
// reachable posture instead of an error. Availability beats precision
// here: a clamped pose keeps the dog standing.
func LegIK(lateral, vertical float64) (hip, knee float64) {
	u := math.Hypot(lateral, vertical)

	cosKnee := (ThighLength*ThighLength + ShinLength*ShinLength - u*u) /
		(2 * ThighLength * ShinLength)
	knee = 180 - degrees(math.Acos(clamp(cosKnee, -1, 1)))

	// Hip angle: direction to the target plus the triangle angle
	// opposite the shin.
	cosHip := (ThighLength*ThighLength + u*u - ShinLength*ShinLength) /
		(2 * ThighLength * u)
	hip = degrees(math.Atan2(lateral, vertical)) +
		degrees(math.Acos(clamp(cosHip, -1, 1)))

	return hip, knee
}

// MirrorLegAngles applies the mounting-mirror rule for the leg at the
// given index. Odd-indexed legs (the right side) have their servos
// mounted flipped: both angles are negated and the knee gets the fixed
// alignment offset. Every consumer of LegIK must route its output
// through this function so the rule is applied exactly once.
func MirrorLegAngles(index int, hip, knee float64) (float64, float64) {
	if index%2 == 0 {
		return hip, knee
	}
	return -hip, -knee - KneeMirrorOffset
}

// LegAngles solves the target for the leg at the given index, with the
// mirror rule applied.
func LegAngles(index int, p Point) (hip, knee float64) {
	hip, knee = LegIK(p.Lateral, p.Vertical)
	return MirrorLegAngles(index, hip, knee)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
