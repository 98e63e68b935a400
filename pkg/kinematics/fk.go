package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BodyPose is the shared position and orientation of the trunk.
// Position is millimeters (X forward, Y left, Z up), orientation is
// degrees. It is mutated in place by low-frequency setters and read
// without locking; readers tolerate a stale value.
type BodyPose struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Leg indices of the rectangular hip layout.
const (
	LegFrontLeft = iota
	LegFrontRight
	LegHindLeft
	LegHindRight
	LegCount
)

// hipLayout holds each hip position in the neutral body frame.
var hipLayout = [LegCount][3]float64{
	{BodyLength / 2, BodyWidth / 2, 0},
	{BodyLength / 2, -BodyWidth / 2, 0},
	{-BodyLength / 2, BodyWidth / 2, 0},
	{-BodyLength / 2, -BodyWidth / 2, 0},
}

// rotationMatrix composes the body orientation, applied roll, then
// pitch, then yaw.
func rotationMatrix(roll, pitch, yaw float64) *mat.Dense {
	r, p, y := radians(roll), radians(pitch), radians(yaw)
	sin, cos := math.Sin, math.Cos

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cos(r), -sin(r),
		0, sin(r), cos(r),
	})
	ry := mat.NewDense(3, 3, []float64{
		cos(p), 0, sin(p),
		0, 1, 0,
		-sin(p), 0, cos(p),
	})
	rz := mat.NewDense(3, 3, []float64{
		cos(y), -sin(y), 0,
		sin(y), cos(y), 0,
		0, 0, 1,
	})

	var rp, rpy mat.Dense
	rp.Mul(ry, rx)
	rpy.Mul(rz, &rp)
	return &rpy
}

// ForwardKinematics computes the foot target for each leg that keeps
// all four feet planted while the trunk assumes the given pose. The
// feet are held at their neutral ground points; the targets come out
// in each leg's sagittal frame, ready for LegAngles.
func ForwardKinematics(pose BodyPose) [LegCount]Point {
	rot := rotationMatrix(pose.Roll, pose.Pitch, pose.Yaw)

	var targets [LegCount]Point
	for i, hip := range hipLayout {
		// Neutral world position of this foot.
		foot := mat.NewVecDense(3, []float64{
			hip[0] - pose.X,
			hip[1] - pose.Y,
			-GroundClearance - pose.Z,
		})

		// Into the rotated body frame: R^T (foot - t).
		var local mat.VecDense
		local.MulVec(rot.T(), foot)

		targets[i] = Point{
			Lateral:  local.AtVec(0) - hip[0],
			Vertical: -local.AtVec(2),
		}
	}
	return targets
}
