package dog

import (
	"github.com/strideworks/go-pup/pkg/gait"
	"github.com/strideworks/go-pup/pkg/kinematics"
)

// Expressive poses. Leg poses are defined as foot coordinates and run
// through the same inverse kinematics as the gaits, so a calibration
// or geometry change propagates everywhere at once. The sit pose is
// the exception: its angles were hand-tuned on the robot.

func coordsToVectors(frames ...gait.Frame) [][]float64 {
	return LegsAngleCalculation(frames)
}

func uniformFrame(p kinematics.Point) gait.Frame {
	var f gait.Frame
	for i := range f {
		f[i] = p
	}
	return f
}

func standVectors() [][]float64 {
	return coordsToVectors(gait.Frame{
		{Lateral: -15, Vertical: 95},
		{Lateral: -15, Vertical: 95},
		{Lateral: 5, Vertical: 95},
		{Lateral: 5, Vertical: 95},
	})
}

func sitVectors() [][]float64 {
	return [][]float64{
		{30, 60, -30, -60, 80, -45, -80, 45},
	}
}

func lieVectors() [][]float64 {
	return coordsToVectors(uniformFrame(kinematics.Point{Lateral: 45, Vertical: 35}))
}

func stretchVectors() [][]float64 {
	// Front paws slide out while the hind legs stay planted, then back
	// to neutral stance.
	return coordsToVectors(
		gait.Frame{
			{Lateral: 60, Vertical: 50},
			{Lateral: 60, Vertical: 50},
			{Lateral: 0, Vertical: 80},
			{Lateral: 0, Vertical: 80},
		},
		uniformFrame(kinematics.Point{Lateral: 0, Vertical: 80}),
	)
}

func pushUpVectors() [][]float64 {
	up := gait.Frame{
		{Lateral: -10, Vertical: 95},
		{Lateral: -10, Vertical: 95},
		{Lateral: 20, Vertical: 70},
		{Lateral: 20, Vertical: 70},
	}
	down := gait.Frame{
		{Lateral: -10, Vertical: 50},
		{Lateral: -10, Vertical: 50},
		{Lateral: 20, Vertical: 70},
		{Lateral: 20, Vertical: 70},
	}
	return coordsToVectors(up, down, up)
}

// Head keyframes are yaw/roll/pitch servo angles.
var (
	headNodVectors = [][]float64{
		{0, 0, 20},
		{0, 0, -15},
		{0, 0, 0},
	}
	headShakeVectors = [][]float64{
		{-40, 0, 0},
		{40, 0, 0},
		{0, 0, 0},
	}
	headTiltVectors = [][]float64{
		{0, 25, 0},
		{0, -25, 0},
		{0, 0, 0},
	}
	dozeOffVectors = [][]float64{
		{0, 0, -10},
		{0, 0, -25},
		{0, 0, -30},
		{0, 0, -25},
	}
)

var wagTailVectors = [][]float64{
	{-30},
	{30},
}
