package dog

import "math"

// The head's roll and pitch servos sit behind the yaw joint, so what
// "pitch" means physically depends on where the yaw is pointing: at
// yaw ±90 the roll servo is doing all the pitching. HeadRPYToAngles
// models that coupling by cross-blending roll and pitch with |yaw|/90.

// SetHeadCompensation sets the head's calibration trim, applied inside
// HeadRPYToAngles after the blend.
func (d *Dog) SetHeadCompensation(roll, pitch float64) {
	d.headRollComp = roll
	d.headPitchComp = pitch
}

// HeadRPYToAngles maps a semantic head orientation (degrees) to the
// physical yaw/roll/pitch servo vector.
func (d *Dog) HeadRPYToAngles(yaw, roll, pitch float64) []float64 {
	sign := 1.0
	if yaw < 0 {
		sign = -1
	}
	ratio := math.Abs(yaw) / 90
	if ratio > 1 {
		ratio = 1
	}

	pitchServo := roll*ratio + pitch*(1-ratio) + d.headPitchComp
	rollServo := -(sign*(pitch*ratio+roll*(1-ratio)) + d.headRollComp)

	return []float64{yaw, rollServo, pitchServo}
}

// HeadMoveRPY maps the orientation through HeadRPYToAngles and queues
// it on the head group.
func (d *Dog) HeadMoveRPY(yaw, roll, pitch float64, immediately bool, speed int) error {
	return d.Head.Enqueue([][]float64{d.HeadRPYToAngles(yaw, roll, pitch)}, immediately, speed)
}
