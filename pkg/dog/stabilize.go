package dog

import (
	"context"
	"time"

	"github.com/strideworks/go-pup/internal/log"
	"github.com/strideworks/go-pup/pkg/gait"
	"github.com/strideworks/go-pup/pkg/kinematics"
)

// IMU is the attitude sensor consumed by the stabilization loop.
type IMU interface {
	// ReadRollPitch returns the trunk attitude in degrees.
	ReadRollPitch(ctx context.Context) (roll, pitch float64, err error)
}

// AdjustPosture recomputes the leg targets that hold the current body
// pose with all four feet planted, and queues them immediately. Used
// for static leans and by the stabilization loop.
func (d *Dog) AdjustPosture(speed int) error {
	targets := kinematics.ForwardKinematics(d.pose)
	vectors := LegsAngleCalculation([]gait.Frame{gait.Frame(targets)})
	return d.Legs.Enqueue(vectors, true, speed)
}

// Stabilize runs the optional feedback path: it reads the IMU at the
// given interval and counter-leans the body pose to keep the trunk
// level. Returns when ctx is cancelled. Read errors are logged and
// skipped; a persistently faulted IMU just leaves the pose alone.
func (d *Dog) Stabilize(ctx context.Context, imu IMU, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		roll, pitch, err := imu.ReadRollPitch(ctx)
		if err != nil {
			log.Warn("imu read failed, skipping stabilization tick", "error", err)
			continue
		}

		d.pose.Roll = -roll
		d.pose.Pitch = -pitch
		if err := d.AdjustPosture(80); err != nil {
			log.Warn("posture adjustment failed", "error", err)
		}
	}
}
