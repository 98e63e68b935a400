// Package dog composes the motion-control engine: it owns the three
// joint-group controllers (legs, head, tail), the shared body pose,
// and the public motion API that turns semantic actions into queued
// joint-angle vectors.
//
// A Dog is constructed once and passed by reference to every caller;
// there is no package-level singleton. Groups are fully independent:
// a faulted head bus never stalls leg motion, and ordering is only
// guaranteed within a single group's queue.
package dog

import (
	"context"

	"github.com/strideworks/go-pup/pkg/gait"
	"github.com/strideworks/go-pup/pkg/group"
	"github.com/strideworks/go-pup/pkg/kinematics"
)

// Joint counts per group. The legs vector is hip/knee for each of the
// four legs; the head is yaw/roll/pitch; the tail is one joint.
const (
	LegsAngleCount = kinematics.LegCount * 2
	HeadAngleCount = 3
	TailAngleCount = 1
)

// Dog is the motion orchestrator.
type Dog struct {
	Legs *group.Controller
	Head *group.Controller
	Tail *group.Controller

	// pose is advisory shared state: mutated by low-frequency setters,
	// read without locking by forward kinematics and stabilization.
	pose kinematics.BodyPose

	headRollComp  float64
	headPitchComp float64
}

// New builds a Dog over the three group actuators.
func New(legs, head, tail group.Actuator) *Dog {
	return &Dog{
		Legs: group.New("legs", LegsAngleCount, legs),
		Head: group.New("head", HeadAngleCount, head),
		Tail: group.New("tail", TailAngleCount, tail),
	}
}

// Start launches the three group execution loops. They run until ctx
// is cancelled; a group whose hardware faults halts alone.
func (d *Dog) Start(ctx context.Context) {
	go d.Legs.Run(ctx)
	go d.Head.Run(ctx)
	go d.Tail.Run(ctx)
}

// LegsMove queues joint-angle vectors on the leg group.
func (d *Dog) LegsMove(vectors [][]float64, immediately bool, speed int) error {
	return d.Legs.Enqueue(vectors, immediately, speed)
}

// HeadMove queues yaw/roll/pitch vectors on the head group.
func (d *Dog) HeadMove(vectors [][]float64, immediately bool, speed int) error {
	return d.Head.Enqueue(vectors, immediately, speed)
}

// TailMove queues tail vectors on the tail group.
func (d *Dog) TailMove(vectors [][]float64, immediately bool, speed int) error {
	return d.Tail.Enqueue(vectors, immediately, speed)
}

// LegsAngleCalculation converts foot-coordinate frames into leg
// joint-angle vectors, applying inverse kinematics and the mirror
// rule per leg. Exposed for callers composing custom poses.
func LegsAngleCalculation(frames []gait.Frame) [][]float64 {
	vectors := make([][]float64, len(frames))
	for i, f := range frames {
		v := make([]float64, 0, LegsAngleCount)
		for leg := 0; leg < kinematics.LegCount; leg++ {
			hip, knee := kinematics.LegAngles(leg, f[leg])
			v = append(v, hip, knee)
		}
		vectors[i] = v
	}
	return vectors
}

// WaitLegsDone blocks until the leg queue is empty.
func (d *Dog) WaitLegsDone(ctx context.Context) error {
	return d.Legs.Wait(ctx)
}

// WaitHeadDone blocks until the head queue is empty.
func (d *Dog) WaitHeadDone(ctx context.Context) error {
	return d.Head.Wait(ctx)
}

// WaitTailDone blocks until the tail queue is empty.
func (d *Dog) WaitTailDone(ctx context.Context) error {
	return d.Tail.Wait(ctx)
}

// WaitAllDone blocks until every group's queue is empty. Queue-level
// completion only: the last dispatched move may still be settling on
// the hardware.
func (d *Dog) WaitAllDone(ctx context.Context) error {
	for _, g := range []*group.Controller{d.Legs, d.Head, d.Tail} {
		if err := g.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll drains every group's queue.
func (d *Dog) StopAll() {
	d.Legs.Stop()
	d.Head.Stop()
	d.Tail.Stop()
}

// Busy reports which groups still have queued motion.
func (d *Dog) Busy() (legs, head, tail bool) {
	return !d.Legs.IsDone(), !d.Head.IsDone(), !d.Tail.IsDone()
}

// Pose returns the current body pose. Best effort: concurrent setters
// are not serialized against this read.
func (d *Dog) Pose() kinematics.BodyPose {
	return d.pose
}

// SetPosition moves the body pose origin.
func (d *Dog) SetPosition(x, y, z float64) {
	d.pose.X, d.pose.Y, d.pose.Z = x, y, z
}

// SetRPY sets the body pose orientation, in degrees.
func (d *Dog) SetRPY(roll, pitch, yaw float64) {
	d.pose.Roll, d.pose.Pitch, d.pose.Yaw = roll, pitch, yaw
}
