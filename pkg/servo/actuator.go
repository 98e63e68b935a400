package servo

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Actuator drives one joint group's servo set. It implements the
// group.Actuator contract: MoveTo blocks for the duration of the
// interpolated move, derived from the largest angle delta and the
// speed-scaled DPS ceiling.
type Actuator struct {
	board  *Board
	ids    []int
	servos []*feetech.Servo

	mu      sync.Mutex
	offsets []float64
	lastDeg []float64
}

// Actuator creates a group view over the given servo IDs. offsets are
// the per-servo calibration corrections; nil means all zero.
func (b *Board) Actuator(ids []int, offsets []float64) (*Actuator, error) {
	if offsets == nil {
		offsets = make([]float64, len(ids))
	}
	if len(offsets) != len(ids) {
		return nil, fmt.Errorf("calibration: got %d offsets for %d servos", len(offsets), len(ids))
	}

	servos := make([]*feetech.Servo, len(ids))
	for i, id := range ids {
		servos[i] = feetech.NewServo(b.bus, id, &feetech.ModelSTS3215)
	}
	return &Actuator{
		board:   b,
		ids:     append([]int(nil), ids...),
		servos:  servos,
		offsets: append([]float64(nil), offsets...),
		lastDeg: make([]float64, len(ids)),
	}, nil
}

// Enable powers torque on all servos in the group.
func (a *Actuator) Enable(ctx context.Context) error {
	a.board.mu.Lock()
	defer a.board.mu.Unlock()
	for i, s := range a.servos {
		if err := s.Enable(ctx); err != nil {
			return fmt.Errorf("enable servo %d: %w", a.ids[i], err)
		}
	}
	return nil
}

// Disable cuts torque on all servos in the group.
func (a *Actuator) Disable(ctx context.Context) error {
	a.board.mu.Lock()
	defer a.board.mu.Unlock()
	for i, s := range a.servos {
		if err := s.Disable(ctx); err != nil {
			return fmt.Errorf("disable servo %d: %w", a.ids[i], err)
		}
	}
	return nil
}

// MoveTo issues a timed move to every servo in the group and blocks
// until the interpolation window has elapsed or ctx is cancelled.
// speed 0-100 scales the DPS ceiling; the move duration comes from
// the largest delta against the last commanded position.
func (a *Actuator) MoveTo(ctx context.Context, angles []float64, speed int) error {
	if len(angles) != len(a.servos) {
		return fmt.Errorf("got %d angles for %d servos", len(angles), len(a.servos))
	}
	if speed < 1 {
		speed = 1
	}
	if speed > 100 {
		speed = 100
	}

	a.mu.Lock()
	maxDelta := 0.0
	for i, angle := range angles {
		if d := math.Abs(angle - a.lastDeg[i]); d > maxDelta {
			maxDelta = d
		}
	}
	copy(a.lastDeg, angles)
	offsets := append([]float64(nil), a.offsets...)
	a.mu.Unlock()

	dps := a.board.maxDPS * float64(speed) / 100
	duration := time.Duration(maxDelta / dps * float64(time.Second))
	ms := int(duration.Milliseconds())

	a.board.mu.Lock()
	for i, s := range a.servos {
		if err := s.SetPositionWithTime(ctx, degToTicks(angles[i]+offsets[i]), ms); err != nil {
			a.board.mu.Unlock()
			return fmt.Errorf("servo %d move: %w", a.ids[i], err)
		}
	}
	a.board.mu.Unlock()

	// Block for the servo-side interpolation window.
	t := time.NewTimer(duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WriteRaw commands all servos to the given angles with no
// interpolation and no completion wait.
func (a *Actuator) WriteRaw(angles []float64) error {
	if len(angles) != len(a.servos) {
		return fmt.Errorf("got %d angles for %d servos", len(angles), len(a.servos))
	}

	a.mu.Lock()
	copy(a.lastDeg, angles)
	offsets := append([]float64(nil), a.offsets...)
	a.mu.Unlock()

	ctx := context.Background()
	a.board.mu.Lock()
	defer a.board.mu.Unlock()
	for i, s := range a.servos {
		if err := s.SetPositionWithTime(ctx, degToTicks(angles[i]+offsets[i]), 0); err != nil {
			return fmt.Errorf("servo %d write: %w", a.ids[i], err)
		}
	}
	return nil
}

// SetOffsets replaces the per-servo calibration corrections.
func (a *Actuator) SetOffsets(offsets []float64) error {
	if len(offsets) != len(a.servos) {
		return fmt.Errorf("calibration: got %d offsets for %d servos", len(offsets), len(a.servos))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	copy(a.offsets, offsets)
	return nil
}

// MaxDPS returns the angular velocity ceiling at speed 100.
func (a *Actuator) MaxDPS() float64 {
	return a.board.maxDPS
}

// ReadAngles reads the present position of every servo in the group,
// with calibration offsets removed.
func (a *Actuator) ReadAngles(ctx context.Context) ([]float64, error) {
	a.mu.Lock()
	offsets := append([]float64(nil), a.offsets...)
	a.mu.Unlock()

	a.board.mu.Lock()
	defer a.board.mu.Unlock()

	angles := make([]float64, len(a.servos))
	for i, s := range a.servos {
		ticks, err := s.Position(ctx)
		if err != nil {
			return nil, fmt.Errorf("servo %d position: %w", a.ids[i], err)
		}
		angles[i] = ticksToDeg(ticks) - offsets[i]
	}
	return angles, nil
}
