// Package servo is the hardware boundary: it drives the robot's bus
// servos over a shared serial connection and turns joint angles in
// degrees into raw servo ticks. One Board is opened per process; each
// joint group gets its own Actuator view onto it.
package servo

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

const (
	// STS servos: 4096 ticks per revolution, mid-travel at 2048.
	ticksPerDegree = 4096.0 / 360.0
	centerTick     = 2048

	servoModel = "sts3215"

	// DefaultMaxDPS is the angular velocity ceiling at speed 100.
	DefaultMaxDPS = 240.0
)

// Default servo ID assignment on the bus.
var (
	DefaultLegIDs  = []int{1, 2, 3, 4, 5, 6, 7, 8}
	DefaultHeadIDs = []int{9, 10, 11}
	DefaultTailIDs = []int{12}
)

// Board is the shared servo bus. The three group loops write through
// it concurrently, so bus transactions are serialized by a mutex.
type Board struct {
	bus    *feetech.Bus
	mu     sync.Mutex
	maxDPS float64
}

// OpenBoard opens the servo bus on the given serial port.
func OpenBoard(port string, baud int) (*Board, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: baud,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open servo bus %s: %w", port, err)
	}
	return &Board{bus: bus, maxDPS: DefaultMaxDPS}, nil
}

// Close closes the underlying bus.
func (b *Board) Close() error {
	return b.bus.Close()
}

// Scan probes the bus for responding servos and returns their IDs.
func (b *Board) Scan(ctx context.Context, from, to int) ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	found, err := b.bus.Scan(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("scan servo bus: %w", err)
	}
	ids := make([]int, 0, len(found))
	for _, s := range found {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// ListPorts returns the serial ports available on this machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}

func degToTicks(deg float64) int {
	return centerTick + int(math.Round(deg*ticksPerDegree))
}

func ticksToDeg(ticks int) float64 {
	return float64(ticks-centerTick) / ticksPerDegree
}
