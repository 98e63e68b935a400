package servo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Servo counts per joint group. The vector layout is fixed for the
// life of the process: legs are hip/knee pairs for four legs, the
// head is yaw/roll/pitch, the tail is a single joint.
const (
	LegServoCount  = 8
	HeadServoCount = 3
	TailServoCount = 1
)

// Calibration holds the per-servo additive corrections, in degrees.
// They are applied at the hardware boundary, after all kinematics and
// gait computation.
type Calibration struct {
	Legs []float64 `json:"legs"`
	Head []float64 `json:"head"`
	Tail []float64 `json:"tail"`
}

// DefaultCalibration returns an all-zero calibration.
func DefaultCalibration() Calibration {
	return Calibration{
		Legs: make([]float64, LegServoCount),
		Head: make([]float64, HeadServoCount),
		Tail: make([]float64, TailServoCount),
	}
}

// LoadCalibration reads and validates a calibration JSON file.
func LoadCalibration(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Calibration{}, fmt.Errorf("read calibration file: %w", err)
	}

	var cal Calibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return Calibration{}, fmt.Errorf("parse calibration JSON: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, err
	}
	return cal, nil
}

// Validate checks the offset vector lengths. A malformed calibration
// is fatal at startup; there is no safe way to guess servo mappings.
func (c Calibration) Validate() error {
	if len(c.Legs) != LegServoCount {
		return fmt.Errorf("calibration: got %d leg offsets, want %d", len(c.Legs), LegServoCount)
	}
	if len(c.Head) != HeadServoCount {
		return fmt.Errorf("calibration: got %d head offsets, want %d", len(c.Head), HeadServoCount)
	}
	if len(c.Tail) != TailServoCount {
		return fmt.Errorf("calibration: got %d tail offsets, want %d", len(c.Tail), TailServoCount)
	}
	return nil
}

// Save writes the calibration to a JSON file.
func (c Calibration) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calibration file: %w", err)
	}
	return nil
}
