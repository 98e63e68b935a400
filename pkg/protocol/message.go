// Package protocol defines the JSON message types of the motion API.
// It is the only place where action names exist as strings; they are
// parsed into the closed dog.ActionKind set before any motion is
// queued, so an unknown name can never produce partial movement.
package protocol

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/strideworks/go-pup/pkg/dog"
	"github.com/strideworks/go-pup/pkg/kinematics"
)

// CommandType identifies the kind of API command.
type CommandType string

const (
	TypeAction CommandType = "action" // run a named action
	TypeHead   CommandType = "head"   // move the head to yaw/roll/pitch
	TypeStop   CommandType = "stop"   // drain all queues
)

// Command is a motion request. ID is assigned by the sender and echoed
// in logs so a request can be traced through the pipeline.
type Command struct {
	ID        string      `json:"id"`
	Type      CommandType `json:"type"`
	Timestamp int64       `json:"ts,omitempty"` // Unix milliseconds

	// Action fields (TypeAction).
	Action string `json:"action,omitempty"`
	Steps  int    `json:"steps,omitempty"`
	Speed  int    `json:"speed,omitempty"`

	// Head fields (TypeHead), degrees.
	Yaw   float64 `json:"yaw,omitempty"`
	Roll  float64 `json:"roll,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`

	Immediately bool `json:"immediately,omitempty"`
}

// NewActionCommand builds a TypeAction command with a fresh ID.
func NewActionCommand(action string, steps, speed int) Command {
	return Command{
		ID:        uuid.NewString(),
		Type:      TypeAction,
		Timestamp: time.Now().UnixMilli(),
		Action:    action,
		Steps:     steps,
		Speed:     speed,
	}
}

// ParseCommand decodes a JSON command.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("parse command: %w", err)
	}
	return cmd, nil
}

// actionKinds maps wire names onto the closed action set.
var actionKinds = func() map[string]dog.ActionKind {
	kinds := []dog.ActionKind{
		dog.ActionStand, dog.ActionSit, dog.ActionLie,
		dog.ActionStretch, dog.ActionPushUp,
		dog.ActionForward, dog.ActionBackward,
		dog.ActionTurnLeft, dog.ActionTurnRight,
		dog.ActionTrot, dog.ActionTrotLeft, dog.ActionTrotRight,
		dog.ActionHeadNod, dog.ActionHeadShake, dog.ActionHeadTilt,
		dog.ActionDozeOff, dog.ActionWagTail,
	}
	m := make(map[string]dog.ActionKind, len(kinds))
	for _, k := range kinds {
		m[k.String()] = k
	}
	return m
}()

// ParseAction resolves a wire action name. Unknown names return an
// error wrapping dog.ErrUnknownAction.
func ParseAction(name string) (dog.ActionKind, error) {
	kind, ok := actionKinds[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dog.ErrUnknownAction, name)
	}
	return kind, nil
}

// ActionNames returns the known action names, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actionKinds))
	for name := range actionKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupState is one joint group's slice of a state snapshot.
type GroupState struct {
	Angles []float64 `json:"angles"`
	Busy   bool      `json:"busy"`
	Queued int       `json:"queued"`
}

// StateSnapshot is the full robot state published over the API and
// the websocket stream.
type StateSnapshot struct {
	Timestamp int64               `json:"ts"` // Unix milliseconds
	Pose      kinematics.BodyPose `json:"pose"`
	Legs      GroupState          `json:"legs"`
	Head      GroupState          `json:"head"`
	Tail      GroupState          `json:"tail"`
}

// Snapshot captures the current state of the dog.
func Snapshot(d *dog.Dog) StateSnapshot {
	legsBusy, headBusy, tailBusy := d.Busy()
	return StateSnapshot{
		Timestamp: time.Now().UnixMilli(),
		Pose:      d.Pose(),
		Legs: GroupState{
			Angles: d.Legs.CurrentAngles(),
			Busy:   legsBusy,
			Queued: d.Legs.QueueLen(),
		},
		Head: GroupState{
			Angles: d.Head.CurrentAngles(),
			Busy:   headBusy,
			Queued: d.Head.QueueLen(),
		},
		Tail: GroupState{
			Angles: d.Tail.CurrentAngles(),
			Busy:   tailBusy,
			Queued: d.Tail.QueueLen(),
		},
	}
}
