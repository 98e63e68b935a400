package dog

import (
	"errors"
	"fmt"

	"github.com/strideworks/go-pup/pkg/gait"
	"github.com/strideworks/go-pup/pkg/group"
)

// ErrUnknownAction is returned for an action kind outside the closed
// set. Callers log it and skip the request; no partial motion is ever
// queued for an unknown action.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind enumerates every motion the orchestrator can perform.
// The set is closed: wire-level action names are parsed into a kind
// before they reach DoAction, which matches exhaustively.
type ActionKind int

const (
	ActionStand ActionKind = iota
	ActionSit
	ActionLie
	ActionStretch
	ActionPushUp
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionTrot
	ActionTrotLeft
	ActionTrotRight
	ActionHeadNod
	ActionHeadShake
	ActionHeadTilt
	ActionDozeOff
	ActionWagTail
)

var actionNames = map[ActionKind]string{
	ActionStand:     "stand",
	ActionSit:       "sit",
	ActionLie:       "lie",
	ActionStretch:   "stretch",
	ActionPushUp:    "push_up",
	ActionForward:   "forward",
	ActionBackward:  "backward",
	ActionTurnLeft:  "turn_left",
	ActionTurnRight: "turn_right",
	ActionTrot:      "trot",
	ActionTrotLeft:  "trot_left",
	ActionTrotRight: "trot_right",
	ActionHeadNod:   "head_nod",
	ActionHeadShake: "head_shake",
	ActionHeadTilt:  "head_tilt",
	ActionDozeOff:   "doze_off",
	ActionWagTail:   "wag_tail",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// DoAction resolves the action to joint-angle vectors and enqueues
// steps repetitions, non-immediately, on the owning group. Gait
// actions run the generator output through inverse kinematics;
// expressive actions use literal keyframes.
func (d *Dog) DoAction(kind ActionKind, steps, speed int) error {
	if steps < 1 {
		steps = 1
	}

	switch kind {
	case ActionForward:
		return d.enqueueGait(gait.NewWalk(gait.Forward, gait.Straight), steps, speed)
	case ActionBackward:
		return d.enqueueGait(gait.NewWalk(gait.Backward, gait.Straight), steps, speed)
	case ActionTurnLeft:
		return d.enqueueGait(gait.NewWalk(gait.Forward, gait.TurnLeft), steps, speed)
	case ActionTurnRight:
		return d.enqueueGait(gait.NewWalk(gait.Forward, gait.TurnRight), steps, speed)
	case ActionTrot:
		return d.enqueueGait(gait.NewTrot(gait.Forward, gait.Straight), steps, speed)
	case ActionTrotLeft:
		return d.enqueueGait(gait.NewTrot(gait.Forward, gait.TurnLeft), steps, speed)
	case ActionTrotRight:
		return d.enqueueGait(gait.NewTrot(gait.Forward, gait.TurnRight), steps, speed)

	case ActionStand:
		return d.repeatLegs(standVectors(), steps, speed)
	case ActionSit:
		return d.repeatLegs(sitVectors(), steps, speed)
	case ActionLie:
		return d.repeatLegs(lieVectors(), steps, speed)
	case ActionStretch:
		return d.repeatLegs(stretchVectors(), steps, speed)
	case ActionPushUp:
		return d.repeatLegs(pushUpVectors(), steps, speed)

	case ActionHeadNod:
		return d.repeat(d.Head, headNodVectors, steps, speed)
	case ActionHeadShake:
		return d.repeat(d.Head, headShakeVectors, steps, speed)
	case ActionHeadTilt:
		return d.repeat(d.Head, headTiltVectors, steps, speed)
	case ActionDozeOff:
		return d.repeat(d.Head, dozeOffVectors, steps, speed)

	case ActionWagTail:
		return d.repeat(d.Tail, wagTailVectors, steps, speed)
	}

	return fmt.Errorf("%w: %v", ErrUnknownAction, kind)
}

func (d *Dog) enqueueGait(g gait.Generator, cycles, speed int) error {
	vectors := LegsAngleCalculation(g.Sequence())
	for i := 0; i < cycles; i++ {
		if err := d.Legs.Enqueue(vectors, false, speed); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dog) repeatLegs(vectors [][]float64, steps, speed int) error {
	return d.repeat(d.Legs, vectors, steps, speed)
}

func (d *Dog) repeat(g *group.Controller, vectors [][]float64, steps, speed int) error {
	for i := 0; i < steps; i++ {
		if err := g.Enqueue(vectors, false, speed); err != nil {
			return err
		}
	}
	return nil
}
