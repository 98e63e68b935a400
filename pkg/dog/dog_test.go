package dog

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/strideworks/go-pup/pkg/gait"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// mockActuator records dispatched vectors for testing.
type mockActuator struct {
	mu    sync.Mutex
	calls [][]float64
}

func (m *mockActuator) MoveTo(ctx context.Context, angles []float64, speed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]float64(nil), angles...))
	return nil
}

func (m *mockActuator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestDog() (*Dog, *mockActuator, *mockActuator, *mockActuator) {
	legs, head, tail := &mockActuator{}, &mockActuator{}, &mockActuator{}
	return New(legs, head, tail), legs, head, tail
}

func TestDoAction_SitQueuesOneKeyframePerStep(t *testing.T) {
	d, _, _, _ := newTestDog()

	if err := d.DoAction(ActionSit, 3, 50); err != nil {
		t.Fatal(err)
	}
	if got := d.Legs.QueueLen(); got != 3 {
		t.Errorf("legs queue: got %d, want 3", got)
	}
}

func TestDoAction_ForwardQueuesFullWalkCycle(t *testing.T) {
	d, _, _, _ := newTestDog()

	if err := d.DoAction(ActionForward, 1, 70); err != nil {
		t.Fatal(err)
	}

	p := gait.WalkParams()
	want := p.Phases*p.StepsPerPhase + 1
	if got := d.Legs.QueueLen(); got != want {
		t.Errorf("legs queue: got %d, want %d", got, want)
	}
}

func TestDoAction_RoutesToOwningGroup(t *testing.T) {
	d, _, _, _ := newTestDog()

	if err := d.DoAction(ActionHeadNod, 1, 50); err != nil {
		t.Fatal(err)
	}
	if err := d.DoAction(ActionWagTail, 2, 50); err != nil {
		t.Fatal(err)
	}

	if d.Legs.QueueLen() != 0 {
		t.Error("head/tail actions must not queue leg motion")
	}
	if got := d.Head.QueueLen(); got != len(headNodVectors) {
		t.Errorf("head queue: got %d, want %d", got, len(headNodVectors))
	}
	if got := d.Tail.QueueLen(); got != 2*len(wagTailVectors) {
		t.Errorf("tail queue: got %d, want %d", got, 2*len(wagTailVectors))
	}
}

func TestDoAction_UnknownKind(t *testing.T) {
	d, _, _, _ := newTestDog()

	err := d.DoAction(ActionKind(999), 1, 50)
	if err == nil {
		t.Fatal("expected error for out-of-range action kind")
	}
	legs, head, tail := d.Busy()
	if legs || head || tail {
		t.Error("unknown action must not queue any motion")
	}
}

func TestLegsAngleCalculation_AppliesMirrorRule(t *testing.T) {
	frame := gait.Frame{
		{Lateral: 0, Vertical: 80},
		{Lateral: 0, Vertical: 80},
		{Lateral: 0, Vertical: 80},
		{Lateral: 0, Vertical: 80},
	}
	vectors := LegsAngleCalculation([]gait.Frame{frame})

	if len(vectors) != 1 || len(vectors[0]) != LegsAngleCount {
		t.Fatalf("got %d vectors of %d angles", len(vectors), len(vectors[0]))
	}

	v := vectors[0]
	// Identical targets: right legs are the mirrored left legs.
	if !floatEquals(v[2], -v[0]) {
		t.Errorf("front-right hip: got %v, want %v", v[2], -v[0])
	}
	if !floatEquals(v[3], -v[1]-90) {
		t.Errorf("front-right knee: got %v, want %v", v[3], -v[1]-90)
	}
}

func TestHeadRPYToAngles_ZeroYaw(t *testing.T) {
	d, _, _, _ := newTestDog()

	got := d.HeadRPYToAngles(0, 10, 20)
	want := []float64{0, -10, 20}
	for i := range want {
		if !floatEquals(got[i], want[i]) {
			t.Errorf("angle %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHeadRPYToAngles_FullYawSwapsRollAndPitch(t *testing.T) {
	d, _, _, _ := newTestDog()

	got := d.HeadRPYToAngles(90, 10, 20)
	// At yaw 90 the roll servo carries the commanded pitch and the
	// pitch servo carries the commanded roll.
	if !floatEquals(got[1], -20) {
		t.Errorf("roll servo: got %v, want -20", got[1])
	}
	if !floatEquals(got[2], 10) {
		t.Errorf("pitch servo: got %v, want 10", got[2])
	}
}

func TestHeadRPYToAngles_NegativeYawFlipsRollSign(t *testing.T) {
	d, _, _, _ := newTestDog()

	pos := d.HeadRPYToAngles(90, 0, 20)
	neg := d.HeadRPYToAngles(-90, 0, 20)

	if !floatEquals(pos[1], -neg[1]) {
		t.Errorf("roll servo must flip with yaw sign: %v vs %v", pos[1], neg[1])
	}
}

func TestHeadRPYToAngles_AppliesCompensation(t *testing.T) {
	d, _, _, _ := newTestDog()
	d.SetHeadCompensation(2, -3)

	got := d.HeadRPYToAngles(0, 0, 0)
	if !floatEquals(got[1], -2) {
		t.Errorf("roll servo: got %v, want -2", got[1])
	}
	if !floatEquals(got[2], -3) {
		t.Errorf("pitch servo: got %v, want -3", got[2])
	}
}

func TestWaitAllDone(t *testing.T) {
	d, legs, _, tail := newTestDog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if err := d.DoAction(ActionSit, 1, 50); err != nil {
		t.Fatal(err)
	}
	if err := d.DoAction(ActionWagTail, 1, 50); err != nil {
		t.Fatal(err)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	if err := d.WaitAllDone(waitCtx); err != nil {
		t.Fatalf("WaitAllDone: %v", err)
	}

	if legs.callCount() == 0 || tail.callCount() == 0 {
		t.Error("queued motion was never dispatched")
	}
}

func TestAdjustPosture_QueuesOneVector(t *testing.T) {
	d, _, _, _ := newTestDog()
	d.SetRPY(5, -5, 0)

	if err := d.AdjustPosture(60); err != nil {
		t.Fatal(err)
	}
	if got := d.Legs.QueueLen(); got != 1 {
		t.Errorf("legs queue: got %d, want 1", got)
	}
}

func TestStabilize_CounterLeansPose(t *testing.T) {
	d, _, _, _ := newTestDog()

	imu := stubIMU{roll: 4, pitch: -6}
	ctx, cancel := context.WithCancel(context.Background())
	go d.Stabilize(ctx, imu, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p := d.Pose()
		if floatEquals(p.Roll, -4) && floatEquals(p.Pitch, 6) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	p := d.Pose()
	if !floatEquals(p.Roll, -4) || !floatEquals(p.Pitch, 6) {
		t.Errorf("pose after stabilization: got roll=%v pitch=%v, want roll=-4 pitch=6", p.Roll, p.Pitch)
	}
}

type stubIMU struct {
	roll, pitch float64
}

func (s stubIMU) ReadRollPitch(ctx context.Context) (float64, float64, error) {
	return s.roll, s.pitch, nil
}

func TestActionKind_String(t *testing.T) {
	if got := ActionForward.String(); got != "forward" {
		t.Errorf("got %q, want %q", got, "forward")
	}
	if got := ActionKind(999).String(); got != "ActionKind(999)" {
		t.Errorf("got %q, want %q", got, "ActionKind(999)")
	}
}
