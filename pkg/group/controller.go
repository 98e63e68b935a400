// Package group runs the per-joint-group actuation pipeline. Each limb
// group (legs, head, tail) owns one Controller: a mutex-guarded FIFO of
// joint-angle vectors drained by a dedicated worker goroutine. Groups
// are fully independent; order is guaranteed only within a group.
package group

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/strideworks/go-pup/internal/log"
)

// Actuator is the hardware boundary a Controller drives. MoveTo blocks
// until the interpolated move completes (or its own timeout fires).
type Actuator interface {
	MoveTo(ctx context.Context, angles []float64, speed int) error
}

const (
	// idleInterval is the empty-queue backoff. Plain polling instead of
	// a wakeup primitive: at 1ms the added latency is below servo
	// resolution.
	idleInterval = time.Millisecond

	// drainInterval paces Stop/Wait polling.
	drainInterval = 2 * time.Millisecond
)

// Controller owns the action queue and execution loop of one joint
// group. Construct with New, then run the loop with Run in its own
// goroutine for the process lifetime.
type Controller struct {
	name string
	size int
	act  Actuator

	mu    sync.Mutex
	queue [][]float64
	speed int
	last  []float64

	done chan struct{}
}

// New creates a controller for a group whose vectors carry size angles.
func New(name string, size int, act Actuator) *Controller {
	return &Controller{
		name: name,
		size: size,
		act:  act,
		last: make([]float64, size),
		done: make(chan struct{}),
	}
}

// Name returns the group name.
func (c *Controller) Name() string {
	return c.name
}

// Run executes the group's loop until ctx is cancelled or the actuator
// fails. A hardware error halts only this group; the caller's other
// groups keep running.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.done)

	for {
		if ctx.Err() != nil {
			return
		}

		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			sleep(ctx, idleInterval)
			continue
		}
		vector := c.queue[0]
		c.queue = c.queue[1:]
		speed := c.speed
		c.last = vector
		c.mu.Unlock()

		if err := c.act.MoveTo(ctx, vector, speed); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("actuator move failed, halting group loop",
				"group", c.name, "error", err)
			return
		}
	}
}

// Done is closed when the group's loop has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Enqueue appends vectors to the group's queue in order. When
// immediately is set, the queue is drained first so the new command
// does not blend with stale queued motion. speed (0-100) applies to
// the whole batch. An empty batch is a no-op.
func (c *Controller) Enqueue(vectors [][]float64, immediately bool, speed int) error {
	for i, v := range vectors {
		if len(v) != c.size {
			return fmt.Errorf("%s vector %d: got %d angles, want %d", c.name, i, len(v), c.size)
		}
	}
	if len(vectors) == 0 {
		return nil
	}

	if immediately {
		c.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if speed < 0 {
		speed = 0
	}
	if speed > 100 {
		speed = 100
	}
	c.speed = speed
	for _, v := range vectors {
		c.queue = append(c.queue, append([]float64(nil), v...))
	}
	return nil
}

// Stop clears the queue and blocks until the group is done. The
// in-flight vector is not preempted; only queued motion is dropped.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.queue = c.queue[:0]
	c.mu.Unlock()

	for !c.IsDone() {
		time.Sleep(drainInterval)
	}
}

// IsDone reports whether the queue is empty. It says nothing about the
// in-flight hardware move; callers needing physical settle time must
// add their own delay.
func (c *Controller) IsDone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue) == 0
}

// Wait polls until the queue is empty or ctx is cancelled.
func (c *Controller) Wait(ctx context.Context) error {
	for !c.IsDone() {
		if err := sleep(ctx, drainInterval); err != nil {
			return err
		}
	}
	return nil
}

// QueueLen returns the number of queued vectors.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Speed returns the current commanded speed.
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// CurrentAngles returns a copy of the last-dispatched vector.
func (c *Controller) CurrentAngles() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.last...)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
