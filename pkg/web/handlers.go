package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/strideworks/go-pup/internal/log"
	"github.com/strideworks/go-pup/pkg/dog"
	"github.com/strideworks/go-pup/pkg/hub"
	"github.com/strideworks/go-pup/pkg/protocol"
)

const (
	defaultSteps = 1
	defaultSpeed = 50
)

// handleState returns the current state snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(protocol.Snapshot(s.dog))
}

// handleActions lists the action names the engine accepts.
func (s *Server) handleActions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"actions": protocol.ActionNames()})
}

// handleAction parses and queues a named action. Unknown names are a
// logged no-op: nothing reaches the motion queues.
func (s *Server) handleAction(c *fiber.Ctx) error {
	cmd, err := protocol.ParseCommand(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if cmd.Steps <= 0 {
		cmd.Steps = defaultSteps
	}
	if cmd.Speed <= 0 {
		cmd.Speed = defaultSpeed
	}

	kind, err := protocol.ParseAction(cmd.Action)
	if err != nil {
		log.Warn("ignoring unknown action", "id", cmd.ID, "action", cmd.Action)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.dog.DoAction(kind, cmd.Steps, cmd.Speed); err != nil {
		if errors.Is(err, dog.ErrUnknownAction) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Info("action queued", "id", cmd.ID, "action", cmd.Action, "steps", cmd.Steps, "speed", cmd.Speed)
	return c.JSON(fiber.Map{"id": cmd.ID, "status": "queued"})
}

// handleHead moves the head to a yaw/roll/pitch orientation.
func (s *Server) handleHead(c *fiber.Ctx) error {
	cmd, err := protocol.ParseCommand(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if cmd.Speed <= 0 {
		cmd.Speed = defaultSpeed
	}

	if err := s.dog.HeadMoveRPY(cmd.Yaw, cmd.Roll, cmd.Pitch, cmd.Immediately, cmd.Speed); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": cmd.ID, "status": "queued"})
}

// handleStop drains all motion queues. In-flight dispatches finish.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.dog.StopAll()
	log.Info("all motion queues drained")
	return c.JSON(fiber.Map{"status": "stopped"})
}

// handleStateWS attaches a websocket client to the state stream.
func (s *Server) handleStateWS(c *websocket.Conn) {
	client := hub.NewClient(s.stateHub, c)
	client.Run()
}
