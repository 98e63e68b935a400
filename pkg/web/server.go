// Package web exposes the motion engine over HTTP and a websocket
// state stream.
package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/strideworks/go-pup/internal/log"
	"github.com/strideworks/go-pup/pkg/dog"
	"github.com/strideworks/go-pup/pkg/hub"
	"github.com/strideworks/go-pup/pkg/protocol"
)

// statePeriod is how often the state stream publishes a snapshot.
const statePeriod = 100 * time.Millisecond

// Server is the HTTP/websocket front end over a Dog.
type Server struct {
	app  *fiber.App
	port string
	dog  *dog.Dog

	stateHub *hub.Hub
}

// NewServer builds the fiber app and its routes.
func NewServer(port string, d *dog.Dog) *Server {
	s := &Server{
		port:     port,
		dog:      d,
		stateHub: hub.New("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-pup",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/actions", s.handleActions)
	api.Post("/action", s.handleAction)
	api.Post("/head", s.handleHead)
	api.Post("/stop", s.handleStop)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go s.stateHub.Run()
	go s.publishState(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(":" + s.port)
	}()
	log.Info("http server listening", "port", s.port)

	select {
	case <-ctx.Done():
		return s.app.Shutdown()
	case err := <-errCh:
		return err
	}
}

// publishState broadcasts periodic snapshots to the state stream.
func (s *Server) publishState(ctx context.Context) {
	ticker := time.NewTicker(statePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if s.stateHub.ClientCount() == 0 {
			continue
		}
		if err := s.stateHub.BroadcastJSON(protocol.Snapshot(s.dog)); err != nil {
			log.Warn("state broadcast failed", "error", err)
		}
	}
}
