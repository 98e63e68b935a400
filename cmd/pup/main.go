// Command pup runs the motion-control daemon: it opens the servo bus,
// starts the three joint-group loops, moves the robot to a stand, and
// serves the HTTP/websocket motion API.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/strideworks/go-pup/internal/config"
	"github.com/strideworks/go-pup/internal/log"
	"github.com/strideworks/go-pup/pkg/dog"
	"github.com/strideworks/go-pup/pkg/servo"
	"github.com/strideworks/go-pup/pkg/web"
)

func main() {
	var (
		port     = flag.String("port", config.SerialPort(), "servo bus serial port")
		baud     = flag.Int("baud", config.BaudRate(), "servo bus baud rate")
		httpPort = flag.String("http", config.HTTPPort(), "HTTP API listen port")
		calPath  = flag.String("calibration", config.CalibrationFile(), "calibration JSON path")
		logLevel = flag.String("log-level", config.LogLevel(), "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.Init(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *port, *baud, *httpPort, *calPath); err != nil {
		log.Error("daemon exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, port string, baud int, httpPort, calPath string) error {
	cal, err := servo.LoadCalibration(calPath)
	if err != nil {
		// Missing calibration is survivable; a malformed one is not.
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		log.Warn("no calibration file, using zero offsets", "path", calPath)
		cal = servo.DefaultCalibration()
	}

	board, err := servo.OpenBoard(port, baud)
	if err != nil {
		return err
	}
	defer board.Close()
	log.Info("servo bus open", "port", port, "baud", baud)

	legs, err := board.Actuator(servo.DefaultLegIDs, cal.Legs)
	if err != nil {
		return err
	}
	head, err := board.Actuator(servo.DefaultHeadIDs, cal.Head)
	if err != nil {
		return err
	}
	tail, err := board.Actuator(servo.DefaultTailIDs, cal.Tail)
	if err != nil {
		return err
	}

	for _, a := range []*servo.Actuator{legs, head, tail} {
		if err := a.Enable(ctx); err != nil {
			return err
		}
	}
	defer func() {
		offCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, a := range []*servo.Actuator{legs, head, tail} {
			if err := a.Disable(offCtx); err != nil {
				log.Warn("torque off failed", "error", err)
			}
		}
	}()

	d := dog.New(legs, head, tail)
	d.Start(ctx)

	if err := d.DoAction(dog.ActionStand, 1, 40); err != nil {
		return err
	}
	log.Info("motion engine running")

	return web.NewServer(httpPort, d).Start(ctx)
}
