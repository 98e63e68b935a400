// Command calibrate manages the per-servo offset file. It can list
// serial ports, scan the bus for responding servos, print or edit the
// calibration JSON, and wiggle a single servo to verify its mapping.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/strideworks/go-pup/internal/config"
	"github.com/strideworks/go-pup/internal/log"
	"github.com/strideworks/go-pup/pkg/servo"
)

func main() {
	var (
		port      = flag.String("port", config.SerialPort(), "servo bus serial port")
		baud      = flag.Int("baud", config.BaudRate(), "servo bus baud rate")
		calPath   = flag.String("file", config.CalibrationFile(), "calibration JSON path")
		listPorts = flag.Bool("list-ports", false, "list serial ports and exit")
		scan      = flag.Bool("scan", false, "scan the bus for servos and exit")
		initFile  = flag.Bool("init", false, "write a zero calibration file and exit")
		show      = flag.Bool("show", false, "print the calibration file and exit")
		group     = flag.String("group", "", "group to edit: legs, head or tail")
		index     = flag.Int("index", -1, "servo index within the group")
		offset    = flag.Float64("offset", 0, "offset in degrees for -group/-index")
		wiggle    = flag.Int("wiggle", 0, "servo ID to wiggle for identification")
	)
	flag.Parse()
	log.Init(config.LogLevel())

	if err := run(*port, *baud, *calPath, *listPorts, *scan, *initFile, *show, *group, *index, *offset, *wiggle); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(port string, baud int, calPath string, listPorts, scan, initFile, show bool, group string, index int, offset float64, wiggle int) error {
	switch {
	case listPorts:
		ports, err := servo.ListPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil

	case scan:
		return scanBus(port, baud)

	case initFile:
		cal := servo.DefaultCalibration()
		if err := cal.Save(calPath); err != nil {
			return err
		}
		fmt.Println("wrote", calPath)
		return nil

	case show:
		cal, err := servo.LoadCalibration(calPath)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(cal, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	case wiggle > 0:
		return wiggleServo(port, baud, wiggle)

	case group != "":
		return setOffset(calPath, group, index, offset)
	}

	flag.Usage()
	return nil
}

func scanBus(port string, baud int) error {
	board, err := servo.OpenBoard(port, baud)
	if err != nil {
		return err
	}
	defer board.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := board.Scan(ctx, 1, 20)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("no servos found")
		return nil
	}
	for _, id := range ids {
		fmt.Println("servo", id)
	}
	return nil
}

// wiggleServo nudges one servo a few degrees each way so it can be
// matched to a physical joint.
func wiggleServo(port string, baud int, id int) error {
	board, err := servo.OpenBoard(port, baud)
	if err != nil {
		return err
	}
	defer board.Close()

	a, err := board.Actuator([]int{id}, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Enable(ctx); err != nil {
		return err
	}
	defer a.Disable(context.Background())

	for _, deg := range []float64{10, -10, 0} {
		if err := a.MoveTo(ctx, []float64{deg}, 30); err != nil {
			return err
		}
	}
	return nil
}

func setOffset(calPath, group string, index int, offset float64) error {
	cal, err := servo.LoadCalibration(calPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cal = servo.DefaultCalibration()
	}

	var vec []float64
	switch group {
	case "legs":
		vec = cal.Legs
	case "head":
		vec = cal.Head
	case "tail":
		vec = cal.Tail
	default:
		return fmt.Errorf("unknown group %q (want legs, head or tail)", group)
	}
	if index < 0 || index >= len(vec) {
		return fmt.Errorf("index %d out of range for %s (%d servos)", index, group, len(vec))
	}

	vec[index] = offset
	if err := cal.Save(calPath); err != nil {
		return err
	}
	fmt.Printf("%s[%d] = %.2f, wrote %s\n", group, index, offset, calPath)
	return nil
}
