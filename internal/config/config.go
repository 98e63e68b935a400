// Package config provides configuration helpers for go-pup commands.
// Values come from environment variables with sane defaults, so the
// daemon can run unconfigured on the robot and be overridden in dev.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the servo bus and the HTTP API.
const (
	DefaultSerialPort      = "/dev/ttyUSB0"
	DefaultBaudRate        = 1_000_000
	DefaultHTTPPort        = "8090"
	DefaultCalibrationFile = "/etc/pup/calibration.json"
)

// SerialPort returns the servo bus port from PUP_SERIAL_PORT.
func SerialPort() string {
	if p := os.Getenv("PUP_SERIAL_PORT"); p != "" {
		return p
	}
	return DefaultSerialPort
}

// BaudRate returns the servo bus baud rate from PUP_BAUD_RATE.
func BaudRate() int {
	if b := os.Getenv("PUP_BAUD_RATE"); b != "" {
		n, err := strconv.Atoi(b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid PUP_BAUD_RATE %q\n", b)
			os.Exit(1)
		}
		return n
	}
	return DefaultBaudRate
}

// HTTPPort returns the API listen port from PUP_HTTP_PORT.
func HTTPPort() string {
	if p := os.Getenv("PUP_HTTP_PORT"); p != "" {
		return p
	}
	return DefaultHTTPPort
}

// CalibrationFile returns the calibration JSON path from PUP_CALIBRATION.
func CalibrationFile() string {
	if p := os.Getenv("PUP_CALIBRATION"); p != "" {
		return p
	}
	return DefaultCalibrationFile
}

// LogLevel returns the log level from PUP_LOG_LEVEL ("info" if unset).
func LogLevel() string {
	if l := os.Getenv("PUP_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
