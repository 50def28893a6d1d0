// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"log"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/gnss_collector/internal/config"
)

// openPort opens the receiver transport named by GPS_SERIAL_PORT.
func openPort(cfg *config.Config) (io.ReadWriteCloser, error) {
	if cfg.GPSSerialPort == config.MockPort {
		log.Println("collector: using simulated receiver")
		return newMockPort(time.Second, time.Now().UnixNano()), nil
	}

	serialOpts := serial.OpenOptions{
		PortName:              cfg.GPSSerialPort,
		BaudRate:              uint(cfg.GPSBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.GPSSerialPort, err)
	}
	log.Printf("collector: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)
	return port, nil
}
