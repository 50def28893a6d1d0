// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultScriptDelay = 250 * time.Millisecond

// Script is a list of console commands run once the receiver port is open,
// for example:
//
//	commands:
//	  - output ubx
//	  - enable pvtdop
//	delay: 500ms
type Script struct {
	Commands []string      `yaml:"commands"`
	Delay    time.Duration `yaml:"delay"`
}

// LoadScript reads a startup script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read startup script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid startup script: %w", err)
	}
	if s.Delay < 0 {
		return nil, fmt.Errorf("invalid startup script: negative delay %v", s.Delay)
	}
	if s.Delay == 0 {
		s.Delay = defaultScriptDelay
	}
	return &s, nil
}

// run feeds the script commands to lines, waiting Delay before each one.
func (s *Script) run(ctx context.Context, lines chan<- string) {
	for _, cmd := range s.Commands {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.Delay):
		}
		select {
		case <-ctx.Done():
			return
		case lines <- cmd:
		}
	}
}
