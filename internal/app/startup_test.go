// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCmds  int
		wantDelay time.Duration
		wantErr   bool
	}{
		{"commands and delay", "commands:\n  - output ubx\n  - enable pvtdop\ndelay: 500ms\n", 2, 500 * time.Millisecond, false},
		{"default delay", "commands: [record on]\n", 1, defaultScriptDelay, false},
		{"empty", "", 0, defaultScriptDelay, false},
		{"negative delay", "commands: [port]\ndelay: -1s\n", 0, 0, true},
		{"bad yaml", "commands: [port\n", 0, 0, true},
		{"bad delay", "delay: soon\n", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScript([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseScript() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(s.Commands) != tt.wantCmds || s.Delay != tt.wantDelay {
				t.Errorf("script = %+v", s)
			}
		})
	}
}

func TestLoadScriptRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "startup.yaml")
	if err := os.WriteFile(path, []byte("commands:\n  - output ubx\n  - enable pvtdop\ndelay: 1ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}

	lines := make(chan string, 2)
	s.run(context.Background(), lines)
	if got := <-lines; got != "output ubx" {
		t.Errorf("first command = %q", got)
	}
	if got := <-lines; got != "enable pvtdop" {
		t.Errorf("second command = %q", got)
	}
}

func TestScriptRunCancelled(t *testing.T) {
	s := &Script{Commands: []string{"port"}, Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := make(chan string, 1)
	s.run(ctx, lines)
	if len(lines) != 0 {
		t.Errorf("cancelled script sent %d commands", len(lines))
	}
}
