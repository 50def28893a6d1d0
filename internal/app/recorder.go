// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"os"
)

// recording is the file sink attached to the correlator by "record on".
type recording struct {
	path string
	f    *os.File
	n    uint64
}

// openRecording starts a fresh recording file, replacing any earlier one.
func openRecording(path string) (*recording, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	return &recording{path: path, f: f}, nil
}

func (r *recording) Write(p []byte) (int, error) {
	n, err := r.f.Write(p)
	r.n += uint64(n)
	return n, err
}

// Bytes returns the number of bytes written so far.
func (r *recording) Bytes() uint64 { return r.n }

func (r *recording) Close() error {
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("close recording: %w", err)
	}
	return nil
}
