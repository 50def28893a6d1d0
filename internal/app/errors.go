// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
)

// WriteError reports a command that could not be written to the receiver.
// Commands are not retried.
type WriteError struct {
	Command string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s not sent: %v", e.Command, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsWriteError returns true if err is or wraps a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

var errQueueFull = errors.New("command queue full")
