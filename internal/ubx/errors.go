// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"errors"
	"fmt"
)

// LengthError is returned when a checksum-valid message is too short for
// the fields its class and id require.
type LengthError struct {
	Name string
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: payload has %d bytes, need %d", e.Name, e.Got, e.Want)
}

// IsLengthError returns true if err is or wraps a LengthError.
func IsLengthError(err error) bool {
	var le *LengthError
	return errors.As(err, &le)
}
