// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package record

import (
	"errors"
	"fmt"
)

// MismatchError reports a NAV-DOP that could not be paired with the latest
// NAV-PVT. No bundle is produced and the sequence number is unchanged.
type MismatchError struct {
	HavePVT bool
	PVTITOW uint32
	DOPITOW uint32
}

func (e *MismatchError) Error() string {
	if !e.HavePVT {
		return fmt.Sprintf("itow mismatch, skipped: no PVT before DOP %d", e.DOPITOW)
	}
	return fmt.Sprintf("itow mismatch, skipped: PVT %d, DOP %d", e.PVTITOW, e.DOPITOW)
}

// IsMismatchError returns true if err is or wraps a MismatchError.
func IsMismatchError(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}
