// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stream

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// Protocol identifies which wire protocol a frame belongs to.
type Protocol int

const (
	UBX Protocol = iota + 1
	NMEA
)

func (p Protocol) String() string {
	switch p {
	case UBX:
		return "UBX"
	case NMEA:
		return "NMEA"
	default:
		return "unknown"
	}
}

// Frame is one complete message cut from the stream. Raw always includes
// the protocol header and trailer.
type Frame struct {
	Protocol Protocol
	Raw      []byte
}

// Body returns the frame contents without header and trailer: class, id,
// length and payload for UBX, the text between '$' and '*' for NMEA.
func (f Frame) Body() []byte {
	switch f.Protocol {
	case UBX:
		return f.Raw[2 : len(f.Raw)-2]
	case NMEA:
		return f.Raw[1 : len(f.Raw)-nmeaTrailerLen]
	default:
		return nil
	}
}

// Verify checks the frame checksum. It returns a *ChecksumError on
// mismatch.
func (f Frame) Verify() error {
	switch f.Protocol {
	case UBX:
		a, b := ubx.Checksum(f.Body())
		got := f.Raw[len(f.Raw)-2:]
		if got[0] != a || got[1] != b {
			return &ChecksumError{Protocol: UBX, Computed: []byte{a, b}, Received: append([]byte(nil), got...)}
		}
		return nil
	case NMEA:
		return VerifySentence(f.Raw)
	default:
		return fmt.Errorf("stream: frame has no protocol")
	}
}

// ChecksumError reports a frame whose trailer does not match its contents.
// For UBX both fields hold the two checksum bytes; for NMEA they hold the
// two hex digits as text.
type ChecksumError struct {
	Protocol Protocol
	Computed []byte
	Received []byte
}

func (e *ChecksumError) Error() string {
	if e.Protocol == NMEA {
		return fmt.Sprintf("NMEA checksum mismatch: computed %q, received %q", e.Computed, e.Received)
	}
	return fmt.Sprintf("%s checksum mismatch: computed % x, received % x", e.Protocol, e.Computed, e.Received)
}

// IsChecksumError returns true if err is or wraps a ChecksumError.
func IsChecksumError(err error) bool {
	var ce *ChecksumError
	return errors.As(err, &ce)
}
