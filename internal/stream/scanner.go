// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stream

import (
	"encoding/binary"

	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// DefaultMaxSentence bounds how far past a '$' the scanner looks for the
// "*hh\r\n" trailer before it treats the '$' as noise.
const DefaultMaxSentence = 256

// Status is the outcome of one Scan.
type Status int

const (
	// NoFrame means nothing in the searched range can start a frame.
	NoFrame Status = iota
	// Incomplete means a frame starts at Offset but its bytes have not all
	// arrived yet.
	Incomplete
	// Found means a complete frame spans [Offset, Offset+Length).
	Found
)

func (s Status) String() string {
	switch s {
	case NoFrame:
		return "no frame"
	case Incomplete:
		return "incomplete"
	case Found:
		return "found"
	default:
		return "invalid"
	}
}

// Match describes where the next frame is. Bytes before Offset are noise
// in every status. Length is the total frame length: known for Found, and
// for Incomplete once a UBX length field has arrived.
type Match struct {
	Status   Status
	Protocol Protocol
	Offset   int
	Length   int
}

// Scan looks for the next UBX or NMEA frame in buf starting at start.
// maxSentence bounds the NMEA search; zero or less means unbounded.
func Scan(buf []byte, start, maxSentence int) Match {
	for i := start; i < len(buf); i++ {
		switch buf[i] {
		case ubx.Sync1:
			if i+1 == len(buf) {
				// the sync pair may be split across reads
				return Match{Status: Incomplete, Protocol: UBX, Offset: i}
			}
			if buf[i+1] != ubx.Sync2 {
				continue
			}
			if len(buf)-i < ubx.HeaderLen {
				return Match{Status: Incomplete, Protocol: UBX, Offset: i}
			}
			n := ubx.FrameOverhead + int(binary.LittleEndian.Uint16(buf[i+4:]))
			if len(buf)-i < n {
				return Match{Status: Incomplete, Protocol: UBX, Offset: i, Length: n}
			}
			return Match{Status: Found, Protocol: UBX, Offset: i, Length: n}

		case '$':
			n, st := scanSentence(buf[i:], maxSentence)
			if st == NoFrame {
				continue
			}
			return Match{Status: st, Protocol: NMEA, Offset: i, Length: n}
		}
	}
	return Match{Status: NoFrame, Offset: len(buf)}
}

// scanSentence finds the "*hh\r\n" trailer of a sentence starting at b[0].
// A '*' that is not followed by two characters and CR LF does not end the
// sentence. A second '$' or a byte outside printable ASCII before the
// trailer means b[0] was noise, so binary frames after a stray '$' are not
// swallowed.
func scanSentence(b []byte, maxSentence int) (int, Status) {
	limit := len(b)
	if maxSentence > 0 && maxSentence < limit {
		limit = maxSentence
	}
	for j := 1; j < limit; j++ {
		c := b[j]
		if c == '*' {
			if j+4 < limit && b[j+3] == '\r' && b[j+4] == '\n' {
				return j + nmeaTrailerLen, Found
			}
			if j+4 >= len(b) && partialTrailer(b[j+1:]) && (maxSentence <= 0 || j+nmeaTrailerLen <= maxSentence) {
				return 0, Incomplete
			}
			continue
		}
		if !sentenceByte(c) {
			return 0, NoFrame
		}
	}
	if maxSentence > 0 && len(b) >= maxSentence {
		return 0, NoFrame
	}
	return 0, Incomplete
}

func sentenceByte(c byte) bool {
	return c >= 0x20 && c <= 0x7E && c != '$'
}

// partialTrailer reports whether t can still grow into "hh\r\n".
func partialTrailer(t []byte) bool {
	for k, c := range t {
		switch k {
		case 0, 1:
			if !sentenceByte(c) {
				return false
			}
		case 2:
			if c != '\r' {
				return false
			}
		default:
			return false
		}
	}
	return true
}
