// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stream

import (
	"fmt"
	"strconv"
)

// nmeaTrailerLen is "*hh\r\n".
const nmeaTrailerLen = 5

// SentenceChecksum is the XOR of every payload byte (the text between '$'
// and '*').
func SentenceChecksum(payload []byte) byte {
	var cs byte
	for _, v := range payload {
		cs ^= v
	}
	return cs
}

// VerifySentence checks the "*hh" trailer of a complete NMEA frame. It
// returns a *ChecksumError when the digits do not parse or do not match.
func VerifySentence(raw []byte) error {
	if len(raw) < 1+nmeaTrailerLen || raw[0] != '$' || raw[len(raw)-nmeaTrailerLen] != '*' {
		return fmt.Errorf("stream: malformed NMEA frame %q", raw)
	}
	payload := raw[1 : len(raw)-nmeaTrailerLen]
	digits := raw[len(raw)-4 : len(raw)-2]

	cs := SentenceChecksum(payload)
	got, err := strconv.ParseUint(string(digits), 16, 8)
	if err != nil || byte(got) != cs {
		return &ChecksumError{
			Protocol: NMEA,
			Computed: []byte(fmt.Sprintf("%02X", cs)),
			Received: append([]byte(nil), digits...),
		}
	}
	return nil
}
