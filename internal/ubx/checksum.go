// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

// Checksum returns the two-byte Fletcher checksum used by UBX frames.
// For a frame it covers class, id, length and payload (everything between
// the sync bytes and the checksum itself).
func Checksum(data []byte) (a, b byte) {
	for _, v := range data {
		a += v
		b += a
	}
	return a, b
}

// VerifyFrame reports whether raw is a complete UBX frame (sync bytes
// included) whose trailing checksum matches its contents.
func VerifyFrame(raw []byte) bool {
	if len(raw) < FrameOverhead || raw[0] != Sync1 || raw[1] != Sync2 {
		return false
	}
	a, b := Checksum(raw[2 : len(raw)-2])
	return raw[len(raw)-2] == a && raw[len(raw)-1] == b
}
