// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import "encoding/binary"

// pvtPayload builds a NAV-PVT payload with a handful of recognisable
// values; everything else is zero.
func pvtPayload(itow uint32) []byte {
	p := make([]byte, NavPvtLen)
	binary.LittleEndian.PutUint32(p[0:], itow)
	binary.LittleEndian.PutUint16(p[4:], 2024)
	p[6], p[7], p[8], p[9], p[10] = 5, 17, 12, 34, 56
	// valid: date, time, fully resolved
	p[11] = 0x07
	// nano = -100
	binary.LittleEndian.PutUint32(p[16:], 0xFFFFFF9C)
	p[20] = byte(Fix3D)
	p[21] = 0x01
	p[23] = 12
	binary.LittleEndian.PutUint32(p[24:], 1000000)
	// lat = -5000000
	binary.LittleEndian.PutUint32(p[28:], 0xFFFFFFFF-4999999)
	binary.LittleEndian.PutUint32(p[36:], 545400)
	binary.LittleEndian.PutUint32(p[64:], 9000000)
	binary.LittleEndian.PutUint16(p[76:], 156)
	binary.LittleEndian.PutUint16(p[78:], 0x0007)
	// magDec = -250
	binary.LittleEndian.PutUint16(p[88:], 0xFFFF-249)
	binary.LittleEndian.PutUint16(p[90:], 120)
	return p
}
