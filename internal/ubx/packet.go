// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"encoding/binary"
	"fmt"
)

const (
	Sync1 = 0xB5
	Sync2 = 0x62

	// HeaderLen is sync(2) + class(1) + id(1) + length(2).
	HeaderLen = 6
	// FrameOverhead is the header plus the two checksum bytes.
	FrameOverhead = HeaderLen + 2
)

// Message classes and ids interpreted by this package.
const (
	ClassNAV  = 0x01
	ClassACK  = 0x05
	ClassCFG  = 0x06
	ClassNMEA = 0xF0

	IDNavDOP = 0x04
	IDNavPVT = 0x07

	IDAckNak = 0x00
	IDAckAck = 0x01

	IDCfgPRT = 0x00
	IDCfgMSG = 0x01
	IDCfgPMS = 0x86
)

// Packet is a UBX frame body: class, id and the payload whose length the
// frame announced.
type Packet struct {
	Class   byte
	ID      byte
	Payload []byte
}

// ParsePacket splits a frame body (class, id, length, payload) into a
// Packet. The announced length must match the payload exactly.
func ParsePacket(body []byte) (Packet, error) {
	if len(body) < 4 {
		return Packet{}, fmt.Errorf("ubx: body of %d bytes is shorter than its header", len(body))
	}
	n := int(binary.LittleEndian.Uint16(body[2:4]))
	if len(body)-4 != n {
		return Packet{}, fmt.Errorf("ubx: body announces %d payload bytes, has %d", n, len(body)-4)
	}
	return Packet{Class: body[0], ID: body[1], Payload: body[4:]}, nil
}

// Body returns class, id, length and payload as they appear on the wire.
func (p Packet) Body() []byte {
	b := make([]byte, 0, 4+len(p.Payload))
	b = append(b, p.Class, p.ID)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(p.Payload)))
	return append(b, p.Payload...)
}

// Is reports whether the packet has the given class and id.
func (p Packet) Is(class, id byte) bool {
	return p.Class == class && p.ID == id
}
