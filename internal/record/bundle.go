// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package record

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Offsets into a message body (class, id, length, payload).
const (
	pvtSegmentStart = 4
	pvtSegmentEnd   = 82
	pvtFlags3       = 82
	dopSegmentStart = 8
)

// Bundle is one recorded PVT/DOP pair. Bytes is laid out as
// seq(LE32) | pvt segment (78) | dop segment | seq(LE32) and is never
// modified after construction.
type Bundle struct {
	Seq   uint32
	ITOW  uint32
	Bytes []byte
}

// Hex returns the bundle bytes as lowercase hex.
func (b Bundle) Hex() string {
	return hex.EncodeToString(b.Bytes)
}

func buildBundle(seq uint32, pvtBody, dopBody []byte) (Bundle, error) {
	if len(pvtBody) < pvtFlags3+2 {
		return Bundle{}, fmt.Errorf("record: PVT body too short: %d bytes", len(pvtBody))
	}
	if len(dopBody) < dopSegmentStart {
		return Bundle{}, fmt.Errorf("record: DOP body too short: %d bytes", len(dopBody))
	}

	pvtSeg := pvtBody[pvtSegmentStart:pvtSegmentEnd]
	dopSeg := dopBody[dopSegmentStart:]

	out := make([]byte, 0, 4+len(pvtSeg)+len(dopSeg)+4)
	out = binary.LittleEndian.AppendUint32(out, seq)
	out = append(out, pvtSeg...)
	// flags3 takes the place of the two bytes in front of it
	copy(out[4+len(pvtSeg)-2:], pvtBody[pvtFlags3:pvtFlags3+2])
	out = append(out, dopSeg...)
	out = binary.LittleEndian.AppendUint32(out, seq)

	return Bundle{
		Seq:   seq,
		ITOW:  itow(pvtBody),
		Bytes: out,
	}, nil
}

func itow(body []byte) uint32 {
	return binary.LittleEndian.Uint32(body[4:8])
}

// Envelope is the bundle as published to subscribers.
type Envelope struct {
	Seq    uint32 `cbor:"seq"`
	ITOW   uint32 `cbor:"itow"`
	Bundle []byte `cbor:"bundle"`
}

// MarshalEnvelope encodes b as a CBOR envelope.
func MarshalEnvelope(b Bundle) ([]byte, error) {
	data, err := cbor.Marshal(Envelope{Seq: b.Seq, ITOW: b.ITOW, Bundle: b.Bytes})
	if err != nil {
		return nil, fmt.Errorf("record: marshal envelope: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes a CBOR envelope.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("record: unmarshal envelope: %w", err)
	}
	return e, nil
}
