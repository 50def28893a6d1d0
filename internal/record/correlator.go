// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package record

import (
	"fmt"
	"io"
)

// Outcome is the result of observing a NAV-DOP.
type Outcome struct {
	// Bundle is set when a matched pair was written to the sink.
	Bundle *Bundle
	// Written counts the bytes written to the sink.
	Written int
}

// Correlator pairs each NAV-DOP with the most recent NAV-PVT by iTOW and
// writes matched pairs to an attached sink. It is not safe for concurrent
// use; the collector owns it from a single goroutine.
type Correlator struct {
	lastPVT []byte
	lastDOP []byte
	pvtText string
	dopText string

	seq  uint32
	sink io.Writer
}

// New returns a correlator with no sink attached and the sequence at 1.
func New() *Correlator {
	return &Correlator{seq: 1}
}

// Attach starts recording to w. The sequence number carries on from any
// previous recording.
func (c *Correlator) Attach(w io.Writer) { c.sink = w }

// Detach stops recording.
func (c *Correlator) Detach() { c.sink = nil }

func (c *Correlator) Attached() bool { return c.sink != nil }

// Seq returns the sequence number the next bundle will carry.
func (c *Correlator) Seq() uint32 { return c.seq }

// ObservePVT stores a NAV-PVT body (class, id, length, payload) and its
// rendered text.
func (c *Correlator) ObservePVT(body []byte, text string) {
	c.lastPVT = append(c.lastPVT[:0], body...)
	c.pvtText = text
}

// ObserveDOP stores a NAV-DOP body and its rendered text. While a sink is
// attached it tries to pair the DOP with the stored PVT. A *MismatchError
// means the pair was skipped; any other error is a sink write failure.
func (c *Correlator) ObserveDOP(body []byte, text string) (Outcome, error) {
	if len(body) < dopSegmentStart {
		return Outcome{}, fmt.Errorf("record: DOP body too short: %d bytes", len(body))
	}
	c.lastDOP = append(c.lastDOP[:0], body...)
	c.dopText = text

	if c.sink == nil {
		return Outcome{}, nil
	}

	dopITOW := itow(c.lastDOP)
	if c.lastPVT == nil {
		return Outcome{}, &MismatchError{DOPITOW: dopITOW}
	}
	if pvtITOW := itow(c.lastPVT); pvtITOW != dopITOW {
		return Outcome{}, &MismatchError{HavePVT: true, PVTITOW: pvtITOW, DOPITOW: dopITOW}
	}

	b, err := buildBundle(c.seq, c.lastPVT, c.lastDOP)
	if err != nil {
		return Outcome{}, err
	}

	n, err := fmt.Fprintf(c.sink, "%s\n%s\nble: %s\n", c.pvtText, c.dopText, b.Hex())
	if err != nil {
		return Outcome{Written: n}, fmt.Errorf("record: write bundle %d: %w", b.Seq, err)
	}
	c.seq++
	return Outcome{Bundle: &b, Written: n}, nil
}
