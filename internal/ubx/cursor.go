// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads little-endian typed fields sequentially from a fixed region.
// Reading past the end panics: decoders check payload lengths before they
// build a cursor, so an overrun is a bug and not bad input.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) take(n int) []byte {
	if c.pos+n > len(c.buf) {
		panic(fmt.Sprintf("ubx: cursor read of %d bytes at offset %d overruns %d-byte region", n, c.pos, len(c.buf)))
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *Cursor) U1() uint8  { return c.take(1)[0] }
func (c *Cursor) U2() uint16 { return binary.LittleEndian.Uint16(c.take(2)) }
func (c *Cursor) U4() uint32 { return binary.LittleEndian.Uint32(c.take(4)) }

// I2 and I4 use two's complement, so values at or above 2^(8n-1) wrap
// negative.
func (c *Cursor) I2() int16 { return int16(c.U2()) }
func (c *Cursor) I4() int32 { return int32(c.U4()) }

// X1, X2 and X4 are bit fields. They are returned unsigned so callers can
// mask flags out of them.
func (c *Cursor) X1() uint8  { return c.U1() }
func (c *Cursor) X2() uint16 { return c.U2() }
func (c *Cursor) X4() uint32 { return c.U4() }
