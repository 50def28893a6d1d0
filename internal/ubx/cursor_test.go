// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import "testing"

func TestCursorReads(t *testing.T) {
	c := NewCursor([]byte{
		0x7F,       // U1
		0x34, 0x12, // U2
		0x78, 0x56, 0x34, 0x12, // U4
		0xFF, 0xFF, // I2 = -1
		0x00, 0x80, // I2 = -32768
		0xFF, 0x7F, // I2 = 32767
		0x00, 0x00, 0x00, 0x80, // I4 = -2^31
		0x9C, 0xFF, 0xFF, 0xFF, // I4 = -100
		0xA5, // X1
	})

	if got := c.U1(); got != 0x7F {
		t.Errorf("U1() = %#x", got)
	}
	if got := c.U2(); got != 0x1234 {
		t.Errorf("U2() = %#x", got)
	}
	if got := c.U4(); got != 0x12345678 {
		t.Errorf("U4() = %#x", got)
	}
	if got := c.I2(); got != -1 {
		t.Errorf("I2() = %d, want -1", got)
	}
	if got := c.I2(); got != -32768 {
		t.Errorf("I2() = %d, want -32768", got)
	}
	if got := c.I2(); got != 32767 {
		t.Errorf("I2() = %d, want 32767", got)
	}
	if got := c.I4(); got != -2147483648 {
		t.Errorf("I4() = %d, want -2147483648", got)
	}
	if got := c.I4(); got != -100 {
		t.Errorf("I4() = %d, want -100", got)
	}
	if got := c.X1(); got != 0xA5 {
		t.Errorf("X1() = %#x", got)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
	if c.Pos() != 22 {
		t.Errorf("Pos() = %d, want 22", c.Pos())
	}
}

func TestCursorOverrunPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overrun")
		}
	}()
	c := NewCursor([]byte{0x01, 0x02, 0x03})
	c.U2()
	c.U2()
}
