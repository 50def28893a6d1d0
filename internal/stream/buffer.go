// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stream

// Buffer holds bytes received from the receiver that have not yet been
// cut into frames. Bytes are appended at the tail and only ever removed as
// a contiguous prefix, so a byte is never scanned twice as new input.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	buf         []byte
	maxSentence int
	garbage     uint64
}

// NewBuffer returns an empty buffer. maxSentence bounds the NMEA trailer
// search (see Scan); use DefaultMaxSentence unless configured otherwise.
func NewBuffer(maxSentence int) *Buffer {
	return &Buffer{maxSentence: maxSentence}
}

// Append adds a chunk read from the transport. Chunks may split frames
// anywhere.
func (b *Buffer) Append(chunk []byte) {
	b.buf = append(b.buf, chunk...)
}

// Len returns the number of pending bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// Garbage returns the total number of bytes discarded as noise.
func (b *Buffer) Garbage() uint64 { return b.garbage }

// Next extracts the next complete frame. It returns false when more input
// is needed. Noise in front of a frame is dropped together with the frame.
// Noise is also dropped when no frame is found, except for a trailing byte
// that may still start one.
func (b *Buffer) Next() (Frame, bool) {
	m := Scan(b.buf, 0, b.maxSentence)
	b.garbage += uint64(m.Offset)
	if m.Status != Found {
		b.consume(m.Offset)
		return Frame{}, false
	}
	f := Frame{
		Protocol: m.Protocol,
		Raw:      append([]byte(nil), b.buf[m.Offset:m.Offset+m.Length]...),
	}
	b.consume(m.Offset + m.Length)
	return f, true
}

// Frames extracts every complete frame currently in the buffer, in stream
// order.
func (b *Buffer) Frames() []Frame {
	var frames []Frame
	for {
		f, ok := b.Next()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}

func (b *Buffer) consume(n int) {
	if n == 0 {
		return
	}
	b.buf = append(b.buf[:0], b.buf[n:]...)
}
