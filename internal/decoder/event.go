// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package decoder

import (
	"fmt"

	"github.com/relabs-tech/gnss_collector/internal/record"
	"github.com/relabs-tech/gnss_collector/internal/stream"
	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// Kind tells what an Event carries.
type Kind int

const (
	// Sentence is a checksum-valid NMEA sentence.
	Sentence Kind = iota + 1
	// BadSentence is an NMEA frame whose checksum did not match.
	BadSentence
	// Message is a decoded UBX message.
	Message
	// BadMessage is a UBX frame whose checksum did not match.
	BadMessage
	// MessageError is a checksum-valid UBX frame that could not be decoded.
	MessageError
	// Bundle is a PVT/DOP pair written to the recording.
	Bundle
	// CorrelationMismatch is a DOP that could not be paired while recording.
	CorrelationMismatch
	// RecordError is a failed write to the recording.
	RecordError
)

func (k Kind) String() string {
	switch k {
	case Sentence:
		return "sentence"
	case BadSentence:
		return "bad sentence"
	case Message:
		return "message"
	case BadMessage:
		return "bad message"
	case MessageError:
		return "message error"
	case Bundle:
		return "bundle"
	case CorrelationMismatch:
		return "correlation mismatch"
	case RecordError:
		return "record error"
	default:
		return "unknown"
	}
}

// Event is one outcome of feeding bytes to a Session. Which fields are set
// depends on Kind.
type Event struct {
	Kind Kind
	// Raw is the complete frame for frame-level events.
	Raw []byte

	// Sentence is the text between '$' and '*'; Talker and Type identify it.
	Sentence string
	Talker   string
	Type     string

	Message ubx.Message
	// Text is the rendered message.
	Text string

	Bundle  *record.Bundle
	Written int

	Err error
}

// Lines renders the event as diagnostic log lines.
func (e Event) Lines() []string {
	switch e.Kind {
	case Sentence:
		return []string{e.Sentence}
	case BadSentence:
		return []string{fmt.Sprintf("%v: %q", e.Err, e.Raw)}
	case Message:
		return []string{e.Text}
	case BadMessage:
		lines := []string{fmt.Sprintf("%v, frame:", e.Err)}
		return append(lines, ubx.HexRows(e.Raw)...)
	case MessageError:
		return []string{fmt.Sprintf("decode error: %v", e.Err)}
	case Bundle:
		return []string{fmt.Sprintf("bundle %d recorded, itow: %d, len: %d, ble: %s",
			e.Bundle.Seq, e.Bundle.ITOW, len(e.Bundle.Bytes), e.Bundle.Hex())}
	case CorrelationMismatch:
		return []string{e.Err.Error()}
	case RecordError:
		return []string{fmt.Sprintf("record error: %v", e.Err)}
	default:
		return nil
	}
}

// Protocol returns the wire protocol of a frame-level event.
func (e Event) Protocol() stream.Protocol {
	switch e.Kind {
	case Sentence, BadSentence:
		return stream.NMEA
	case Message, BadMessage, MessageError:
		return stream.UBX
	default:
		return 0
	}
}
