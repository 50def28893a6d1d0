// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package decoder

import (
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/gnss_collector/internal/record"
	"github.com/relabs-tech/gnss_collector/internal/stream"
	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// Session turns raw receiver bytes into events. It owns the pending byte
// buffer and drives the correlator. A Session is not safe for concurrent
// use.
type Session struct {
	buf  *stream.Buffer
	corr *record.Correlator
}

// NewSession returns a session that feeds corr. maxSentence bounds the
// NMEA search (see stream.Scan).
func NewSession(corr *record.Correlator, maxSentence int) *Session {
	if corr == nil {
		corr = record.New()
	}
	return &Session{
		buf:  stream.NewBuffer(maxSentence),
		corr: corr,
	}
}

// Correlator returns the correlator the session feeds.
func (s *Session) Correlator() *record.Correlator { return s.corr }

// Garbage returns the number of noise bytes skipped so far.
func (s *Session) Garbage() uint64 { return s.buf.Garbage() }

// Pending returns the number of buffered bytes not yet framed.
func (s *Session) Pending() int { return s.buf.Len() }

// Feed appends a chunk and returns events for every frame it completes,
// in stream order. Chunks may split frames at any byte.
func (s *Session) Feed(chunk []byte) []Event {
	s.buf.Append(chunk)

	var events []Event
	for {
		f, ok := s.buf.Next()
		if !ok {
			return events
		}
		switch f.Protocol {
		case stream.NMEA:
			events = append(events, s.sentence(f))
		case stream.UBX:
			events = append(events, s.message(f)...)
		}
	}
}

func (s *Session) sentence(f stream.Frame) Event {
	if err := f.Verify(); err != nil {
		return Event{Kind: BadSentence, Raw: f.Raw, Err: err}
	}
	ev := Event{Kind: Sentence, Raw: f.Raw, Sentence: string(f.Body())}
	ev.Talker, ev.Type = identify(ev.Sentence)
	return ev
}

// identify returns the talker and sentence type from the address field.
// Fields are not interpreted, so types without a go-nmea parser are
// identified too. Proprietary sentences have talker "P".
func identify(sentence string) (talker, typ string) {
	head, _, _ := strings.Cut(sentence, ",")
	talker, typ, err := nmea.ParsePrefix(head)
	if err != nil {
		return "", ""
	}
	return
}

func (s *Session) message(f stream.Frame) []Event {
	if err := f.Verify(); err != nil {
		return []Event{{Kind: BadMessage, Raw: f.Raw, Err: err}}
	}

	p, err := ubx.ParsePacket(f.Body())
	if err != nil {
		return []Event{{Kind: MessageError, Raw: f.Raw, Err: err}}
	}
	m, err := ubx.Decode(p)
	if err != nil {
		return []Event{{Kind: MessageError, Raw: f.Raw, Err: err}}
	}

	text := ubx.Render(m, len(p.Payload))
	events := []Event{{Kind: Message, Raw: f.Raw, Message: m, Text: text}}

	switch m.(type) {
	case ubx.NavPvt:
		s.corr.ObservePVT(p.Body(), text)
	case ubx.NavDop:
		out, err := s.corr.ObserveDOP(p.Body(), text)
		switch {
		case record.IsMismatchError(err):
			events = append(events, Event{Kind: CorrelationMismatch, Err: err})
		case err != nil:
			events = append(events, Event{Kind: RecordError, Err: err, Written: out.Written})
		case out.Bundle != nil:
			events = append(events, Event{Kind: Bundle, Bundle: out.Bundle, Written: out.Written})
		}
	}
	return events
}
