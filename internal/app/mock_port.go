// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/relabs-tech/gnss_collector/internal/stream"
	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

const mockMaxChunk = 40

var errPortClosed = errors.New("port closed")

// mockPort simulates a receiver on a UART. Once per epoch it emits a
// NAV-PVT, a NAV-DOP with the same iTOW and a GGA sentence, handed out in
// random-sized chunks. Like a receiver out of the box it starts with both
// UBX and NMEA output enabled. Commands written to it are acknowledged, and a
// CFG-PRT poll is answered with the current port configuration.
type mockPort struct {
	tick *time.Ticker
	rng  *rand.Rand

	mu      sync.Mutex
	pending []byte
	cmds    *stream.Buffer
	prt     ubx.PortConfig
	gga     bool
	epoch   uint32

	closed    chan struct{}
	closeOnce sync.Once
}

func newMockPort(interval time.Duration, seed int64) *mockPort {
	prt := ubx.OutputUBX
	prt.OutProtoMask = ubx.ProtoUBX | ubx.ProtoNMEA
	return &mockPort{
		tick:   time.NewTicker(interval),
		rng:    rand.New(rand.NewPCG(uint64(seed), 0x9E3779B97F4A7C15)),
		cmds:   stream.NewBuffer(stream.DefaultMaxSentence),
		prt:    prt,
		gga:    true,
		closed: make(chan struct{}),
	}
}

func (m *mockPort) Read(p []byte) (int, error) {
	for {
		m.mu.Lock()
		if len(m.pending) > 0 {
			n := min(len(p), len(m.pending), 1+m.rng.IntN(mockMaxChunk))
			copy(p, m.pending[:n])
			m.pending = m.pending[n:]
			m.mu.Unlock()
			return n, nil
		}
		m.mu.Unlock()

		select {
		case <-m.closed:
			return 0, errPortClosed
		case <-m.tick.C:
			m.mu.Lock()
			m.pending = append(m.pending, m.nextEpoch()...)
			m.mu.Unlock()
		}
	}
}

func (m *mockPort) Write(p []byte) (int, error) {
	select {
	case <-m.closed:
		return 0, errPortClosed
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds.Append(p)
	for _, f := range m.cmds.Frames() {
		if f.Protocol != stream.UBX || f.Verify() != nil {
			continue
		}
		pkt, err := ubx.ParsePacket(f.Body())
		if err != nil || pkt.Class != ubx.ClassCFG {
			continue
		}
		switch {
		case pkt.Is(ubx.ClassCFG, ubx.IDCfgPRT) && len(pkt.Payload) == 1:
			m.pending = append(m.pending, ubx.SetPortConfig(m.prt)...)
		case pkt.Is(ubx.ClassCFG, ubx.IDCfgPRT) && len(pkt.Payload) == ubx.CfgPrtLen:
			m.prt.OutProtoMask = binary.LittleEndian.Uint16(pkt.Payload[14:])
		case pkt.Is(ubx.ClassCFG, ubx.IDCfgMSG) && len(pkt.Payload) == 8 && pkt.Payload[0] == ubx.ClassNMEA && pkt.Payload[1] == 0x00:
			m.gga = pkt.Payload[3] != 0
		}
		m.pending = append(m.pending, ubx.Encode(ubx.ClassACK, ubx.IDAckAck, []byte{pkt.Class, pkt.ID})...)
	}
	return len(p), nil
}

func (m *mockPort) Close() error {
	m.closeOnce.Do(func() {
		m.tick.Stop()
		close(m.closed)
	})
	return nil
}

// nextEpoch builds the output of one navigation epoch. Caller holds mu.
func (m *mockPort) nextEpoch() []byte {
	m.epoch++
	elapsed := float64(m.epoch)
	itow := 345600000 + m.epoch*1000

	// drift smoothly around a fixed point
	lat := 47.3769 + 0.0005*math.Sin(elapsed/30)
	lon := 8.5417 + 0.0005*math.Cos(elapsed/30)
	numSV := uint8(9 + m.epoch%4)

	var out []byte
	if m.rng.IntN(10) == 0 {
		// line noise between epochs
		noise := make([]byte, 1+m.rng.IntN(8))
		for i := range noise {
			// no UBX sync byte: a noise B5 62 would announce a bogus length
			if b := byte(m.rng.UintN(256)); b != ubx.Sync1 {
				noise[i] = b
			}
		}
		out = append(out, noise...)
	}
	if m.prt.OutProtoMask&ubx.ProtoUBX != 0 {
		out = append(out, ubx.Encode(ubx.ClassNAV, ubx.IDNavPVT, mockPVT(itow, lat, lon, numSV))...)
		out = append(out, ubx.Encode(ubx.ClassNAV, ubx.IDNavDOP, mockDOP(itow))...)
	}
	if m.prt.OutProtoMask&ubx.ProtoNMEA != 0 && m.gga {
		out = append(out, mockGGA(itow, lat, lon, numSV)...)
	}
	return out
}

func mockPVT(itow uint32, lat, lon float64, numSV uint8) []byte {
	t := gpsTime(itow)
	p := make([]byte, ubx.NavPvtLen)
	binary.LittleEndian.PutUint32(p[0:], itow)
	binary.LittleEndian.PutUint16(p[4:], uint16(t.Year()))
	p[6], p[7] = byte(t.Month()), byte(t.Day())
	p[8], p[9], p[10] = byte(t.Hour()), byte(t.Minute()), byte(t.Second())
	p[11] = 0x07
	binary.LittleEndian.PutUint32(p[12:], 30)
	p[20] = byte(ubx.Fix3D)
	p[21] = 0x01
	p[22] = 0xE0
	p[23] = numSV
	binary.LittleEndian.PutUint32(p[24:], uint32(int32(math.Round(lon*1e7))))
	binary.LittleEndian.PutUint32(p[28:], uint32(int32(math.Round(lat*1e7))))
	binary.LittleEndian.PutUint32(p[32:], 592300)
	binary.LittleEndian.PutUint32(p[36:], 545400)
	binary.LittleEndian.PutUint32(p[40:], 1800)
	binary.LittleEndian.PutUint32(p[44:], 2600)
	binary.LittleEndian.PutUint16(p[76:], 156)
	return p
}

func mockDOP(itow uint32) []byte {
	p := make([]byte, ubx.NavDopLen)
	binary.LittleEndian.PutUint32(p[0:], itow)
	for i, v := range []uint16{182, 156, 94, 131, 87, 71, 51} {
		binary.LittleEndian.PutUint16(p[4+2*i:], v)
	}
	return p
}

func mockGGA(itow uint32, lat, lon float64, numSV uint8) []byte {
	t := gpsTime(itow)
	payload := fmt.Sprintf("GPGGA,%02d%02d%02d.00,%s,N,%s,E,1,%02d,0.87,545.4,M,47.0,M,,",
		t.Hour(), t.Minute(), t.Second(), nmeaDegrees(lat, 2), nmeaDegrees(lon, 3), numSV)
	return []byte(fmt.Sprintf("$%s*%02X\r\n", payload, stream.SentenceChecksum([]byte(payload))))
}

// nmeaDegrees formats decimal degrees as NMEA ddmm.mmmmm.
func nmeaDegrees(v float64, width int) string {
	deg := math.Floor(v)
	return fmt.Sprintf("%0*d%08.5f", width, int(deg), (v-deg)*60)
}

// gpsTime turns an iTOW into a calendar time in a fixed simulated week.
func gpsTime(itow uint32) time.Time {
	week := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	return week.Add(time.Duration(itow) * time.Millisecond)
}
