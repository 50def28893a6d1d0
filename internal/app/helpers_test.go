// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"encoding/binary"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/relabs-tech/gnss_collector/internal/config"
	"github.com/relabs-tech/gnss_collector/internal/gps"
	"github.com/relabs-tech/gnss_collector/internal/metrics"
	"github.com/relabs-tech/gnss_collector/internal/record"
	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// fakePort hands out queued chunks and records writes.
type fakePort struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	mu  sync.Mutex
	out bytes.Buffer
}

func newFakePort() *fakePort {
	return &fakePort{in: make(chan []byte, 16), closed: make(chan struct{})}
}

func (p *fakePort) Read(b []byte) (int, error) {
	select {
	case chunk := <-p.in:
		return copy(b, chunk), nil
	case <-p.closed:
		return 0, errPortClosed
	}
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

func (p *fakePort) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *fakePort) written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.out.Bytes()...)
}

// fakePublisher keeps everything it is given.
type fakePublisher struct {
	mu      sync.Mutex
	logs    []string
	fixes   []gps.Fix
	dops    []gps.DOP
	bundles []record.Bundle
}

func (p *fakePublisher) Log(line string) {
	p.mu.Lock()
	p.logs = append(p.logs, line)
	p.mu.Unlock()
}

func (p *fakePublisher) Fix(f gps.Fix) {
	p.mu.Lock()
	p.fixes = append(p.fixes, f)
	p.mu.Unlock()
}

func (p *fakePublisher) DOP(d gps.DOP) {
	p.mu.Lock()
	p.dops = append(p.dops, d)
	p.mu.Unlock()
}

func (p *fakePublisher) Bundle(b record.Bundle) {
	p.mu.Lock()
	p.bundles = append(p.bundles, b)
	p.mu.Unlock()
}

func (p *fakePublisher) hasLog(substr string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (p *fakePublisher) fixCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fixes)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.MQTTBroker = "tcp://localhost:1883"
	cfg.GPSSerialPort = "/dev/null"
	cfg.GPSBaudRate = 9600
	cfg.CommandInterval = 1
	cfg.RecordPath = t.TempDir() + "/log.txt"
	return cfg
}

func newTestCollector(t *testing.T) (*Collector, *fakePort, *fakePublisher) {
	t.Helper()
	port := newFakePort()
	pub := &fakePublisher{}
	c := NewCollector(testConfig(t), port, pub, metrics.New())
	return c, port, pub
}

// eventually polls cond until it holds or a second has passed.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 1s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func navFrame(id byte, n int, itow uint32) []byte {
	p := make([]byte, n)
	binary.LittleEndian.PutUint32(p, itow)
	if id == ubx.IDNavPVT {
		p[20] = byte(ubx.Fix3D)
		p[23] = 7
	}
	return ubx.Encode(ubx.ClassNAV, id, p)
}

func pvtFrame(itow uint32) []byte { return navFrame(ubx.IDNavPVT, ubx.NavPvtLen, itow) }
func dopFrame(itow uint32) []byte { return navFrame(ubx.IDNavDOP, ubx.NavDopLen, itow) }
