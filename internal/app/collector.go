// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/tevino/abool/v2"

	"github.com/relabs-tech/gnss_collector/internal/config"
	"github.com/relabs-tech/gnss_collector/internal/decoder"
	"github.com/relabs-tech/gnss_collector/internal/gps"
	"github.com/relabs-tech/gnss_collector/internal/metrics"
	"github.com/relabs-tech/gnss_collector/internal/record"
	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

const readBufferSize = 1024

// Collector reads the receiver stream, decodes it, records matched PVT/DOP
// pairs and executes console commands. Everything that touches the decoder
// session or the recording runs on the goroutine that calls Run.
type Collector struct {
	cfg     *config.Config
	port    io.ReadWriteCloser
	session *decoder.Session
	metrics *metrics.Metrics
	pub     Publisher
	writer  *commandWriter
	rec     *recording

	stopping *abool.AtomicBool
	done     chan struct{}
	chunks   chan []byte
	readErr  chan error
	lines    chan string
}

// NewCollector wires a collector around an open receiver port.
func NewCollector(cfg *config.Config, port io.ReadWriteCloser, pub Publisher, m *metrics.Metrics) *Collector {
	c := &Collector{
		cfg:      cfg,
		port:     port,
		session:  decoder.NewSession(record.New(), cfg.NMEAMaxSentence),
		metrics:  m,
		pub:      pub,
		stopping: abool.New(),
		done:     make(chan struct{}),
		chunks:   make(chan []byte, 16),
		readErr:  make(chan error, 1),
		lines:    make(chan string, 16),
	}
	c.writer = newCommandWriter(port, cfg.CommandEvery(), c.logf, m.CommandSent)
	return c
}

// Lines returns the channel console commands are read from.
func (c *Collector) Lines() chan<- string { return c.lines }

// Run processes receiver bytes and console commands until ctx is done, the
// "exit" command is given or the port fails. It closes the port on return.
func (c *Collector) Run(ctx context.Context) error {
	go c.readPort()
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case chunk := <-c.chunks:
			c.handleChunk(chunk)
		case err := <-c.readErr:
			return fmt.Errorf("collector: read %s: %w", c.cfg.GPSSerialPort, err)
		case line := <-c.lines:
			if c.execute(line) {
				return nil
			}
		}
	}
}

func (c *Collector) readPort() {
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case c.chunks <- chunk:
			case <-c.done:
				return
			}
		}
		if err != nil {
			if c.stopping.IsSet() {
				return
			}
			c.readErr <- err
			return
		}
	}
}

func (c *Collector) handleChunk(chunk []byte) {
	for _, e := range c.session.Feed(chunk) {
		c.metrics.Observe(e)
		for _, line := range e.Lines() {
			c.logLine(line)
		}

		switch e.Kind {
		case decoder.Message:
			switch m := e.Message.(type) {
			case ubx.NavPvt:
				c.pub.Fix(gps.FromPVT(m))
			case ubx.NavDop:
				c.pub.DOP(gps.FromDOP(m))
			}
		case decoder.Bundle:
			c.pub.Bundle(*e.Bundle)
		}
	}
	c.metrics.SetGarbage(c.session.Garbage())
}

func (c *Collector) shutdown() {
	c.stopping.Set()
	close(c.done)
	c.writer.Close()
	if c.rec != nil {
		c.stopRecording()
	}
	if err := c.port.Close(); err != nil {
		log.Printf("collector: close port: %v", err)
	}
}

func (c *Collector) logLine(line string) {
	log.Printf("collector: %s", line)
	c.pub.Log(line)
}

func (c *Collector) logf(format string, args ...any) {
	c.logLine(fmt.Sprintf(format, args...))
}

// RunCollector connects to MQTT, opens the receiver and runs the collector
// with commands from stdin until interrupted.
func RunCollector() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("collector: configuration not loaded")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDCollector)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("collector: connected to MQTT broker at %s", cfg.MQTTBroker)

	port, err := openPort(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			log.Printf("collector: metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("collector: metrics server: %v", err)
			}
		}()
	}

	c := NewCollector(cfg, port, newMQTTPublisher(client, cfg), m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StartupScript != "" {
		script, err := LoadScript(cfg.StartupScript)
		if err != nil {
			port.Close()
			return err
		}
		log.Printf("collector: running %d startup commands from %s", len(script.Commands), cfg.StartupScript)
		go script.run(ctx, c.Lines())
	}

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case c.Lines() <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Println(`collector: type "help" for commands`)
	return c.Run(ctx)
}
