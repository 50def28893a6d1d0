// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package metrics counts what the collector sees on the receiver stream.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relabs-tech/gnss_collector/internal/decoder"
)

type Metrics struct {
	registry *prometheus.Registry

	frames           *prometheus.CounterVec
	checksumFailures *prometheus.CounterVec
	messages         *prometheus.CounterVec
	commands         *prometheus.CounterVec
	bundles          prometheus.Counter
	mismatches       prometheus.Counter
	recordErrors     prometheus.Counter
	garbage          prometheus.Gauge
}

// New registers the collector metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gnss_frames_total",
			Help: "Complete frames cut from the receiver stream.",
		}, []string{"protocol"}),
		checksumFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gnss_checksum_failures_total",
			Help: "Frames discarded because of a checksum mismatch.",
		}, []string{"protocol"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gnss_messages_total",
			Help: "Decoded UBX messages by name.",
		}, []string{"message"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gnss_commands_total",
			Help: "Commands written to the receiver.",
		}, []string{"result"}),
		bundles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnss_bundles_total",
			Help: "PVT/DOP bundles written to the recording.",
		}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnss_correlation_mismatches_total",
			Help: "DOP messages skipped because no PVT with the same iTOW was seen.",
		}),
		recordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnss_record_errors_total",
			Help: "Failed writes to the recording.",
		}),
		garbage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gnss_garbage_bytes",
			Help: "Bytes skipped as noise since start.",
		}),
	}
	m.registry.MustRegister(
		m.frames, m.checksumFailures, m.messages, m.commands,
		m.bundles, m.mismatches, m.recordErrors, m.garbage,
	)
	return m
}

// Observe updates the counters for one decoder event.
func (m *Metrics) Observe(e decoder.Event) {
	switch e.Kind {
	case decoder.Sentence, decoder.MessageError:
		m.frames.WithLabelValues(e.Protocol().String()).Inc()
	case decoder.Message:
		m.frames.WithLabelValues(e.Protocol().String()).Inc()
		m.messages.WithLabelValues(e.Message.Name()).Inc()
	case decoder.BadSentence, decoder.BadMessage:
		m.frames.WithLabelValues(e.Protocol().String()).Inc()
		m.checksumFailures.WithLabelValues(e.Protocol().String()).Inc()
	case decoder.Bundle:
		m.bundles.Inc()
	case decoder.CorrelationMismatch:
		m.mismatches.Inc()
	case decoder.RecordError:
		m.recordErrors.Inc()
	}
}

// SetGarbage records the running noise byte total.
func (m *Metrics) SetGarbage(n uint64) {
	m.garbage.Set(float64(n))
}

// CommandSent counts one command write.
func (m *Metrics) CommandSent(err error) {
	if err != nil {
		m.commands.WithLabelValues("error").Inc()
		return
	}
	m.commands.WithLabelValues("ok").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
