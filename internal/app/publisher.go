// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gnss_collector/internal/config"
	"github.com/relabs-tech/gnss_collector/internal/gps"
	"github.com/relabs-tech/gnss_collector/internal/record"
)

const publishTimeout = 2 * time.Second

// Publisher fans collector output out to subscribers. Implementations must
// be safe for concurrent use.
type Publisher interface {
	Log(line string)
	Fix(f gps.Fix)
	DOP(d gps.DOP)
	Bundle(b record.Bundle)
}

type mqttPublisher struct {
	client mqtt.Client
	cfg    *config.Config
}

func newMQTTPublisher(client mqtt.Client, cfg *config.Config) *mqttPublisher {
	return &mqttPublisher{client: client, cfg: cfg}
}

func (p *mqttPublisher) Log(line string) {
	p.publish(p.cfg.TopicLog, false, []byte(line))
}

func (p *mqttPublisher) Fix(f gps.Fix) {
	payload, err := json.Marshal(f)
	if err != nil {
		log.Printf("collector: fix marshal error: %v", err)
		return
	}
	p.publish(p.cfg.TopicFix, true, payload)
}

func (p *mqttPublisher) DOP(d gps.DOP) {
	payload, err := json.Marshal(d)
	if err != nil {
		log.Printf("collector: dop marshal error: %v", err)
		return
	}
	p.publish(p.cfg.TopicDOP, true, payload)
}

func (p *mqttPublisher) Bundle(b record.Bundle) {
	payload, err := record.MarshalEnvelope(b)
	if err != nil {
		log.Printf("collector: %v", err)
		return
	}
	p.publish(p.cfg.TopicBundle, false, payload)
}

// publish never goes through the log topic itself, so a broken broker
// only shows up on the local log.
func (p *mqttPublisher) publish(topic string, retained bool, payload []byte) {
	token := p.client.Publish(topic, 0, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Printf("collector: publish to %s timed out", topic)
		return
	}
	if token.Error() != nil {
		log.Printf("collector: publish to %s error: %v", topic, token.Error())
	}
}
