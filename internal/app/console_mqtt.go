// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gnss_collector/internal/config"
	"github.com/relabs-tech/gnss_collector/internal/gps"
	"github.com/relabs-tech/gnss_collector/internal/record"
)

func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Collector log
	logToken := client.Subscribe(cfg.TopicLog, 0, func(_ mqtt.Client, msg mqtt.Message) {
		fmt.Printf("[LOG ] %s\n", msg.Payload())
	})
	logToken.Wait()
	if logToken.Error() != nil {
		return logToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicLog)

	// Fixes
	fixToken := client.Subscribe(cfg.TopicFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("console: fix unmarshal error: %v", err)
			return
		}
		fmt.Println(fixSummary(f))
	})
	fixToken.Wait()
	if fixToken.Error() != nil {
		return fixToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicFix)

	// Recorded bundles
	bundleToken := client.Subscribe(cfg.TopicBundle, 0, func(_ mqtt.Client, msg mqtt.Message) {
		e, err := record.UnmarshalEnvelope(msg.Payload())
		if err != nil {
			log.Printf("console: %v", err)
			return
		}
		fmt.Println(bundleSummary(e))
	})
	bundleToken.Wait()
	if bundleToken.Error() != nil {
		return bundleToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicBundle)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func fixSummary(f gps.Fix) string {
	return fmt.Sprintf(
		"[GPS ]  time=%s date=%s fix=%s sv=%d lat=%.6f lon=%.6f alt=%.1fm speed=%.1fm/s course=%.1f° validity=%s",
		f.Time, f.Date, f.FixType, f.NumSV, f.Latitude, f.Longitude, f.HeightMSL, f.SpeedMS, f.CourseDeg, f.Validity,
	)
}

func bundleSummary(e record.Envelope) string {
	return fmt.Sprintf("[BLE ]  seq=%d itow=%d len=%d", e.Seq, e.ITOW, len(e.Bundle))
}
