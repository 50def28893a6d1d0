// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/gnss_collector/internal/config"
	"github.com/relabs-tech/gnss_collector/internal/gps"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// logClientBuffer is how many log lines a slow websocket client may fall
// behind before lines are dropped for it.
const logClientBuffer = 64

// logHub fans collector log lines out to websocket clients.
type logHub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func newLogHub() *logHub {
	return &logHub{clients: make(map[chan string]struct{})}
}

func (h *logHub) subscribe() chan string {
	ch := make(chan string, logClientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *logHub) unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

func (h *logHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *logHub) broadcast(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- line:
		default:
		}
	}
}

// serveWS streams log lines to one client until it disconnects.
func (h *logHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web: websocket error: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case line := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	}
}

// webState holds the latest values received from the collector.
type webState struct {
	mu      sync.RWMutex
	fix     gps.Fix
	haveFix bool
	dop     gps.DOP
	haveDOP bool

	hub *logHub
}

func newWebState() *webState {
	return &webState{hub: newLogHub()}
}

func (s *webState) setFix(f gps.Fix) {
	s.mu.Lock()
	s.fix, s.haveFix = f, true
	s.mu.Unlock()
}

func (s *webState) setDOP(d gps.DOP) {
	s.mu.Lock()
	s.dop, s.haveDOP = d, true
	s.mu.Unlock()
}

func (s *webState) routes(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/fix", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		f, ok := s.fix, s.haveFix
		s.mu.RUnlock()
		writeLatest(w, f, ok)
	})
	mux.HandleFunc("/api/dop", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		d, ok := s.dop, s.haveDOP
		s.mu.RUnlock()
		writeLatest(w, d, ok)
	})
	mux.HandleFunc("/ws/log", s.hub.serveWS)

	// Static files from ./web as the root
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

func writeLatest(w http.ResponseWriter, v any, ok bool) {
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

func RunWeb() error {
	cfg := config.Get()
	state := newWebState()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("web: fix unmarshal error: %v", err)
			return
		}
		state.setFix(f)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicFix)

	token = client.Subscribe(cfg.TopicDOP, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var d gps.DOP
		if err := json.Unmarshal(msg.Payload(), &d); err != nil {
			log.Printf("web: dop unmarshal error: %v", err)
			return
		}
		state.setDOP(d)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicDOP)

	token = client.Subscribe(cfg.TopicLog, 0, func(_ mqtt.Client, msg mqtt.Message) {
		state.hub.broadcast(string(msg.Payload()))
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicLog)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: listening on %s", addr)
	return http.ListenAndServe(addr, state.routes("web"))
}
