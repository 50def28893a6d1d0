package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
# receiver
MQTT_BROKER=tcp://localhost:1883
GPS_SERIAL_PORT = /dev/ttyACM0
GPS_BAUD_RATE=9600
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.GPSSerialPort != "/dev/ttyACM0" || cfg.GPSBaudRate != 9600 {
		t.Errorf("serial = %q %d", cfg.GPSSerialPort, cfg.GPSBaudRate)
	}
	if cfg.TopicLog != "gnss/log" || cfg.TopicBundle != "gnss/bundle" {
		t.Errorf("topics = %q %q", cfg.TopicLog, cfg.TopicBundle)
	}
	if cfg.RecordPath != "log.txt" || cfg.NMEAMaxSentence != 256 || cfg.WebServerPort != 8080 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.CommandEvery() != 250*time.Millisecond {
		t.Errorf("CommandEvery() = %v", cfg.CommandEvery())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing broker", "GPS_SERIAL_PORT=mock\n", "MQTT_BROKER is required"},
		{"missing port", "MQTT_BROKER=tcp://b:1883\n", "GPS_SERIAL_PORT is required"},
		{"missing baud", "MQTT_BROKER=x\nGPS_SERIAL_PORT=/dev/ttyS0\n", "GPS_BAUD_RATE is required"},
		{"no equals", "MQTT_BROKER\n", "invalid config line 1"},
		{"unknown key", "MQTT_BROKER=x\nFOO=1\n", `unknown config key: "FOO"`},
		{"bad baud", "GPS_BAUD_RATE=fast\n", "invalid GPS_BAUD_RATE"},
		{"zero interval", "COMMAND_INTERVAL=0\n", "COMMAND_INTERVAL must be positive"},
		{"tiny sentence bound", "NMEA_MAX_SENTENCE=4\n", "NMEA_MAX_SENTENCE must be at least 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestMockNeedsNoBaud(t *testing.T) {
	cfg, err := Parse(strings.NewReader("MQTT_BROKER=tcp://b:1883\nGPS_SERIAL_PORT=mock\nDISPLAY_UPDATE_INTERVAL=1000\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.DisplayUpdateInterval != 1000 {
		t.Errorf("DisplayUpdateInterval = %d", cfg.DisplayUpdateInterval)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnss_config.txt")
	if err := os.WriteFile(path, []byte("MQTT_BROKER=tcp://b:1883\nGPS_SERIAL_PORT=mock\nRECORD_PATH=/tmp/rec.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RecordPath != "/tmp/rec.txt" {
		t.Errorf("RecordPath = %q", cfg.RecordPath)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
