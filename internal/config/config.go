package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker            string
	MQTTClientIDCollector string
	MQTTClientIDWeb       string
	MQTTClientIDDisplay   string
	MQTTClientIDConsole   string

	// Topics
	TopicLog    string
	TopicFix    string
	TopicDOP    string
	TopicBundle string

	// GPS receiver
	GPSSerialPort   string // device path, or "mock" for the built-in simulator
	GPSBaudRate     int
	NMEAMaxSentence int // bytes searched after '$' before it is treated as noise

	// Recording and commands
	RecordPath      string
	CommandInterval int    // milliseconds between outgoing commands
	StartupScript   string // optional YAML command script

	// Metrics
	MetricsAddr string // empty disables /metrics

	// Web Server
	WebServerPort int

	// Display
	DisplayUpdateInterval int // milliseconds
}

// MockPort selects the built-in receiver simulator instead of a serial device.
const MockPort = "mock"

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Defaults returns a Config with every optional value filled in.
func Defaults() *Config {
	return &Config{
		MQTTClientIDCollector: "gnss-collector",
		MQTTClientIDWeb:       "gnss-web",
		MQTTClientIDDisplay:   "gnss-display",
		MQTTClientIDConsole:   "gnss-console",

		TopicLog:    "gnss/log",
		TopicFix:    "gnss/fix",
		TopicDOP:    "gnss/dop",
		TopicBundle: "gnss/bundle",

		NMEAMaxSentence: 256,

		RecordPath:      "log.txt",
		CommandInterval: 250,

		WebServerPort:         8080,
		DisplayUpdateInterval: 500,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads KEY=VALUE lines on top of Defaults. Blank lines and lines
// starting with '#' are skipped.
func Parse(r io.Reader) (*Config, error) {
	cfg := Defaults()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		if err := cfg.setValue(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_COLLECTOR":
		c.MQTTClientIDCollector = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value

	// Topics
	case "TOPIC_LOG":
		c.TopicLog = value
	case "TOPIC_FIX":
		c.TopicFix = value
	case "TOPIC_DOP":
		c.TopicDOP = value
	case "TOPIC_BUNDLE":
		c.TopicBundle = value

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate
	case "NMEA_MAX_SENTENCE":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid NMEA_MAX_SENTENCE %q: %w", value, err)
		}
		if n < 12 {
			return fmt.Errorf("NMEA_MAX_SENTENCE must be at least 12, got %d", n)
		}
		c.NMEAMaxSentence = n

	// Recording and commands
	case "RECORD_PATH":
		c.RecordPath = value
	case "COMMAND_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid COMMAND_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("COMMAND_INTERVAL must be positive, got %d", interval)
		}
		c.CommandInterval = interval
	case "STARTUP_SCRIPT":
		c.StartupScript = value

	// Metrics
	case "METRICS_ADDR":
		c.MetricsAddr = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.GPSSerialPort == "" {
		return fmt.Errorf("GPS_SERIAL_PORT is required")
	}
	if c.GPSBaudRate == 0 && c.GPSSerialPort != MockPort {
		return fmt.Errorf("GPS_BAUD_RATE is required")
	}
	if c.DisplayUpdateInterval <= 0 {
		return fmt.Errorf("DISPLAY_UPDATE_INTERVAL must be positive")
	}
	return nil
}

// CommandEvery returns CommandInterval as a duration.
func (c *Config) CommandEvery() time.Duration {
	return time.Duration(c.CommandInterval) * time.Millisecond
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
