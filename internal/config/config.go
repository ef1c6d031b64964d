// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Client ClientConfig `yaml:"client"`
}

type ClientConfig struct {
	Product    string           `yaml:"product"`
	Connection ConnectionConfig `yaml:"connection"`
	Logging    *LoggingConfig   `yaml:"logging"`
}

// ---- CONNECTION ----

type ConnectionConfig struct {
	// Port is a device path, or "auto" to scan for the programming cable.
	Port        string `yaml:"port"`
	BaudRate    int    `yaml:"baud_rate"`
	NodeAddress uint8  `yaml:"node_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	RetryCount  int    `yaml:"retry_count"`
	Checksum    string `yaml:"checksum"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	IntervalMs int         `yaml:"interval_ms"`
	Registers  []string    `yaml:"registers"`
	CSVPath    string      `yaml:"csv_path"`
	MQTT       *MQTTConfig `yaml:"mqtt"`
}

type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	AccessToken string `yaml:"access_token"`
	Topic       string `yaml:"topic"`
}

// Load reads and parses a config file. Call Validate and Normalize
// before using the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
