// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	c := cfg.Client

	// ------------------------------------------------------------
	// PRODUCT / CATALOG
	// ------------------------------------------------------------

	cat, err := catalog.ForProduct(c.Product)
	if err != nil {
		return err
	}

	// ------------------------------------------------------------
	// CONNECTION
	// ------------------------------------------------------------

	if c.Connection.Port == "" {
		return fmt.Errorf("config: connection.port required (use \"auto\" to scan)")
	}
	if c.Connection.BaudRate < 0 {
		return fmt.Errorf("config: connection.baud_rate must be >= 0")
	}
	if c.Connection.TimeoutMs <= 0 {
		return fmt.Errorf("config: connection.timeout_ms must be > 0")
	}
	if c.Connection.RetryCount < 0 {
		return fmt.Errorf("config: connection.retry_count must be >= 0")
	}
	if c.Connection.Checksum != "" {
		if _, err := protocol.ForScheme(c.Connection.Checksum); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// LOGGING (OPT-IN)
	// ------------------------------------------------------------

	if c.Logging == nil {
		return nil
	}

	if c.Logging.IntervalMs < 0 {
		return fmt.Errorf("config: logging.interval_ms must be >= 0")
	}
	if len(c.Logging.Registers) == 0 {
		return fmt.Errorf("config: logging.registers must name at least one register")
	}
	for _, name := range c.Logging.Registers {
		d, ok := cat.ByName(name)
		if !ok {
			return fmt.Errorf("config: logging register %q not in %s catalog", name, c.Product)
		}
		if !d.Access.Readable() {
			return fmt.Errorf("config: logging register %q is write-only", name)
		}
	}
	if c.Logging.CSVPath == "" && c.Logging.MQTT == nil {
		return fmt.Errorf("config: logging needs csv_path or mqtt")
	}
	if c.Logging.MQTT != nil && c.Logging.MQTT.Broker == "" {
		return fmt.Errorf("config: logging.mqtt.broker required")
	}

	return nil
}
