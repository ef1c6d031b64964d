// internal/config/normalize.go
package config

import (
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
)

// defaultLogIntervalMs matches the cadence the device's internal log
// ring can sustain without overflowing.
const defaultLogIntervalMs = 80

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	c := &cfg.Client

	// Products carry a factory baud rate; an explicit one wins.
	if c.Connection.BaudRate == 0 {
		c.Connection.BaudRate = catalog.DefaultBaudRate(c.Product)
	}

	if c.Connection.Checksum == "" {
		c.Connection.Checksum = protocol.SchemeAdditive
	}

	if c.Logging != nil && c.Logging.IntervalMs == 0 {
		c.Logging.IntervalMs = defaultLogIntervalMs
	}
}
