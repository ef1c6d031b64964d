// internal/transport/discover.go
package transport

import (
	"errors"
	"strings"

	"go.bug.st/serial/enumerator"
)

// cp210xVID is the Silicon Labs USB vendor id used by the ENG-00000480
// programming cable.
const cp210xVID = "10C4"

// ErrNoPort means no usable serial adapter was found.
var ErrNoPort = errors.New("transport: no serial port found")

// Discover picks the serial port to use when none is configured.
// Preference order: the CP210x programming cable, then any other USB
// serial adapter.
func Discover() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", ErrNoPort
	}

	var fallback string
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		if strings.EqualFold(p.VID, cp210xVID) || strings.Contains(p.Product, "CP210x") {
			return p.Name, nil
		}
		if fallback == "" {
			fallback = p.Name
		}
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoPort
}
