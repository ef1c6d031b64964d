// internal/transport/transport.go
package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

var (
	// ErrTimeout means no (complete) response arrived within the deadline.
	ErrTimeout = errors.New("transport: receive timeout")
	// ErrClosed means the port was closed underneath the caller.
	ErrClosed = errors.New("transport: port closed")
)

// Config is the physical link configuration.
type Config struct {
	Port     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	Timeout  time.Duration
}

// Transport is byte-level send/receive over one exclusive serial handle.
// At most one outstanding receive per handle.
type Transport interface {
	Send(p []byte) error
	// Receive fills buf completely or fails. It returns control within
	// the timeout even if no bytes arrived.
	Receive(buf []byte, timeout time.Duration) error
	Close() error
}

// port implements Transport over goburrow/serial.
type port struct {
	mu  sync.Mutex
	rwc io.ReadWriteCloser
}

// Open opens the configured serial port.
func Open(cfg Config) (Transport, error) {
	if cfg.Port == "" {
		return nil, errors.New("transport: port name required")
	}
	if cfg.BaudRate <= 0 {
		return nil, errors.New("transport: baud rate must be > 0")
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if cfg.Parity == "" {
		cfg.Parity = "N"
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Port, err)
	}

	return &port{rwc: p}, nil
}

func (p *port) Send(b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rwc == nil {
		return ErrClosed
	}
	if _, err := p.rwc.Write(b); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Receive reads until buf is full or the deadline passes. The underlying
// port read blocks for at most the configured port timeout, so the
// deadline is checked between partial reads.
func (p *port) Receive(buf []byte, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rwc == nil {
		return ErrClosed
	}

	deadline := time.Now().Add(timeout)
	got := 0
	for got < len(buf) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %d/%d bytes", ErrTimeout, got, len(buf))
		}
		n, err := p.rwc.Read(buf[got:])
		got += n
		if err != nil {
			if errors.Is(err, serial.ErrTimeout) {
				continue // deadline check decides
			}
			if errors.Is(err, io.EOF) && n == 0 {
				continue
			}
			return fmt.Errorf("transport: read: %w", err)
		}
	}
	return nil
}

func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rwc == nil {
		return nil
	}
	err := p.rwc.Close()
	p.rwc = nil
	return err
}
