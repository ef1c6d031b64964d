// internal/logger/logger.go
package logger

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
)

// Session abstracts the register reads the logger needs.
type Session interface {
	ReadRegister(name string) (protocol.Value, error)
}

// Row is one logged tick: a timestamp plus one value per configured
// register, in configuration order. A nil value marks a failed read —
// a partial row beats a silent gap.
type Row struct {
	At     time.Time
	Values []*float64
}

// Sink receives finished rows. Durable storage and formatting are the
// sink's problem, not the logger's.
type Sink interface {
	Write(row Row) error
	Close() error
}

// Logger polls a fixed register set through a session on a fixed
// cadence and hands each row to the sink. Ticks never overlap: if a
// tick overruns the interval, the next one runs immediately after it
// completes instead of reentering.
type Logger struct {
	sess     Session
	names    []string
	interval time.Duration
	sink     Sink

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped logger.
func New(sess Session, names []string, interval time.Duration, sink Sink) (*Logger, error) {
	if sess == nil {
		return nil, errors.New("logger: session required")
	}
	if len(names) == 0 {
		return nil, errors.New("logger: at least one register required")
	}
	if interval <= 0 {
		return nil, errors.New("logger: interval must be > 0")
	}
	if sink == nil {
		return nil, errors.New("logger: sink required")
	}

	cp := make([]string, len(names))
	copy(cp, names)

	return &Logger{
		sess:     sess,
		names:    cp,
		interval: interval,
		sink:     sink,
	}, nil
}

// Names returns the configured register column order.
func (l *Logger) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Start launches the tick loop. Starting a running logger is an error.
func (l *Logger) Start() error {
	if l.done != nil {
		return errors.New("logger: already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go l.run(ctx)
	return nil
}

// Stop halts the tick loop and returns only after any in-flight tick
// has delivered its row to the sink. Idempotent.
func (l *Logger) Stop() {
	if l.done == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
	l.done = nil
}

func (l *Logger) run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Tick body runs inline, so a slow tick delays the next
			// one instead of overlapping it.
			row := l.tick()
			if err := l.sink.Write(row); err != nil {
				log.Printf("logger: sink write failed: %v", err)
			}
		}
	}
}

// tick reads every configured register sequentially through the session.
// A failed read becomes a nil field; the tick itself never aborts.
func (l *Logger) tick() Row {
	row := Row{
		At:     time.Now(),
		Values: make([]*float64, len(l.names)),
	}

	for i, name := range l.names {
		v, err := l.sess.ReadRegister(name)
		if err != nil {
			log.Printf("logger: read %s failed: %v", name, err)
			continue
		}
		decoded := v.Decoded
		row.Values[i] = &decoded
	}

	return row
}
