// internal/session/session.go
package session

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/transport"
)

// State is the session lifecycle state.
type State uint8

const (
	Disconnected State = iota
	Connecting
	Connected
	// Faulted is terminal until an explicit Connect resets it.
	Faulted
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Config is supplied once at session creation and is immutable for the
// session's lifetime. Different parameters mean a new session.
type Config struct {
	Port        string
	BaudRate    int
	NodeAddress uint8
	Timeout     time.Duration
	RetryCount  int
	Checksum    string // protocol checksum scheme name
}

// Dialer opens the transport for a session. Tests substitute fakes here.
type Dialer func(transport.Config) (transport.Transport, error)

// writeVerifyTolerance absorbs float32 round-trip noise when re-reading
// a register after a write.
const writeVerifyTolerance = 1e-6

// Session combines transport, codec and catalog behind a single
// serialized request path. It is the sole owner of the transport handle:
// the half-duplex line cannot distinguish interleaved responses, so only
// one request may be in flight at a time.
type Session struct {
	cfg   Config
	cat   *catalog.Catalog
	codec *protocol.Codec
	dial  Dialer

	mu    sync.Mutex
	tr    transport.Transport
	state State
}

// New creates a disconnected session over the real serial transport.
func New(cfg Config, cat *catalog.Catalog) (*Session, error) {
	return NewWithDialer(cfg, cat, transport.Open)
}

// NewWithDialer creates a disconnected session with a custom transport
// dialer.
func NewWithDialer(cfg Config, cat *catalog.Catalog, dial Dialer) (*Session, error) {
	if cat == nil {
		return nil, errors.New("session: catalog required")
	}
	if dial == nil {
		return nil, errors.New("session: dialer required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("session: timeout must be > 0")
	}
	if cfg.RetryCount < 0 {
		return nil, errors.New("session: retry count must be >= 0")
	}

	ck, err := protocol.ForScheme(cfg.Checksum)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:   cfg,
		cat:   cat,
		codec: protocol.NewCodec(cfg.NodeAddress, ck),
		dial:  dial,
		state: Disconnected,
	}, nil
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Catalog returns the register catalog this session resolves names with.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Connect opens the transport. A Faulted session is reset by an explicit
// Connect. Connecting an already connected session is a no-op.
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Connected {
		return nil
	}

	s.state = Connecting
	tr, err := s.dial(transport.Config{
		Port:     s.cfg.Port,
		BaudRate: s.cfg.BaudRate,
		Timeout:  s.cfg.Timeout,
	})
	if err != nil {
		s.state = Disconnected
		return &ConnectionError{Port: s.cfg.Port, Cause: err}
	}

	s.tr = tr
	s.state = Connected
	return nil
}

// Disconnect closes the transport and always leaves the session
// Disconnected. Idempotent.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.tr != nil {
		err = s.tr.Close()
		s.tr = nil
	}
	s.state = Disconnected
	return err
}

// ReadRegister reads one register by name.
func (s *Session) ReadRegister(name string) (protocol.Value, error) {
	d, err := s.lookup(name, false)
	if err != nil {
		return protocol.Value{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request(d, s.codec.EncodeRead(d))
}

// WriteRegister writes one register by name. For read-write registers
// the value is confirmed by a follow-up read; a mismatch is reported as
// a WriteVerificationError and is not fatal to the session.
func (s *Session) WriteRegister(name string, value float64) error {
	d, err := s.lookup(name, true)
	if err != nil {
		return err
	}

	req, err := s.codec.EncodeWrite(d, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.request(d, req); err != nil {
		return err
	}

	if d.Access != catalog.ReadWrite {
		return nil
	}

	got, err := s.request(d, s.codec.EncodeRead(d))
	if err != nil {
		return fmt.Errorf("session: write verify read: %w", err)
	}
	if math.Abs(got.Decoded-value) > writeVerifyTolerance {
		return &WriteVerificationError{Register: name, Wrote: value, Read: got.Decoded}
	}
	return nil
}

func (s *Session) lookup(name string, write bool) (*catalog.Descriptor, error) {
	d, ok := s.cat.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
	}
	if write && !d.Access.Writable() {
		return nil, fmt.Errorf("%w: %q is read-only", ErrAccessDenied, name)
	}
	if !write && !d.Access.Readable() {
		return nil, fmt.Errorf("%w: %q is write-only", ErrAccessDenied, name)
	}
	return d, nil
}

// request performs one request/response exchange with the retry policy.
// Caller holds s.mu. TimeoutError and ChecksumMismatch are retried with
// a fresh send/receive pair up to RetryCount times; exhausting retries
// faults the session and surfaces CommunicationLost. Other protocol
// errors surface immediately without faulting.
func (s *Session) request(d *catalog.Descriptor, req []byte) (protocol.Value, error) {
	switch s.state {
	case Connected:
	case Faulted:
		return protocol.Value{}, ErrFaulted
	default:
		return protocol.Value{}, ErrNotConnected
	}

	attempts := s.cfg.RetryCount + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		v, err := s.exchange(d, req)
		if err == nil {
			return v, nil
		}
		if !retryable(err) {
			return protocol.Value{}, err
		}
		lastErr = err
	}

	s.state = Faulted
	return protocol.Value{}, fmt.Errorf("%w: %d attempts on %q: %w",
		ErrCommunicationLost, attempts, d.Name, lastErr)
}

// exchange is one fresh send/receive/decode pass.
func (s *Session) exchange(d *catalog.Descriptor, req []byte) (protocol.Value, error) {
	if err := s.tr.Send(req); err != nil {
		return protocol.Value{}, err
	}

	resp := make([]byte, s.codec.ResponseSize(d))
	if err := s.tr.Receive(resp, s.cfg.Timeout); err != nil {
		return protocol.Value{}, err
	}

	return s.codec.DecodeResponse(resp, d)
}

func retryable(err error) bool {
	return errors.Is(err, transport.ErrTimeout) ||
		errors.Is(err, protocol.ErrChecksumMismatch)
}
