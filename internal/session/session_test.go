// internal/session/session_test.go
package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/transport"
)

// ---- fake transport ----

type reply struct {
	frame []byte
	err   error
}

type fakeTransport struct {
	sent    [][]byte
	replies []reply
	idx     int
	closed  int
}

func (f *fakeTransport) Send(p []byte) error {
	f.sent = append(f.sent, append([]byte(nil), p...))
	return nil
}

func (f *fakeTransport) Receive(buf []byte, _ time.Duration) error {
	if f.idx >= len(f.replies) {
		return transport.ErrTimeout
	}
	r := f.replies[f.idx]
	f.idx++
	if r.err != nil {
		return r.err
	}
	copy(buf, r.frame)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

// ---- helpers ----

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New("test", []catalog.Descriptor{
		{Name: "BUS_VOLTAGE", Address: 45, Type: catalog.Uint16, Unit: "cV", Min: 0, Max: 4000, Access: catalog.ReadOnly},
		{Name: "STOP_VOLTAGE", Address: 39, Type: catalog.Uint16, Unit: "cV", Min: 2000, Max: 3200, Access: catalog.ReadWrite},
		{Name: "RESET_CMD", Address: 99, Type: catalog.Bool, Min: 0, Max: 1, Access: catalog.WriteOnly},
	})
	if err != nil {
		t.Fatalf("catalog err=%v", err)
	}
	return cat
}

func newSession(t *testing.T, tr *fakeTransport, retries int) *Session {
	t.Helper()
	s, err := NewWithDialer(Config{
		Port:        "/dev/ttyUSB0",
		BaudRate:    57600,
		NodeAddress: 1,
		Timeout:     10 * time.Millisecond,
		RetryCount:  retries,
	}, testCatalog(t), func(transport.Config) (transport.Transport, error) {
		return tr, nil
	})
	if err != nil {
		t.Fatalf("NewWithDialer err=%v", err)
	}
	if err := s.Connect(); err != nil {
		t.Fatalf("Connect err=%v", err)
	}
	return s
}

// frame builds a response with the default additive checksum.
func frame(node byte, op byte, reg uint16, payload ...byte) []byte {
	b := []byte{node, op, byte(reg >> 8), byte(reg)}
	b = append(b, payload...)
	var sum byte
	for _, v := range b {
		sum += v
	}
	return append(b, sum)
}

// ---- tests ----

func TestConnect_FailureStaysDisconnected(t *testing.T) {
	dialErr := errors.New("no such port")
	s, err := NewWithDialer(Config{
		Port:    "/dev/ttyUSB9",
		Timeout: time.Millisecond,
	}, testCatalog(t), func(transport.Config) (transport.Transport, error) {
		return nil, dialErr
	})
	if err != nil {
		t.Fatalf("NewWithDialer err=%v", err)
	}

	err = s.Connect()
	var ce *ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("err=%v, want ConnectionError", err)
	}
	if !errors.Is(err, dialErr) {
		t.Fatalf("ConnectionError does not wrap the cause: %v", err)
	}
	if got := s.State(); got != Disconnected {
		t.Fatalf("state=%s, want disconnected", got)
	}
}

func TestReadRegister_Success(t *testing.T) {
	tr := &fakeTransport{replies: []reply{
		{frame: frame(1, protocol.OpRead, 45, 0x0A, 0x5F)}, // 2655
	}}
	s := newSession(t, tr, 0)

	v, err := s.ReadRegister("BUS_VOLTAGE")
	if err != nil {
		t.Fatalf("ReadRegister err=%v", err)
	}
	if v.Decoded != 2655 {
		t.Fatalf("decoded=%g, want 2655", v.Decoded)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("sent %d requests, want 1", len(tr.sent))
	}
}

func TestRead_RetryExhaustionFaultsOnce(t *testing.T) {
	tr := &fakeTransport{} // every receive times out
	s := newSession(t, tr, 2)

	_, err := s.ReadRegister("BUS_VOLTAGE")
	if !errors.Is(err, ErrCommunicationLost) {
		t.Fatalf("err=%v, want ErrCommunicationLost", err)
	}
	if !errors.Is(err, transport.ErrTimeout) {
		t.Fatalf("err=%v, should wrap the last transport error", err)
	}
	if len(tr.sent) != 3 {
		t.Fatalf("sent %d attempts, want retryCount+1 = 3", len(tr.sent))
	}
	if got := s.State(); got != Faulted {
		t.Fatalf("state=%s, want faulted", got)
	}

	// A faulted session refuses further requests without touching the
	// wire: the transition happens exactly once.
	_, err = s.ReadRegister("BUS_VOLTAGE")
	if !errors.Is(err, ErrFaulted) {
		t.Fatalf("second read err=%v, want ErrFaulted", err)
	}
	if len(tr.sent) != 3 {
		t.Fatalf("faulted session sent more requests: %d", len(tr.sent))
	}
}

func TestRead_RecoversWithinRetryBudget(t *testing.T) {
	tr := &fakeTransport{replies: []reply{
		{err: transport.ErrTimeout},
		{frame: frame(1, protocol.OpRead, 45, 0x0A, 0x5F)},
	}}
	s := newSession(t, tr, 3)

	v, err := s.ReadRegister("BUS_VOLTAGE")
	if err != nil {
		t.Fatalf("ReadRegister err=%v", err)
	}
	if v.Decoded != 2655 {
		t.Fatalf("decoded=%g, want 2655", v.Decoded)
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d requests, want a fresh send per attempt: 2", len(tr.sent))
	}
	if got := s.State(); got != Connected {
		t.Fatalf("state=%s, want connected", got)
	}
}

func TestRead_ChecksumMismatchRetried(t *testing.T) {
	bad := frame(1, protocol.OpRead, 45, 0x0A, 0x5F)
	bad[len(bad)-1]++

	tr := &fakeTransport{replies: []reply{
		{frame: bad},
		{frame: frame(1, protocol.OpRead, 45, 0x0A, 0x5F)},
	}}
	s := newSession(t, tr, 1)

	if _, err := s.ReadRegister("BUS_VOLTAGE"); err != nil {
		t.Fatalf("ReadRegister err=%v", err)
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d requests, want 2", len(tr.sent))
	}
}

func TestRead_AddressMismatchSurfacesImmediately(t *testing.T) {
	tr := &fakeTransport{replies: []reply{
		{frame: frame(1, protocol.OpRead, 39, 0x0A, 0x5F)}, // echo for the wrong register
	}}
	s := newSession(t, tr, 5)

	_, err := s.ReadRegister("BUS_VOLTAGE")
	if !errors.Is(err, protocol.ErrAddressMismatch) {
		t.Fatalf("err=%v, want ErrAddressMismatch", err)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("address mismatch was retried: %d sends", len(tr.sent))
	}
	if got := s.State(); got != Connected {
		t.Fatalf("state=%s, want connected (not session-fatal)", got)
	}
}

func TestLookupErrors(t *testing.T) {
	s := newSession(t, &fakeTransport{}, 0)

	if _, err := s.ReadRegister("NO_SUCH_REG"); !errors.Is(err, ErrUnknownRegister) {
		t.Fatalf("err=%v, want ErrUnknownRegister", err)
	}
	if _, err := s.ReadRegister("RESET_CMD"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("read of write-only: err=%v, want ErrAccessDenied", err)
	}
	if err := s.WriteRegister("BUS_VOLTAGE", 2500); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("write of read-only: err=%v, want ErrAccessDenied", err)
	}
}

func TestWrite_VerifiedByReRead(t *testing.T) {
	tr := &fakeTransport{replies: []reply{
		{frame: frame(1, protocol.OpWrite, 39, 0x0B, 0xB8)}, // write echo 3000
		{frame: frame(1, protocol.OpRead, 39, 0x0B, 0xB8)},  // verify read 3000
	}}
	s := newSession(t, tr, 0)

	if err := s.WriteRegister("STOP_VOLTAGE", 3000); err != nil {
		t.Fatalf("WriteRegister err=%v", err)
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d requests, want write + verify read", len(tr.sent))
	}
	if tr.sent[1][1] != protocol.OpRead {
		t.Fatalf("second request opcode=%#x, want read", tr.sent[1][1])
	}
}

func TestWrite_VerificationMismatchNonFatal(t *testing.T) {
	tr := &fakeTransport{replies: []reply{
		{frame: frame(1, protocol.OpWrite, 39, 0x0B, 0xB8)}, // device accepts 3000
		{frame: frame(1, protocol.OpRead, 39, 0x0A, 0x5F)},  // but reads back 2655
	}}
	s := newSession(t, tr, 0)

	err := s.WriteRegister("STOP_VOLTAGE", 3000)
	var wve *WriteVerificationError
	if !errors.As(err, &wve) {
		t.Fatalf("err=%v, want WriteVerificationError", err)
	}
	if wve.Wrote != 3000 || wve.Read != 2655 {
		t.Fatalf("wrote=%g read=%g", wve.Wrote, wve.Read)
	}
	if got := s.State(); got != Connected {
		t.Fatalf("state=%s, verification mismatch must not fault the session", got)
	}
}

func TestWrite_RejectsOutOfRangeBeforeSending(t *testing.T) {
	tr := &fakeTransport{}
	s := newSession(t, tr, 0)

	err := s.WriteRegister("STOP_VOLTAGE", 9999)
	var re *protocol.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want RangeError", err)
	}
	if len(tr.sent) != 0 {
		t.Fatalf("out-of-range write reached the wire: %d sends", len(tr.sent))
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	tr := &fakeTransport{}
	s := newSession(t, tr, 0)

	if err := s.Disconnect(); err != nil {
		t.Fatalf("Disconnect err=%v", err)
	}
	if err := s.Disconnect(); err != nil {
		t.Fatalf("second Disconnect err=%v", err)
	}
	if tr.closed != 1 {
		t.Fatalf("transport closed %d times, want 1", tr.closed)
	}
	if got := s.State(); got != Disconnected {
		t.Fatalf("state=%s, want disconnected", got)
	}

	if _, err := s.ReadRegister("BUS_VOLTAGE"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("read after disconnect err=%v, want ErrNotConnected", err)
	}
}

func TestConnect_ResetsFaultedState(t *testing.T) {
	tr := &fakeTransport{}
	s := newSession(t, tr, 0)

	if _, err := s.ReadRegister("BUS_VOLTAGE"); !errors.Is(err, ErrCommunicationLost) {
		t.Fatalf("err=%v, want ErrCommunicationLost", err)
	}
	if got := s.State(); got != Faulted {
		t.Fatalf("state=%s, want faulted", got)
	}

	// Explicit reconnect is the only way out of Faulted.
	tr.replies = []reply{{frame: frame(1, protocol.OpRead, 45, 0x0A, 0x5F)}}
	tr.idx = 0
	if err := s.Connect(); err != nil {
		t.Fatalf("reconnect err=%v", err)
	}
	if _, err := s.ReadRegister("BUS_VOLTAGE"); err != nil {
		t.Fatalf("read after reconnect err=%v", err)
	}
}
