// internal/protocol/codec.go
package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
)

// Opcodes.
const (
	OpRead  byte = 0x01
	OpWrite byte = 0x02
)

const headerSize = 4 // node(1) + opcode(1) + register(2)

// Value is one successfully decoded register read.
type Value struct {
	Descriptor *catalog.Descriptor
	Raw        []byte
	Decoded    float64
	At         time.Time
}

// Codec builds and parses request/response frames for one node address.
//
// Frame layout:
//
//	node(1) opcode(1) register(2 BE) payload(0/2/4 BE) checksum
//
// Pure byte work; no IO.
type Codec struct {
	node uint8
	ck   Checksum
}

// NewCodec creates a codec for the given bus node address.
func NewCodec(node uint8, ck Checksum) *Codec {
	if ck == nil {
		ck = AdditiveChecksum{}
	}
	return &Codec{node: node, ck: ck}
}

// EncodeRead builds a read request. Read requests carry no payload.
func (c *Codec) EncodeRead(d *catalog.Descriptor) []byte {
	return c.seal(c.header(OpRead, d.Address))
}

// EncodeWrite builds a write request carrying the value encoded per the
// descriptor's data type. Values that do not fit the type and range are
// rejected before anything touches the wire.
func (c *Codec) EncodeWrite(d *catalog.Descriptor, value float64) ([]byte, error) {
	payload, err := encodeValue(d, value)
	if err != nil {
		return nil, err
	}
	return c.seal(append(c.header(OpWrite, d.Address), payload...)), nil
}

// ResponseSize returns the expected response frame length for a request
// against the given descriptor. Responses always echo the register
// address and carry a typed payload, for writes as well as reads.
func (c *Codec) ResponseSize(d *catalog.Descriptor) int {
	return headerSize + d.Type.PayloadSize() + c.ck.Size()
}

// DecodeResponse validates and decodes a response frame.
// Order matters: checksum first (ChecksumMismatch), then the address
// echo (AddressMismatch — guards against a stale response on a noisy
// half-duplex line being attributed to the wrong register), then the
// typed payload with its range check (RangeError).
func (c *Codec) DecodeResponse(frame []byte, d *catalog.Descriptor) (Value, error) {
	ckSize := c.ck.Size()
	if len(frame) < headerSize+ckSize {
		return Value{}, fmt.Errorf("%w: got %d bytes", ErrShortFrame, len(frame))
	}

	body := frame[:len(frame)-ckSize]
	trailer := frame[len(frame)-ckSize:]
	if !bytes.Equal(trailer, c.ck.Sum(body)) {
		return Value{}, ErrChecksumMismatch
	}

	addr := binary.BigEndian.Uint16(frame[2:4])
	if addr != d.Address {
		return Value{}, fmt.Errorf("%w: got %d, want %d", ErrAddressMismatch, addr, d.Address)
	}

	payload := body[headerSize:]
	if len(payload) != d.Type.PayloadSize() {
		return Value{}, fmt.Errorf("%w: payload %d bytes, want %d for %s",
			ErrShortFrame, len(payload), d.Type.PayloadSize(), d.Type)
	}

	decoded, err := decodeValue(d, payload)
	if err != nil {
		return Value{}, err
	}

	return Value{
		Descriptor: d,
		Raw:        append([]byte(nil), frame...),
		Decoded:    decoded,
		At:         time.Now(),
	}, nil
}

func (c *Codec) header(op byte, register uint16) []byte {
	b := make([]byte, headerSize, headerSize+4+c.ck.Size())
	b[0] = c.node
	b[1] = op
	binary.BigEndian.PutUint16(b[2:4], register)
	return b
}

func (c *Codec) seal(body []byte) []byte {
	return append(body, c.ck.Sum(body)...)
}

// ---- typed payload encode/decode ----

func encodeValue(d *catalog.Descriptor, v float64) ([]byte, error) {
	if v < d.Min || v > d.Max {
		return nil, &RangeError{Register: d.Name, Value: v, Min: d.Min, Max: d.Max}
	}

	switch d.Type {
	case catalog.Int16, catalog.Uint16, catalog.Int32, catalog.Bool:
		if v != math.Trunc(v) {
			return nil, &RangeError{Register: d.Name, Value: v, Min: d.Min, Max: d.Max}
		}
	}

	switch d.Type {
	case catalog.Int16:
		out := make([]byte, 2)
		binary.BigEndian.PutUint16(out, uint16(int16(v)))
		return out, nil
	case catalog.Uint16:
		out := make([]byte, 2)
		binary.BigEndian.PutUint16(out, uint16(v))
		return out, nil
	case catalog.Int32:
		out := make([]byte, 4)
		binary.BigEndian.PutUint32(out, uint32(int32(v)))
		return out, nil
	case catalog.Float32:
		out := make([]byte, 4)
		binary.BigEndian.PutUint32(out, math.Float32bits(float32(v)))
		return out, nil
	case catalog.Bool:
		out := make([]byte, 2)
		if v != 0 {
			out[1] = 1
		}
		return out, nil
	default:
		return nil, fmt.Errorf("protocol: unsupported data type %s", d.Type)
	}
}

func decodeValue(d *catalog.Descriptor, payload []byte) (float64, error) {
	var v float64

	switch d.Type {
	case catalog.Int16:
		v = float64(int16(binary.BigEndian.Uint16(payload)))
	case catalog.Uint16:
		v = float64(binary.BigEndian.Uint16(payload))
	case catalog.Int32:
		v = float64(int32(binary.BigEndian.Uint32(payload)))
	case catalog.Float32:
		v = float64(math.Float32frombits(binary.BigEndian.Uint32(payload)))
	case catalog.Bool:
		raw := binary.BigEndian.Uint16(payload)
		if raw > 1 {
			return 0, &RangeError{Register: d.Name, Value: float64(raw), Min: 0, Max: 1}
		}
		v = float64(raw)
	default:
		return 0, fmt.Errorf("protocol: unsupported data type %s", d.Type)
	}

	if v < d.Min || v > d.Max {
		return 0, &RangeError{Register: d.Name, Value: v, Min: d.Min, Max: d.Max}
	}

	return v, nil
}
