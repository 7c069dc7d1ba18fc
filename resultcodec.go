package fieldproj

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Codec selects which compression algorithm ResultEncoder uses.
type Codec int

const (
	// CodecS2 favors throughput, suited to a streaming pipeline writing
	// projected fields as fast as ProjectNDStream produces them.
	CodecS2 Codec = iota
	// CodecZstd favors ratio, suited to a projection batch persisted once
	// and read back many times.
	CodecZstd
)

const (
	tagNull   byte = 0
	tagBool   byte = 1
	tagNumber byte = 2
	tagString byte = 3
)

// ResultEncoder writes a sequence of (key, Value) pairs as a compact
// tagged, varint-length-prefixed binary stream, compressed with the
// chosen Codec. One encoder wraps one underlying writer for the lifetime
// of a batch.
type ResultEncoder struct {
	w       io.WriteCloser
	bw      *bufio.Writer
	scratch [binary.MaxVarintLen64]byte
}

// NewResultEncoder wraps w with the chosen compressor. Callers must call
// Close to flush the compressor and, for CodecZstd, release its encoder
// goroutines.
func NewResultEncoder(w io.Writer, codec Codec) (*ResultEncoder, error) {
	switch codec {
	case CodecS2:
		sw := s2.NewWriter(w)
		return &ResultEncoder{w: sw, bw: bufio.NewWriter(sw)}, nil
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("fieldproj: new zstd encoder: %w", err)
		}
		return &ResultEncoder{w: zw, bw: bufio.NewWriter(zw)}, nil
	default:
		return nil, fmt.Errorf("fieldproj: unknown codec %d", codec)
	}
}

// EncodePair appends one (key, value) record to the stream.
func (e *ResultEncoder) EncodePair(key string, v Value) error {
	if err := e.writeString(key); err != nil {
		return err
	}
	return e.writeValue(v)
}

func (e *ResultEncoder) writeValue(v Value) error {
	if err := e.writeByte(byte(v.Kind)); err != nil {
		return err
	}
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		b := byte(0)
		if v.Bool {
			b = 1
		}
		return e.writeByte(b)
	case KindNumber:
		n := binary.PutUvarint(e.scratch[:], math.Float64bits(v.Number))
		_, err := e.bw.Write(e.scratch[:n])
		return err
	case KindString:
		return e.writeString(v.String)
	default:
		return fmt.Errorf("fieldproj: unknown value kind %d", v.Kind)
	}
}

func (e *ResultEncoder) writeString(s string) error {
	n := binary.PutUvarint(e.scratch[:], uint64(len(s)))
	if _, err := e.bw.Write(e.scratch[:n]); err != nil {
		return err
	}
	_, err := e.bw.WriteString(s)
	return err
}

func (e *ResultEncoder) writeByte(b byte) error {
	return e.bw.WriteByte(b)
}

// Close flushes buffered output and the underlying compressor.
func (e *ResultEncoder) Close() error {
	if err := e.bw.Flush(); err != nil {
		return err
	}
	return e.w.Close()
}

// ResultDecoder reads back the stream ResultEncoder produces.
type ResultDecoder struct {
	br *bufio.Reader
}

// NewResultDecoder wraps r, which must have been produced by a
// ResultEncoder using the same codec.
func NewResultDecoder(r io.Reader, codec Codec) (*ResultDecoder, error) {
	switch codec {
	case CodecS2:
		return &ResultDecoder{br: bufio.NewReader(s2.NewReader(r))}, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("fieldproj: new zstd decoder: %w", err)
		}
		return &ResultDecoder{br: bufio.NewReader(zr)}, nil
	default:
		return nil, fmt.Errorf("fieldproj: unknown codec %d", codec)
	}
}

// DecodePair reads the next (key, value) pair, or io.EOF when the stream
// is exhausted.
func (d *ResultDecoder) DecodePair() (string, Value, error) {
	key, err := d.readString()
	if err != nil {
		return "", Value{}, err
	}
	v, err := d.readValue()
	if err != nil {
		return "", Value{}, fmt.Errorf("fieldproj: truncated value for key %q: %w", key, err)
	}
	return key, v, nil
}

func (d *ResultDecoder) readValue() (Value, error) {
	kindByte, err := d.br.ReadByte()
	if err != nil {
		return Value{}, err
	}
	switch Kind(kindByte) {
	case KindNull:
		return Value{Kind: KindNull}, nil
	case KindBool:
		b, err := d.br.ReadByte()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBool, Bool: b != 0}, nil
	case KindNumber:
		bits, err := binary.ReadUvarint(d.br)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindNumber, Number: math.Float64frombits(bits)}, nil
	case KindString:
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, String: s}, nil
	default:
		return Value{}, fmt.Errorf("fieldproj: unknown value tag %d", kindByte)
	}
}

func (d *ResultDecoder) readString() (string, error) {
	n, err := binary.ReadUvarint(d.br)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.br, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
