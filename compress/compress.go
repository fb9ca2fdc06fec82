// Package compress wraps artifact streams in an optional compression layer.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind selects the compression algorithm.
type Kind uint8

const (
	// None stores artifacts as written.
	None Kind = iota
	// Zstd uses zstd frames (better ratio).
	Zstd
	// LZ4 uses lz4 frames (faster).
	LZ4
)

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Extension returns the file suffix appended to artifact names.
func (k Kind) Extension() string {
	switch k {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseKind parses a configuration name. The empty string means None.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("compress: unknown kind %q", s)
	}
}

// KindFromName infers the kind from an artifact name's extension.
func KindFromName(name string) Kind {
	switch path.Ext(name) {
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses a whole buffer.
func Encode(data []byte, k Kind) ([]byte, error) {
	switch k {
	case None:
		return data, nil
	case Zstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("compress: unknown kind %d", k)
	}
}

// Decode reverses Encode.
func Decode(data []byte, k Kind) ([]byte, error) {
	switch k {
	case None:
		return data, nil
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(data, nil)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("compress: unknown kind %d", k)
	}
}

type writeCloser struct {
	enc  io.WriteCloser
	dest io.WriteCloser
}

func (w *writeCloser) Write(p []byte) (int, error) { return w.enc.Write(p) }

// Close flushes the final frame and closes the destination.
func (w *writeCloser) Close() error {
	if err := w.enc.Close(); err != nil {
		_ = w.dest.Close()
		return err
	}
	return w.dest.Close()
}

// NewWriter returns a writer compressing into dest. Closing it closes dest.
func NewWriter(dest io.WriteCloser, k Kind) (io.WriteCloser, error) {
	switch k {
	case None:
		return dest, nil
	case Zstd:
		enc, err := zstd.NewWriter(dest, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return &writeCloser{enc: enc, dest: dest}, nil
	case LZ4:
		return &writeCloser{enc: lz4.NewWriter(dest), dest: dest}, nil
	default:
		return nil, fmt.Errorf("compress: unknown kind %d", k)
	}
}

// NewReader returns a reader decompressing src.
func NewReader(src io.Reader, k Kind) (io.ReadCloser, error) {
	switch k {
	case None:
		return io.NopCloser(src), nil
	case Zstd:
		dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(src)), nil
	default:
		return nil, fmt.Errorf("compress: unknown kind %d", k)
	}
}
