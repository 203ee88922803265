package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Codec serializes shuffle blocks. A block is a []Pair[K, V] and is decoded
// into a pointer to the same type. Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// GobZstd encodes blocks with encoding/gob and compresses them with zstd.
// Keys and values must be gob-encodable (exported fields, no func or chan);
// pointers are flattened, so identity does not survive a shuffle.
type GobZstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewGobZstd returns a GobZstd codec compressing at the given level.
func NewGobZstd(level zstd.EncoderLevel) (*GobZstd, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("dataset: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("dataset: zstd decoder: %w", err)
	}

	return &GobZstd{enc: enc, dec: dec}, nil
}

// Marshal implements Codec.
func (g *GobZstd) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("dataset: gob encode: %w", err)
	}

	return g.enc.EncodeAll(buf.Bytes(), nil), nil
}

// Unmarshal implements Codec.
func (g *GobZstd) Unmarshal(data []byte, v any) error {
	raw, err := g.dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("dataset: zstd decode: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return fmt.Errorf("dataset: gob decode: %w", err)
	}

	return nil
}

// Close releases the encoder and decoder.
func (g *GobZstd) Close() error {
	g.dec.Close()

	return g.enc.Close()
}
