package blockcard

import (
	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	decoder, _ = zstd.NewReader(nil)
)

// Frame blobs are stored zstd compressed
func compress(b []byte) []byte {
	return encoder.EncodeAll(b, make([]byte, 0, len(b)))
}

func decompress(b []byte) ([]byte, error) {
	return decoder.DecodeAll(b, nil)
}
