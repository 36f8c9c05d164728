package compression

import "github.com/klauspost/compress/zstd"

// ZstdCompressor is the default codec for annotation bodies.
type ZstdCompressor struct {
	level zstd.EncoderLevel
}

func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: zstd.SpeedDefault}
}

func (z ZstdCompressor) Compress(data []byte) ([]byte, error) {
	level := z.level
	if level == 0 {
		level = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

func (z ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}
