// Package compression provides the compressors used for stored annotation bodies.
package compression

// Compressor is the codec applied to annotation text before it reaches the
// database and after it is read back.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
