package capture

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd implements Codec for Zstandard files.
type Zstd struct {
	// Level is the compression level. If 0, defaults to zstd.SpeedDefault.
	Level zstd.EncoderLevel
}

func (z Zstd) Type() Compression {
	return CmpZstd
}

func (z Zstd) Ext() string {
	return ".zst"
}

func (z Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func (z Zstd) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := z.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
}
