package capture

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip implements Codec for gzip files.
type Gzip struct {
	// Level is a gzip compression level. The zero value selects gzip.DefaultCompression,
	// so gzip.NoCompression can't be asked for here; set Store for that.
	Level int
	// Store writes deflate stored blocks (gzip.NoCompression) and ignores Level.
	Store bool
}

func (g Gzip) Type() Compression {
	return CmpGzip
}

func (g Gzip) Ext() string {
	return ".gz"
}

func (g Gzip) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (g Gzip) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := g.Level
	switch {
	case g.Store:
		level = gzip.NoCompression
	case level == 0:
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}
