package capture

import (
	"io"

	"github.com/golang/snappy"
)

// Snappy implements Codec for files in the snappy framing format.
type Snappy struct{}

func (Snappy) Type() Compression {
	return CmpSnappy
}

func (Snappy) Ext() string {
	return ".sz"
}

func (Snappy) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

func (Snappy) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
