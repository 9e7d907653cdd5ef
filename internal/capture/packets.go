package capture

import (
	"fmt"
	"io"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/languages/go/errors"
)

// Packets reads fixed size packets from a stream.
type Packets struct {
	r   io.Reader
	buf []byte
	n   int64
}

// NewPackets returns a Packets that reads "size" byte packets from "r".
func NewPackets(r io.Reader, size int) *Packets {
	if size <= 0 {
		panic(fmt.Sprintf("capture.NewPackets: size must be > 0, got %d", size))
	}
	return &Packets{r: r, buf: make([]byte, size)}
}

// Next returns the next packet. The returned slice is reused by the following call.
// At the end of the stream io.EOF is returned. A stream that ends part way through a
// packet returns an error wrapping io.ErrUnexpectedEOF.
func (p *Packets) Next() ([]byte, error) {
	_, err := io.ReadFull(p.r, p.buf)
	switch err {
	case nil:
	case io.EOF:
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		return nil, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeFS,
			fmt.Errorf("packet %d is truncated: %w", p.n, err),
		)
	default:
		return nil, errors.E(context.Background(), errors.CatUser, errors.TypeFS, err)
	}
	p.n++
	return p.buf, nil
}

// Count is the number of packets returned so far.
func (p *Packets) Count() int64 {
	return p.n
}
