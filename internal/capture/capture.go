// Package capture opens transport stream capture files, which may be compressed, and
// splits them into packets.
package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gostdlib/base/concurrency/sync"
	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/languages/go/errors"
)

// Compression is the compression a capture file is stored with.
type Compression uint8

const (
	CmpNone   Compression = 0
	CmpGzip   Compression = 1
	CmpSnappy Compression = 2
	CmpZstd   Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CmpNone:
		return "none"
	case CmpGzip:
		return "gzip"
	case CmpSnappy:
		return "snappy"
	case CmpZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Codec wraps streams with a compression algorithm.
type Codec interface {
	// NewReader returns a reader of the decompressed contents of "r".
	NewReader(r io.Reader) (io.ReadCloser, error)
	// NewWriter returns a writer that compresses into "w". Close must be called to flush it.
	NewWriter(w io.Writer) (io.WriteCloser, error)
	// Type is the compression the Codec implements.
	Type() Compression
	// Ext is the file extension, with the leading dot, the Codec is used for.
	Ext() string
}

var (
	registry   = map[Compression]Codec{}
	byExt      = map[string]Codec{}
	registryMu sync.RWMutex
)

// Register adds a Codec to the registry, replacing any Codec with the same type or extension.
func Register(c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.Type()] = c
	byExt[strings.ToLower(c.Ext())] = c
}

// Get returns the Codec for "t", or nil if not found.
func Get(t Compression) Codec {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[t]
}

// ForPath returns the Codec for the extension of "path". A path with no registered
// extension is not compressed and nil is returned.
func ForPath(path string) Codec {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return byExt[strings.ToLower(filepath.Ext(path))]
}

// NewReader wraps "r" with the decompressor for "t". CmpNone returns "r" as is.
func NewReader(t Compression, r io.Reader) (io.ReadCloser, error) {
	if t == CmpNone {
		return io.NopCloser(r), nil
	}
	c := Get(t)
	if c == nil {
		return nil, errors.E(context.Background(), errors.CatUser, errors.TypeParameter, fmt.Errorf("codec not registered for %s", t))
	}
	return c.NewReader(r)
}

// NewWriter wraps "w" with the compressor for "t". CmpNone returns "w" with a no-op Close.
func NewWriter(t Compression, w io.Writer) (io.WriteCloser, error) {
	if t == CmpNone {
		return nopWriteCloser{w}, nil
	}
	c := Get(t)
	if c == nil {
		return nil, errors.E(context.Background(), errors.CatUser, errors.TypeParameter, fmt.Errorf("codec not registered for %s", t))
	}
	return c.NewWriter(w)
}

// Open opens the capture at "path", decompressing it if its extension has a Codec.
// A "path" of "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(context.Background(), errors.CatUser, errors.TypeFS, err)
	}
	c := ForPath(path)
	if c == nil {
		return f, nil
	}
	r, err := c.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.E(context.Background(), errors.CatUser, errors.TypeFS, fmt.Errorf("opening %s capture %q: %w", c.Type(), path, err))
	}
	return fileReader{ReadCloser: r, f: f}, nil
}

// fileReader closes the decompressor and then the file under it.
type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r fileReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.f.Close(); err == nil {
		err = ferr
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func init() {
	Register(Gzip{})
	Register(Snappy{})
	Register(Zstd{})
}
