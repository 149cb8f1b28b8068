package embedded

import (
	"errors"
	"io"
)

// ErrSeekUnsupported is returned by Reader.Seek. Embedded readers are
// forward-only, matching what the pipeline's loaders need.
var ErrSeekUnsupported = errors.New("seek is not supported on embedded assets")

// Reader reads one embedded payload sequentially. Each Reader owns its own
// cursor, so concurrent reads of the same asset never interfere. The payload
// itself is owned by the Table and is never copied or mutated.
type Reader struct {
	path string
	data []byte
	off  int
}

// NewReader creates a reader over one payload. The data slice is borrowed,
// not copied.
func NewReader(path string, data []byte) *Reader {
	return &Reader{path: path, data: data}
}

// Read copies up to len(buf) bytes into buf and advances the cursor. At
// end-of-data it returns (0, io.EOF); a zero-length payload hits that on the
// first call. Read never blocks, the payload is already resident.
func (r *Reader) Read(buf []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(buf, r.data[r.off:])
	r.off += n
	return n, nil
}

// Seek is not supported on embedded assets.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return 0, ErrSeekUnsupported
}

// Close releases nothing, the payload belongs to the table, but satisfies
// io.ReadCloser so embedded readers are interchangeable with file handles.
func (r *Reader) Close() error {
	return nil
}

// Path returns the asset path this reader was opened for.
func (r *Reader) Path() string {
	return r.path
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.off >= len(r.data) {
		return 0
	}
	return len(r.data) - r.off
}
