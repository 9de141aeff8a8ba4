package audio

import (
	"errors"
	"io"
)

// FFmpeg specific whence flags passed to custom IO seek callbacks.
const (
	seekSize  = 0x10000
	seekForce = 0x20000
)

var errInvalidSeek = errors.New("seek out of range")

// memoryReader exposes a byte slice through read and seek callbacks. Seeking
// to exactly the end is allowed; anything outside [0, len] is rejected.
type memoryReader struct {
	data []byte
	pos  int64
}

func newMemoryReader(data []byte) *memoryReader {
	return &memoryReader{data: data}
}

func (r *memoryReader) Read(p []byte) (int, error) {
	if r.pos >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += int64(n)
	return n, nil
}

func (r *memoryReader) Seek(offset int64, whence int) (int64, error) {
	whence &^= seekForce
	size := int64(len(r.data))

	var target int64
	switch whence {
	case seekSize:
		return size, nil
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		target = size + offset
	default:
		return 0, errInvalidSeek
	}
	if target < 0 || target > size {
		return 0, errInvalidSeek
	}
	r.pos = target
	return target, nil
}
