// Package binary provides bounds-checked little-endian field decoding over a
// windowed byte source. Both supported containers (RIFF-WAV, Wave64) are
// little-endian throughout, so only LE readers are provided.
package binary

import (
	"encoding/binary"
	"fmt"
)

// ByteSource serves byte-range views of an underlying file. The view returned
// by EnsureAccessible is only valid until the next call, so all readers in
// this package copy fields out before returning.
type ByteSource interface {
	Size() int64
	EnsureAccessible(off, length int64) ([]byte, error)
}

// Bytes copies length bytes at off out of the source. The what string names
// the field being read, for error context.
func Bytes(src ByteSource, off, length int64, what string) ([]byte, error) {
	view, err := src.EnsureAccessible(off, length)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", what, err)
	}
	buf := make([]byte, length)
	copy(buf, view)
	return buf, nil
}

// Tag reads a 4-byte chunk tag at off.
func Tag(src ByteSource, off int64, what string) (string, error) {
	view, err := src.EnsureAccessible(off, 4)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	return string(view), nil
}

// ReadLE reads a little-endian value of type T at the given offset.
//
// Example:
//
//	chunkSize, err := binary.ReadLE[uint32](acc, off+4, "chunk size")
func ReadLE[T uint16 | uint32 | uint64](src ByteSource, off int64, what string) (T, error) {
	var zero T
	var size int64

	switch any(zero).(type) {
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	view, err := src.EnsureAccessible(off, size)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", what, err)
	}

	var val T
	switch any(zero).(type) {
	case uint16:
		val = T(binary.LittleEndian.Uint16(view))
	case uint32:
		val = T(binary.LittleEndian.Uint32(view))
	case uint64:
		val = T(binary.LittleEndian.Uint64(view))
	}

	return val, nil
}
