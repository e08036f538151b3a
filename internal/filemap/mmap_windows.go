//go:build windows

package filemap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapRange maps [off, off+length) of f read-only. off must be aligned to the
// window alignment, which is a multiple of the allocation granularity.
func mapRange(f *os.File, off, length int64) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	// The view keeps the file mapped; the mapping object handle is not
	// needed once the view exists.
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ,
		uint32(off>>32), uint32(off), uintptr(length))
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

func unmapRange(data []byte) error {
	return windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0])))
}
