//go:build unix

package filemap

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapRange maps [off, off+length) of f read-only. off must be aligned to the
// window alignment, which is a multiple of the page size on every supported
// platform.
func mapRange(f *os.File, off, length int64) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), off, int(length), unix.PROT_READ, unix.MAP_SHARED)
}

func unmapRange(data []byte) error {
	return unix.Munmap(data)
}
