// Package mmapfile is the "memory-mapped or paged file abstraction supplied
// externally" that the landmark weight table, subnetwork table and
// eccentricity store are built on top of. It owns only the raw byte-addressed
// backing store — growing it, flushing it, mapping/unmapping it — and leaves
// row/column layout to its callers, mirroring how pkg/graph's binary.go keeps
// file I/O separate from the CHGraph layout it serialises.
package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a growable memory-mapped region backed by a real file on disk.
// Its logical length always matches the file's on-disk size exactly — no
// page-boundary rounding — so a caller that sizes the file to its own
// record layout (e.g. N nodes * recordSize) can recover that exact count
// from Len() after a reopen. Not safe for concurrent use without external
// synchronisation, matching spec.md §5's "callers synchronise externally"
// contract for the stores built on top of it.
type File struct {
	f    *os.File
	data []byte
	path string
}

// Create creates (truncating any existing file) a new mmap'd file sized to
// exactly initialSize bytes.
func Create(path string, initialSize int64) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: create %s: %w", path, err)
	}

	mf := &File{f: f, path: path}
	if err := mf.growTo(initialSize); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return mf, nil
}

// Open maps an existing file read-write without truncating it.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: stat %s: %w", path, err)
	}

	mf := &File{f: f, path: path}
	if info.Size() > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
		}
		mf.data = data
	}
	return mf, nil
}

// Bytes returns the current mapped region. The slice is only valid until the
// next EnsureCapacity call, which may remap to a new address.
func (mf *File) Bytes() []byte {
	return mf.data
}

// Len returns the current mapped size in bytes.
func (mf *File) Len() int64 {
	return int64(len(mf.data))
}

// EnsureCapacity grows the backing file and remaps it if n exceeds the
// current mapped size. A no-op when the file is already large enough.
func (mf *File) EnsureCapacity(n int64) error {
	if n <= mf.Len() {
		return nil
	}
	return mf.growTo(n)
}

func (mf *File) growTo(n int64) error {
	if mf.data != nil {
		if err := unix.Munmap(mf.data); err != nil {
			return fmt.Errorf("mmapfile: munmap %s: %w", mf.path, err)
		}
		mf.data = nil
	}

	if err := mf.f.Truncate(n); err != nil {
		return fmt.Errorf("mmapfile: truncate %s: %w", mf.path, err)
	}

	if n == 0 {
		return nil
	}

	data, err := unix.Mmap(int(mf.f.Fd()), 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmapfile: mmap %s: %w", mf.path, err)
	}
	mf.data = data
	return nil
}

// Flush is idempotent: it syncs dirty pages to disk and is safe to call
// repeatedly (msync/fsync on an unchanged mapping is a cheap no-op at the
// kernel level, matching spec.md §8's "calling flush twice is a no-op").
func (mf *File) Flush() error {
	if mf.data != nil {
		if err := unix.Msync(mf.data, unix.MS_SYNC); err != nil {
			return fmt.Errorf("mmapfile: msync %s: %w", mf.path, err)
		}
	}
	return mf.f.Sync()
}

// Close unmaps and closes the file. Idempotent.
func (mf *File) Close() error {
	if mf.f == nil {
		return nil
	}
	var err error
	if mf.data != nil {
		err = unix.Munmap(mf.data)
		mf.data = nil
	}
	if cerr := mf.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	mf.f = nil
	if err != nil {
		return fmt.Errorf("mmapfile: close %s: %w", mf.path, err)
	}
	return nil
}
