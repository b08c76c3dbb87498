package internal

import (
	"fmt"
	"syscall"

	"github.com/neurlang/wayland/wl"
	"golang.org/x/sys/unix"
)

// ShmBuffer is one shared-memory pixel buffer, pre-filled with opaque black.
// A fresh buffer is allocated for every show; nothing is reused across
// hide/show cycles.
type ShmBuffer struct {
	buffer *wl.Buffer
	data   []byte
	fd     int
	size   int
}

// createShmBuffer allocates a width x height XRGB8888 buffer backed by an
// anonymous memfd. The mapping of a freshly truncated memfd is zero-filled,
// and all-zero bytes encode opaque black in XRGB8888, so no pixel data needs
// to be written.
func createShmBuffer(shm *wl.Shm, width, height uint32) (*ShmBuffer, error) {
	stride := int(width) * 4
	size := stride * int(height)

	fd, err := unix.MemfdCreate("blkout-shm", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("failed to create memfd: %w", err)
	}

	if err = syscall.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to truncate memfd: %w", err)
	}

	data, err := syscall.Mmap(fd, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to mmap: %w", err)
	}

	pool, err := shm.CreatePool(uintptr(fd), int32(size))
	if err != nil {
		syscall.Munmap(data)
		unix.Close(fd)
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	buffer, err := pool.CreateBuffer(0, int32(width), int32(height), int32(stride), wl.ShmFormatXrgb8888)
	// The pool reference is no longer needed once the buffer exists
	pool.Destroy()
	if err != nil {
		syscall.Munmap(data)
		unix.Close(fd)
		return nil, fmt.Errorf("failed to create buffer: %w", err)
	}

	return &ShmBuffer{
		buffer: buffer,
		data:   data,
		fd:     fd,
		size:   size,
	}, nil
}

// Destroy releases the buffer object, the mapping and the backing
// descriptor. Safe to call with any subset of them missing.
func (b *ShmBuffer) Destroy() {
	if b == nil {
		return
	}
	if b.buffer != nil {
		b.buffer.Destroy()
		b.buffer = nil
	}
	if b.data != nil {
		syscall.Munmap(b.data)
		b.data = nil
	}
	if b.fd >= 0 {
		unix.Close(b.fd)
		b.fd = -1
	}
}
