//go:build unix

// Package mmap provides platform-specific helpers for mapping anonymous,
// garbage-collector-invisible memory.
package mmap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// OffHeap reports whether Map returns memory outside the Go heap.
const OffHeap = true

// PageSize returns the allocation granularity of Map.
func PageSize() int {
	return unix.Getpagesize()
}

// Map returns size bytes of zeroed read/write memory. size must be positive.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes: %w", size, err)
	}
	return data, nil
}

// Unmap releases memory returned by Map. data must be the exact slice (or a
// slice with the same base and length) that Map returned.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
