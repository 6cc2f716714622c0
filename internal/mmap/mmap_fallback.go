//go:build !unix

// Package mmap provides platform-specific helpers for mapping anonymous,
// garbage-collector-invisible memory.
package mmap

import (
	"fmt"
	"sync"
	"unsafe"
)

// OffHeap reports whether Map returns memory outside the Go heap.
const OffHeap = false

const fallbackPageSize = 4096

// pinned keeps fallback allocations reachable while callers address them by
// raw pointer.
var pinned = struct {
	sync.Mutex
	m map[unsafe.Pointer][]byte
}{m: make(map[unsafe.Pointer][]byte)}

// PageSize returns the allocation granularity of Map.
func PageSize() int {
	return fallbackPageSize
}

// Map allocates size bytes on the Go heap when anonymous mappings are not available.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid size %d", size)
	}
	data := make([]byte, size)
	pinned.Lock()
	pinned.m[unsafe.Pointer(&data[0])] = data
	pinned.Unlock()
	return data, nil
}

// Unmap drops the pin taken by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	pinned.Lock()
	delete(pinned.m, unsafe.Pointer(&data[0]))
	pinned.Unlock()
	return nil
}
