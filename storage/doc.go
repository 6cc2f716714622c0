// Package storage defines the contract between a string and the memory that
// holds its UTF-16 code units.
//
// # Overview
//
// A Processor turns a unit count, a slice of units or an existing string into
// a Handle, and gives indexed and bulk access to the storage behind it. The
// string engine in package mstring never touches memory directly; every read
// and write goes through the Processor bound to the string.
//
// # Handles
//
// A Handle is the triple (ID, Base, Size):
//
//   - ID: opaque 64-bit token, the only value required to address storage
//   - Base: backend-defined ownership anchor (nil when none is needed)
//   - Size: bytes actually allocated, which may exceed 2*length
//
// Logical length is owned by the string, never derived from Size.
//
// # Implementations
//
//   - storage/offheap: anonymous mmap per allocation, Base is nil
//   - storage/heap: Go-managed []uint16, Base is the slice
//   - storage/arena: bump allocation inside mmap'd chunks
//
// # Concurrency
//
// Processors perform no synchronization. All calls for a single handle must
// be serialized by the caller. Concurrent Read calls on distinct or identical
// handles are safe for the bundled backends.
//
// # Bounds
//
// Processors do not check indexes. The engine validates every index against
// the string length before calling Read, Write or Copy.
package storage
