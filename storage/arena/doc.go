// Package arena provides a storage.Processor that carves string storage out of
// large off-heap chunks with a bump pointer.
//
// # Overview
//
// Many short strings each paying for a whole page is wasteful, so the arena
// maps chunks (64 KiB by default) and hands out 8-byte aligned slots from the
// current chunk:
//
//   - O(1) allocation: pure bump pointer inside the current chunk
//   - Requests larger than a chunk get a dedicated chunk of their own
//   - Release decrements the chunk's live count; a chunk is unmapped once its
//     last slot is released (the current chunk is rewound instead)
//
// Handles carry the slot address in ID and the owning *chunk in Base. Size is
// the aligned slot size.
//
// # Concurrency
//
// Allocation and release take a mutex because the bump pointer is shared by
// every handle. Read, Write and Copy are lock-free.
package arena
