// Package offheap provides the reference storage.Processor: every string gets
// its own anonymous memory mapping outside the Go heap.
//
// Handles carry the mapping's base address in ID and a nil Base. Size is the
// mapped length, rounded up to the page size, so it is usually larger than
// twice the string length.
//
// The memory is invisible to the garbage collector. It is freed only by
// Release; reading a released handle is a use-after-free.
package offheap

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/strkit/internal/buf"
	"github.com/joshuapare/strkit/internal/mmap"
	"github.com/joshuapare/strkit/storage"
)

// emptyID addresses zero-length storage. No mapping backs it.
const emptyID = ^uint64(0)

// Processor allocates one mapping per string.
type Processor struct {
	pageSize int

	live  atomic.Int64
	bytes atomic.Int64
	total atomic.Int64
}

// Stats is a snapshot of a processor's allocation counters.
type Stats struct {
	Live       int64 // handles allocated and not yet released
	LiveBytes  int64 // bytes mapped for live handles
	TotalAlloc int64 // handles allocated since creation
}

// New returns an off-heap processor.
func New() *Processor {
	return &Processor{pageSize: mmap.PageSize()}
}

// pointer converts a handle ID back to the mapping's address. The mapping is
// not Go-heap memory, so the conversion does not hide a pointer from the GC.
func pointer(h storage.Handle) unsafe.Pointer {
	addr := uintptr(h.ID)
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func units(h storage.Handle, n int) []uint16 {
	return unsafe.Slice((*uint16)(pointer(h)), n)
}

func bytesOf(h storage.Handle) []byte {
	return unsafe.Slice((*byte)(pointer(h)), int(h.Size))
}

// Allocate maps storage for n units. The returned memory is zeroed.
func (p *Processor) Allocate(n int) (storage.Handle, error) {
	need, err := buf.UnitBytes(n)
	if err != nil {
		return storage.Invalid, fmt.Errorf("%w: %v", storage.ErrTooLarge, err)
	}
	if need == 0 {
		p.total.Add(1)
		p.live.Add(1)
		return storage.Handle{ID: emptyID, Size: 0}, nil
	}
	size, ok := buf.AlignUp(need, p.pageSize)
	if !ok {
		return storage.Invalid, fmt.Errorf("%w: %d bytes", storage.ErrTooLarge, need)
	}
	data, err := mmap.Map(size)
	if err != nil {
		return storage.Invalid, fmt.Errorf("%w: %v", storage.ErrOutOfMemory, err)
	}

	p.total.Add(1)
	p.live.Add(1)
	p.bytes.Add(int64(size))
	return storage.Handle{
		ID:   uint64(uintptr(unsafe.Pointer(&data[0]))),
		Size: int64(size),
	}, nil
}

// AllocateFrom maps storage and copies src into it.
func (p *Processor) AllocateFrom(src []uint16) (storage.Handle, error) {
	h, err := p.Allocate(len(src))
	if err != nil {
		return storage.Invalid, err
	}
	if len(src) > 0 {
		copy(units(h, len(src)), src)
	}
	return h, nil
}

// Clone copies src. Sources backed by any off-heap processor are copied
// memory to memory; others are read unit by unit.
func (p *Processor) Clone(src storage.Source) (storage.Handle, error) {
	if _, ok := src.Processor().(*Processor); !ok {
		return storage.CloneElementwise(p, src)
	}
	n := src.Len()
	h, err := p.Allocate(n)
	if err != nil {
		return storage.Invalid, err
	}
	if n > 0 {
		copy(units(h, n), units(src.Handle(), n))
	}
	return h, nil
}

// SizeOf reports the mapped length of h.
func (p *Processor) SizeOf(h storage.Handle) int64 {
	return h.Size
}

func (p *Processor) Read(h storage.Handle, i int) uint16 {
	return *(*uint16)(unsafe.Add(pointer(h), i*buf.UnitSize))
}

func (p *Processor) Write(h storage.Handle, i int, v uint16) {
	*(*uint16)(unsafe.Add(pointer(h), i*buf.UnitSize)) = v
}

func (p *Processor) Copy(h storage.Handle, srcBegin int, dst []uint16) {
	if len(dst) == 0 {
		return
	}
	copy(dst, units(h, srcBegin+len(dst))[srcBegin:])
}

// EqualRange compares the first n units of two off-heap handles byte for byte.
func (p *Processor) EqualRange(a, b storage.Handle, n int) bool {
	if n == 0 {
		return true
	}
	return bytes.Equal(
		unsafe.Slice((*byte)(pointer(a)), n*buf.UnitSize),
		unsafe.Slice((*byte)(pointer(b)), n*buf.UnitSize),
	)
}

// Release unmaps h.
func (p *Processor) Release(h storage.Handle) error {
	if !h.Valid() || h.ID == storage.InvalidID {
		return storage.ErrBadHandle
	}
	if h.Size == 0 {
		p.live.Add(-1)
		return nil
	}
	if err := mmap.Unmap(bytesOf(h)); err != nil {
		return fmt.Errorf("offheap: release: %w", err)
	}
	p.live.Add(-1)
	p.bytes.Add(-h.Size)
	return nil
}

// Stats returns the current allocation counters.
func (p *Processor) Stats() Stats {
	return Stats{
		Live:       p.live.Load(),
		LiveBytes:  p.bytes.Load(),
		TotalAlloc: p.total.Load(),
	}
}

var (
	_ storage.Processor = (*Processor)(nil)
	_ storage.Comparer  = (*Processor)(nil)
)
