// Package heap provides a storage.Processor backed by Go-managed []uint16
// slices. The slice is the handle's Base anchor; the garbage collector owns
// the memory and Release only drops the processor's accounting.
package heap

import (
	"fmt"
	"sync/atomic"

	"github.com/joshuapare/strkit/internal/buf"
	"github.com/joshuapare/strkit/storage"
)

// Processor allocates code-unit storage on the Go heap.
type Processor struct {
	nextID atomic.Uint64
	live   atomic.Int64
}

// New returns a heap processor.
func New() *Processor {
	return &Processor{}
}

func (p *Processor) handle(units []uint16) storage.Handle {
	p.live.Add(1)
	return storage.Handle{
		ID:   p.nextID.Add(1),
		Base: units,
		Size: int64(cap(units)) * buf.UnitSize,
	}
}

func base(h storage.Handle) []uint16 {
	return h.Base.([]uint16)
}

// Allocate returns zeroed storage for n units.
func (p *Processor) Allocate(n int) (storage.Handle, error) {
	if _, err := buf.UnitBytes(n); err != nil {
		return storage.Invalid, fmt.Errorf("%w: %v", storage.ErrTooLarge, err)
	}
	return p.handle(make([]uint16, n)), nil
}

// AllocateFrom returns storage holding a copy of src.
func (p *Processor) AllocateFrom(src []uint16) (storage.Handle, error) {
	units := make([]uint16, len(src))
	copy(units, src)
	return p.handle(units), nil
}

// Clone copies src. Any heap-backed source is copied slice to slice.
func (p *Processor) Clone(src storage.Source) (storage.Handle, error) {
	if _, ok := src.Processor().(*Processor); ok {
		return p.AllocateFrom(base(src.Handle())[:src.Len()])
	}
	return storage.CloneElementwise(p, src)
}

// SizeOf reports the capacity of the backing slice in bytes.
func (p *Processor) SizeOf(h storage.Handle) int64 {
	return int64(cap(base(h))) * buf.UnitSize
}

func (p *Processor) Read(h storage.Handle, i int) uint16 {
	return base(h)[i]
}

func (p *Processor) Write(h storage.Handle, i int, v uint16) {
	base(h)[i] = v
}

func (p *Processor) Copy(h storage.Handle, srcBegin int, dst []uint16) {
	copy(dst, base(h)[srcBegin:])
}

// EqualRange compares the first n units of two heap handles.
func (p *Processor) EqualRange(a, b storage.Handle, n int) bool {
	x, y := base(a)[:n], base(b)[:n]
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Release drops the handle. The slice itself is reclaimed by the garbage collector.
func (p *Processor) Release(h storage.Handle) error {
	if _, ok := h.Base.([]uint16); !ok {
		return storage.ErrBadHandle
	}
	p.live.Add(-1)
	return nil
}

// Live returns the number of handles allocated and not yet released.
func (p *Processor) Live() int64 {
	return p.live.Load()
}

var (
	_ storage.Processor = (*Processor)(nil)
	_ storage.Comparer  = (*Processor)(nil)
)
