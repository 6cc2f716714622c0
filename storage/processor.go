package storage

import "errors"

const (
	// InvalidID marks a handle whose storage has been released.
	InvalidID uint64 = 0
	// InvalidSize marks a handle whose storage has been released.
	InvalidSize int64 = -1
)

var (
	// ErrOutOfMemory indicates the backend could not satisfy an allocation.
	ErrOutOfMemory = errors.New("storage: allocation failed")

	// ErrBadHandle indicates a handle that the processor does not own.
	ErrBadHandle = errors.New("storage: bad handle")

	// ErrTooLarge indicates a requested size that overflows the backend limits.
	ErrTooLarge = errors.New("storage: requested size too large")
)

// Handle addresses one allocation made by a Processor.
type Handle struct {
	ID   uint64
	Base any
	Size int64
}

// Valid reports whether h still refers to live storage.
func (h Handle) Valid() bool {
	return h.Size != InvalidSize
}

// Invalid is the handle value left behind after release.
var Invalid = Handle{ID: InvalidID, Base: nil, Size: InvalidSize}

// Source is a string whose content a Processor can copy from.
//
// UnitAt reads through the source's own processor without bounds checks
// beyond [0, Len()).
type Source interface {
	Processor() Processor
	Handle() Handle
	Len() int
	UnitAt(i int) uint16
}

// Processor allocates, reads, writes and frees code-unit storage.
type Processor interface {
	// Allocate returns uninitialized storage for n code units.
	Allocate(n int) (Handle, error)

	// AllocateFrom returns storage holding a copy of src.
	AllocateFrom(src []uint16) (Handle, error)

	// Clone returns storage holding a copy of src's content. When src is
	// backed by a compatible processor the copy may be storage to storage;
	// otherwise it must read src element-wise.
	Clone(src Source) (Handle, error)

	// SizeOf reports the bytes actually allocated for h.
	SizeOf(h Handle) int64

	// Read returns the unit at index i.
	Read(h Handle, i int) uint16

	// Write stores v at index i.
	Write(h Handle, i int, v uint16)

	// Copy fills dst with len(dst) units starting at srcBegin.
	Copy(h Handle, srcBegin int, dst []uint16)

	// Release frees the storage. It is called at most once per handle.
	Release(h Handle) error
}

// Comparer is implemented by processors that can compare the first n units
// of two of their own handles without per-unit Read calls.
type Comparer interface {
	EqualRange(a, b Handle, n int) bool
}

// CloneElementwise is the fallback Clone strategy: allocate through p and
// copy src one unit at a time.
func CloneElementwise(p Processor, src Source) (Handle, error) {
	n := src.Len()
	h, err := p.Allocate(n)
	if err != nil {
		return Invalid, err
	}
	for i := range n {
		p.Write(h, i, src.UnitAt(i))
	}
	return h, nil
}
