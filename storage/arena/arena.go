package arena

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/joshuapare/strkit/internal/buf"
	"github.com/joshuapare/strkit/internal/logger"
	"github.com/joshuapare/strkit/internal/mmap"
	"github.com/joshuapare/strkit/storage"
)

const (
	// DefaultChunkSize is the mapping size used for ordinary allocations.
	DefaultChunkSize = 64 * 1024

	// slotAlign is the alignment of every slot.
	slotAlign = 8
)

// ErrChunkSize indicates a chunk size that is not a positive multiple of the page size.
var ErrChunkSize = errors.New("arena: chunk size must be a positive multiple of the page size")

// chunk is one mapping. It is the Base anchor of every handle carved from it.
type chunk struct {
	data      []byte
	endBlocks int // bump pointer: offset of the next free byte
	live      int // slots handed out and not yet released
}

// Processor is a bump-pointer arena over off-heap chunks.
type Processor struct {
	mu        sync.Mutex
	chunkSize int
	current   *chunk
	chunks    map[*chunk]struct{}

	liveSlots   int64
	mappedBytes int64
}

// Stats is a snapshot of the arena's accounting.
type Stats struct {
	Chunks      int   // mappings currently held
	LiveSlots   int64 // handles allocated and not yet released
	MappedBytes int64 // bytes mapped across all chunks
}

// New returns an arena with the given chunk size. Zero selects DefaultChunkSize.
func New(chunkSize int) (*Processor, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 || chunkSize%mmap.PageSize() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrChunkSize, chunkSize)
	}
	return &Processor{
		chunkSize: chunkSize,
		chunks:    make(map[*chunk]struct{}),
	}, nil
}

// pointer reinterprets the ID's bits as the slot address. Chunks live outside
// the Go heap.
func pointer(h storage.Handle) unsafe.Pointer {
	addr := uintptr(h.ID)
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func units(h storage.Handle, n int) []uint16 {
	return unsafe.Slice((*uint16)(pointer(h)), n)
}

// Allocate returns a slot for n units. Slots are zeroed only when their chunk
// is fresh; rewound chunks are cleared here.
func (p *Processor) Allocate(n int) (storage.Handle, error) {
	need, err := buf.UnitBytes(n)
	if err != nil {
		return storage.Invalid, fmt.Errorf("%w: %v", storage.ErrTooLarge, err)
	}
	if need < slotAlign {
		need = slotAlign
	}
	aligned, ok := buf.AlignUp(need, slotAlign)
	if !ok {
		return storage.Invalid, fmt.Errorf("%w: %d bytes", storage.ErrTooLarge, need)
	}
	need = aligned

	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.current
	if need > p.chunkSize {
		// Dedicated chunk; the current chunk keeps serving small requests.
		if c, err = p.mapChunk(need); err != nil {
			return storage.Invalid, err
		}
	} else if c == nil || c.endBlocks+need > len(c.data) {
		if err := p.grow(); err != nil {
			return storage.Invalid, err
		}
		c = p.current
	}

	off := c.endBlocks
	c.endBlocks += need
	c.live++
	p.liveSlots++

	slot := c.data[off : off+need]
	clear(slot)
	return storage.Handle{
		ID:   uint64(uintptr(unsafe.Pointer(&slot[0]))),
		Base: c,
		Size: int64(need),
	}, nil
}

// grow retires the current chunk and maps a fresh one.
func (p *Processor) grow() error {
	old := p.current
	c, err := p.mapChunk(p.chunkSize)
	if err != nil {
		return err
	}
	p.current = c
	if old != nil && old.live == 0 {
		p.unmapChunk(old)
	}
	return nil
}

func (p *Processor) mapChunk(size int) (*chunk, error) {
	size, ok := buf.AlignUp(size, mmap.PageSize())
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes", storage.ErrTooLarge, size)
	}
	data, err := mmap.Map(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrOutOfMemory, err)
	}
	c := &chunk{data: data}
	p.chunks[c] = struct{}{}
	p.mappedBytes += int64(size)
	logger.Debug("arena chunk mapped", slog.Int("bytes", size), slog.Int("chunks", len(p.chunks)))
	return c, nil
}

func (p *Processor) unmapChunk(c *chunk) {
	size := len(c.data)
	if err := mmap.Unmap(c.data); err != nil {
		logger.Warn("arena chunk unmap failed", slog.Int("bytes", size), slog.Any("error", err))
	}
	delete(p.chunks, c)
	p.mappedBytes -= int64(size)
	c.data = nil
	logger.Debug("arena chunk unmapped", slog.Int("bytes", size), slog.Int("chunks", len(p.chunks)))
}

// AllocateFrom returns a slot holding a copy of src.
func (p *Processor) AllocateFrom(src []uint16) (storage.Handle, error) {
	h, err := p.Allocate(len(src))
	if err != nil {
		return storage.Invalid, err
	}
	copy(units(h, len(src)), src)
	return h, nil
}

// Clone copies src. Sources in any arena are copied memory to memory.
func (p *Processor) Clone(src storage.Source) (storage.Handle, error) {
	if _, ok := src.Processor().(*Processor); !ok {
		return storage.CloneElementwise(p, src)
	}
	n := src.Len()
	h, err := p.Allocate(n)
	if err != nil {
		return storage.Invalid, err
	}
	copy(units(h, n), units(src.Handle(), n))
	return h, nil
}

// SizeOf reports the aligned slot size of h.
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
	copy(dst, units(h, srcBegin+len(dst))[srcBegin:])
}

// EqualRange compares the first n units of two arena handles byte for byte.
func (p *Processor) EqualRange(a, b storage.Handle, n int) bool {
	if n == 0 {
		return true
	}
	return bytes.Equal(
		unsafe.Slice((*byte)(pointer(a)), n*buf.UnitSize),
		unsafe.Slice((*byte)(pointer(b)), n*buf.UnitSize),
	)
}

// Release returns h's slot. The owning chunk is unmapped when it becomes
// empty, or rewound when it is the current chunk.
func (p *Processor) Release(h storage.Handle) error {
	c, ok := h.Base.(*chunk)
	if !ok || c == nil || !h.Valid() {
		return storage.ErrBadHandle
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, owned := p.chunks[c]; !owned {
		return storage.ErrBadHandle
	}
	c.live--
	p.liveSlots--
	if c.live > 0 {
		return nil
	}
	if c == p.current {
		c.endBlocks = 0
		return nil
	}
	p.unmapChunk(c)
	return nil
}

// Stats returns the arena's current accounting.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Chunks:      len(p.chunks),
		LiveSlots:   p.liveSlots,
		MappedBytes: p.mappedBytes,
	}
}

var (
	_ storage.Processor = (*Processor)(nil)
	_ storage.Comparer  = (*Processor)(nil)
)
