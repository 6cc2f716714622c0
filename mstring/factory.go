package mstring

import (
	"fmt"
	"runtime"

	"github.com/joshuapare/strkit/internal/unit"
	"github.com/joshuapare/strkit/storage"
)

// Factory builds Strings stored by one processor.
type Factory struct {
	proc        storage.Processor
	active      func() bool
	autoRelease bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithGate makes every constructor fail with ErrNotActive while active
// reports false.
func WithGate(active func() bool) FactoryOption {
	return func(f *Factory) { f.active = active }
}

// WithAutoRelease controls whether Strings release their storage
// automatically once unreachable. It is on by default.
func WithAutoRelease(on bool) FactoryOption {
	return func(f *Factory) { f.autoRelease = on }
}

// NewFactory returns a factory bound to p.
func NewFactory(p storage.Processor, opts ...FactoryOption) *Factory {
	f := &Factory{proc: p, autoRelease: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Processor returns the processor the factory allocates from.
func (f *Factory) Processor() storage.Processor { return f.proc }

// AutoRelease reports whether Strings from f release automatically.
func (f *Factory) AutoRelease() bool { return f.autoRelease }

func (f *Factory) check() error {
	if f.active != nil && !f.active() {
		return ErrNotActive
	}
	return nil
}

func (f *Factory) wrap(h storage.Handle, n int) *String {
	s := &String{length: n, c: &cell{proc: f.proc, handle: h}}
	if f.autoRelease {
		s.cleanup = runtime.AddCleanup(s, releaseCell, s.c)
	}
	return s
}

// FromUnits builds a String from value[offset:offset+count].
func (f *Factory) FromUnits(value []uint16, offset, count int) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, boundsError(offset)
	}
	if count < 0 {
		return nil, boundsError(count)
	}
	if offset > len(value)-count {
		return nil, boundsError(offset + count)
	}
	return f.fromUnits(value[offset : offset+count])
}

// FromAllUnits builds a String holding a copy of value.
func (f *Factory) FromAllUnits(value []uint16) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.fromUnits(value)
}

// FromString builds a String from the UTF-16 encoding of s.
func (f *Factory) FromString(s string) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.fromUnits(unit.FromString(s))
}

func (f *Factory) fromUnits(units []uint16) (*String, error) {
	h, err := f.proc.AllocateFrom(units)
	if err != nil {
		return nil, fmt.Errorf("mstring: allocate %d units: %w", len(units), err)
	}
	return f.wrap(h, len(units)), nil
}

// FromBytesHibyte builds a String whose units are hibyte<<8 | b[i] for
// b[offset:offset+count]. It exists for legacy 8-bit data.
func (f *Factory) FromBytesHibyte(b []byte, hibyte, offset, count int) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, boundsError(count)
	}
	if offset < 0 {
		return nil, boundsError(offset)
	}
	if offset > len(b)-count {
		return nil, boundsError(offset + count)
	}
	h, err := f.proc.Allocate(count)
	if err != nil {
		return nil, fmt.Errorf("mstring: allocate %d units: %w", count, err)
	}
	high := uint16(hibyte << 8)
	for i := count - 1; i >= 0; i-- {
		f.proc.Write(h, i, high|uint16(b[offset+i]))
	}
	return f.wrap(h, count), nil
}

// FromBytes decodes b with the named character encoding.
func (f *Factory) FromBytes(b []byte, encoding string) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	units, err := decode(b, encoding)
	if err != nil {
		return nil, err
	}
	return f.fromUnits(units)
}

// FromText copies t into storage owned by f's processor. A String source is
// handed to the processor's Clone, which may copy storage to storage; its
// cached hash carries over.
func (f *Factory) FromText(t Text) (*String, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nullArgument("text")
	}
	a := t.accessor()
	if a.owned == nil {
		return f.fromUnits(a.borrowed)
	}
	src := a.owned
	h, err := f.proc.Clone(src)
	runtime.KeepAlive(src)
	if err != nil {
		return nil, fmt.Errorf("mstring: clone %d units: %w", src.length, err)
	}
	s := f.wrap(h, src.length)
	s.hash.Store(src.hash.Load())
	return s, nil
}
