// Package testutil provides helpers shared by strkit tests.
package testutil

import (
	"sync/atomic"

	"github.com/joshuapare/strkit/storage"
)

// Counts is a snapshot of the calls a CountingProcessor has seen.
type Counts struct {
	Allocates int64
	Clones    int64
	Reads     int64
	Writes    int64
	Copies    int64
	Compares  int64
	Releases  int64
}

// CountingProcessor wraps a storage.Processor and counts every call. It
// always implements storage.Comparer, delegating to the wrapped processor
// when it can and reading unit by unit otherwise.
type CountingProcessor struct {
	inner storage.Processor

	allocates atomic.Int64
	clones    atomic.Int64
	reads     atomic.Int64
	writes    atomic.Int64
	copies    atomic.Int64
	compares  atomic.Int64
	releases  atomic.Int64
}

var _ storage.Comparer = (*CountingProcessor)(nil)

// NewCountingProcessor wraps p.
func NewCountingProcessor(p storage.Processor) *CountingProcessor {
	return &CountingProcessor{inner: p}
}

// Inner returns the wrapped processor.
func (c *CountingProcessor) Inner() storage.Processor { return c.inner }

// Counts returns the current call counts.
func (c *CountingProcessor) Counts() Counts {
	return Counts{
		Allocates: c.allocates.Load(),
		Clones:    c.clones.Load(),
		Reads:     c.reads.Load(),
		Writes:    c.writes.Load(),
		Copies:    c.copies.Load(),
		Compares:  c.compares.Load(),
		Releases:  c.releases.Load(),
	}
}

func (c *CountingProcessor) Allocate(n int) (storage.Handle, error) {
	c.allocates.Add(1)
	return c.inner.Allocate(n)
}

func (c *CountingProcessor) AllocateFrom(src []uint16) (storage.Handle, error) {
	c.allocates.Add(1)
	return c.inner.AllocateFrom(src)
}

func (c *CountingProcessor) Clone(src storage.Source) (storage.Handle, error) {
	c.clones.Add(1)
	if src.Processor() == storage.Processor(c) {
		return c.inner.Clone(unwrapped{src, c.inner})
	}
	return c.inner.Clone(src)
}

func (c *CountingProcessor) SizeOf(h storage.Handle) int64 { return c.inner.SizeOf(h) }

func (c *CountingProcessor) Read(h storage.Handle, i int) uint16 {
	c.reads.Add(1)
	return c.inner.Read(h, i)
}

func (c *CountingProcessor) Write(h storage.Handle, i int, v uint16) {
	c.writes.Add(1)
	c.inner.Write(h, i, v)
}

func (c *CountingProcessor) Copy(h storage.Handle, srcBegin int, dst []uint16) {
	c.copies.Add(1)
	c.inner.Copy(h, srcBegin, dst)
}

func (c *CountingProcessor) Release(h storage.Handle) error {
	c.releases.Add(1)
	return c.inner.Release(h)
}

func (c *CountingProcessor) EqualRange(a, b storage.Handle, n int) bool {
	c.compares.Add(1)
	if cmp, ok := c.inner.(storage.Comparer); ok {
		return cmp.EqualRange(a, b, n)
	}
	for i := range n {
		if c.inner.Read(a, i) != c.inner.Read(b, i) {
			return false
		}
	}
	return true
}

// unwrapped presents a source owned by the counting wrapper as owned by the
// wrapped processor, so the wrapped processor's same-backend Clone applies.
type unwrapped struct {
	storage.Source
	p storage.Processor
}

func (u unwrapped) Processor() storage.Processor { return u.p }
