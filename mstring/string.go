package mstring

import (
	"iter"
	"runtime"
	"sync/atomic"

	"github.com/joshuapare/strkit/casing"
	"github.com/joshuapare/strkit/internal/buf"
	"github.com/joshuapare/strkit/internal/logger"
	"github.com/joshuapare/strkit/internal/unit"
	"github.com/joshuapare/strkit/storage"
)

// hashSet marks the cached hash as computed; the low 32 bits hold the value.
const hashSet = 1 << 32

// String is an immutable UTF-16 string stored by a storage.Processor.
type String struct {
	length  int
	hash    atomic.Uint64
	c       *cell
	cleanup runtime.Cleanup
}

// cell owns the storage. It is kept apart from String so the runtime cleanup
// can release it without keeping the String reachable.
type cell struct {
	proc   storage.Processor
	handle storage.Handle
}

func (c *cell) release() error {
	if !c.handle.Valid() {
		return nil
	}
	h := c.handle
	c.handle = storage.Invalid
	return c.proc.Release(h)
}

func releaseCell(c *cell) {
	if err := c.release(); err != nil {
		logger.Warn("automatic release failed", "error", err)
	}
}

// Len returns the number of UTF-16 code units.
func (s *String) Len() int { return s.length }

// IsEmpty reports whether s has no code units.
func (s *String) IsEmpty() bool { return s.length == 0 }

// Processor returns the processor that owns s's storage.
func (s *String) Processor() storage.Processor { return s.c.proc }

// Handle returns s's storage handle, storage.Invalid after Release.
func (s *String) Handle() storage.Handle { return s.c.handle }

// StorageSize reports the bytes the processor allocated for s.
func (s *String) StorageSize() int64 {
	if !s.c.handle.Valid() {
		return storage.InvalidSize
	}
	n := s.c.proc.SizeOf(s.c.handle)
	runtime.KeepAlive(s)
	return n
}

// UnitAt returns the code unit at i without bounds checks.
func (s *String) UnitAt(i int) uint16 {
	u := s.c.proc.Read(s.c.handle, i)
	runtime.KeepAlive(s)
	return u
}

func (s *String) copyOut(begin int, dst []uint16) {
	if len(dst) == 0 {
		return
	}
	s.c.proc.Copy(s.c.handle, begin, dst)
	runtime.KeepAlive(s)
}

func (s *String) accessor() accessor { return accessor{owned: s} }

// Release frees the storage. Calling it again is a no-op that does not reach
// the processor.
func (s *String) Release() error {
	if !s.c.handle.Valid() {
		return nil
	}
	s.cleanup.Stop()
	return s.c.release()
}

// Released reports whether Release has run.
func (s *String) Released() bool { return !s.c.handle.Valid() }

// String returns s as a Go (UTF-8) string. Unpaired surrogates become U+FFFD.
func (s *String) String() string {
	return unit.ToString(s.ToChars())
}

// ToChars copies s into a new Chars.
func (s *String) ToChars() Chars {
	out := make(Chars, s.length)
	s.copyOut(0, out)
	return out
}

// CharAt returns the code unit at index.
func (s *String) CharAt(index int) (uint16, error) {
	if index < 0 || index >= s.length {
		return 0, boundsError(index)
	}
	return s.UnitAt(index), nil
}

// CodePointAt returns the code point starting at index, combining a valid
// surrogate pair.
func (s *String) CodePointAt(index int) (rune, error) {
	if index < 0 || index >= s.length {
		return 0, boundsError(index)
	}
	return casing.CodePointAt(s, index), nil
}

// CodePointBefore returns the code point ending just before index.
func (s *String) CodePointBefore(index int) (rune, error) {
	if i := index - 1; i < 0 || i >= s.length {
		return 0, boundsError(index)
	}
	return casing.CodePointBefore(s, index), nil
}

// CodePointCount returns the number of code points in [begin, end). A valid
// surrogate pair counts once; an unpaired surrogate counts as one.
func (s *String) CodePointCount(begin, end int) (int, error) {
	switch {
	case begin < 0:
		return 0, boundsError(begin)
	case end > s.length:
		return 0, boundsError(end)
	case begin > end:
		return 0, boundsError(end - begin)
	}
	n := end - begin
	for i := begin; i < end; {
		if unit.IsHighSurrogate(s.UnitAt(i)) && i+1 < end && unit.IsLowSurrogate(s.UnitAt(i+1)) {
			n--
			i += 2
			continue
		}
		i++
	}
	return n, nil
}

// OffsetByCodePoints returns the index offset from index by offset code
// points, scanning backward for a negative offset. Running past either end
// of s is a bounds error.
func (s *String) OffsetByCodePoints(index, offset int) (int, error) {
	if index < 0 || index > s.length {
		return 0, boundsError(index)
	}
	x := index
	if offset >= 0 {
		i := 0
		for ; x < s.length && i < offset; i++ {
			x++
			if unit.IsHighSurrogate(s.UnitAt(x-1)) && x < s.length && unit.IsLowSurrogate(s.UnitAt(x)) {
				x++
			}
		}
		if i < offset {
			return 0, boundsError(offset)
		}
		return x, nil
	}
	i := offset
	for ; x > 0 && i < 0; i++ {
		x--
		if unit.IsLowSurrogate(s.UnitAt(x)) && x > 0 && unit.IsHighSurrogate(s.UnitAt(x-1)) {
			x--
		}
	}
	if i < 0 {
		return 0, boundsError(offset)
	}
	return x, nil
}

// GetChars copies units [srcBegin, srcEnd) into dst at dstBegin.
func (s *String) GetChars(srcBegin, srcEnd int, dst []uint16, dstBegin int) error {
	if err := s.checkRange(srcBegin, srcEnd); err != nil {
		return err
	}
	n := srcEnd - srcBegin
	if !buf.CheckRange(len(dst), dstBegin, n) {
		return boundsError(dstBegin)
	}
	s.copyOut(srcBegin, dst[dstBegin:dstBegin+n])
	return nil
}

// GetBytesRange copies the low byte of each unit in [srcBegin, srcEnd) into
// dst at dstBegin.
func (s *String) GetBytesRange(srcBegin, srcEnd int, dst []byte, dstBegin int) error {
	if err := s.checkRange(srcBegin, srcEnd); err != nil {
		return err
	}
	n := srcEnd - srcBegin
	if !buf.CheckRange(len(dst), dstBegin, n) {
		return boundsError(dstBegin)
	}
	for i := range n {
		dst[dstBegin+i] = byte(s.UnitAt(srcBegin + i))
	}
	return nil
}

func (s *String) checkRange(begin, end int) error {
	switch {
	case begin < 0:
		return boundsError(begin)
	case end > s.length:
		return boundsError(end)
	case begin > end:
		return boundsError(end - begin)
	}
	return nil
}

// Units iterates over (index, code unit) pairs.
func (s *String) Units() iter.Seq2[int, uint16] {
	return func(yield func(int, uint16) bool) {
		for i := range s.length {
			if !yield(i, s.UnitAt(i)) {
				return
			}
		}
	}
}

// CodePoints iterates over (index, code point) pairs, where index is the
// unit offset of the code point. Unpaired surrogates are yielded as is.
func (s *String) CodePoints() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i := 0; i < s.length; {
			cp := casing.CodePointAt(s, i)
			if !yield(i, cp) {
				return
			}
			i += unit.Count(cp)
		}
	}
}
