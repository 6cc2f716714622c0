// Package mstring implements String, a UTF-16 string whose code-unit storage
// is owned by a pluggable storage.Processor.
//
// A String is built by a Factory bound to one processor and is immutable
// after construction. Operations that produce new content (Substring,
// ToUpper, Concat, ...) return plain Go-managed Chars rather than allocating
// new backend storage; operations that leave the content unchanged return the
// receiver itself. Both satisfy the sealed Text interface, which is also the
// type of every foreign operand:
//
//	f := mstring.NewFactory(offheap.New())
//	s, err := f.FromString("Hello")
//	if err != nil {
//		return err
//	}
//	defer s.Release()
//
//	s.Equals(mstring.CharsOf("Hello")) // true
//	up, _ := s.ToUpper(language.Turkish)
//
// Storage is freed exactly once, either by an explicit Release or, when the
// factory enables it, by a runtime cleanup once the String is unreachable.
// Reading a released String is not checked and is undefined.
//
// Strings perform no locking. Concurrent reads are safe when the processor's
// Read is; Release must not race with anything.
package mstring
