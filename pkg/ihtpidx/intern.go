package ihtpidx

import (
	"bytes"
	"unsafe"
)

// stringInterner interns strings backed by a single growable buffer,
// optionally arena-backed. Instance loading repeatedly looks up the same
// room/surgeon/OT/nurse/patient id strings while resolving cross-references
// and while the move generator formats action strings for the log sink, so
// interning keeps those comparisons and the backing storage cheap. Ported
// from the teacher's stringInterner (pkg/ottrecidx/ds.go).
type stringInterner struct {
	arena *memArena
	buf   [][]byte // chunks are never reallocated; interned strings alias into them
	cache map[string]internedRef
}

type internedRef struct {
	chunk, offset uint32
}

func newStringInterner(a *memArena) *stringInterner {
	return &stringInterner{arena: a, cache: make(map[string]internedRef, 64)}
}

// Intern returns a string equal to s, reusing previously interned storage
// when available.
func (si *stringInterner) Intern(s string) string {
	if len(s) == 0 {
		return ""
	}
	if ref, ok := si.cache[s]; ok {
		return si.get(ref, len(s))
	}
	if ref, ok := si.scan(s); ok {
		out := si.get(ref, len(s))
		si.cache[out] = ref
		return out
	}
	return si.put(s)
}

func (si *stringInterner) allocate(n int) internedRef {
	const chunkSize = 64 * 1024
	for i, b := range si.buf {
		if n <= cap(b)-len(b) {
			si.buf[i] = b[:len(b)+n]
			return internedRef{uint32(i), uint32(len(b))}
		}
	}
	var b []byte
	if si.arena != nil {
		b = arenaMakeSlice[byte](si.arena, n, max(n, chunkSize))
	} else {
		b = make([]byte, n, max(n, chunkSize))
	}
	i := len(si.buf)
	si.buf = append(si.buf, b)
	return internedRef{uint32(i), 0}
}

func (si *stringInterner) get(ref internedRef, n int) string {
	b := si.buf[ref.chunk]
	return unsafe.String(&b[ref.offset], n)
}

func (si *stringInterner) put(s string) string {
	ref := si.allocate(len(s))
	copy(si.buf[ref.chunk][ref.offset:int(ref.offset)+len(s)], s)
	out := si.get(ref, len(s))
	si.cache[out] = ref
	return out
}

func (si *stringInterner) scan(s string) (internedRef, bool) {
	needle := unsafe.Slice(unsafe.StringData(s), len(s))
	for i, b := range si.buf {
		if j := bytes.Index(b, needle); j != -1 {
			return internedRef{uint32(i), uint32(j)}, true
		}
	}
	return internedRef{}, false
}
