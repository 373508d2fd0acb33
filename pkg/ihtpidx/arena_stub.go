//go:build !goexperiment.arenas

package ihtpidx

import (
	"strconv"
	"sync/atomic"
	"unsafe"
)

type memArena struct {
	alloc atomic.Uint64
}

func newMemArena() *memArena {
	return &memArena{}
}

func arenaNew[T any](a *memArena) *T {
	v := new(T)
	a.alloc.Add(uint64(unsafe.Sizeof(*v)))
	return v
}

func arenaMakeSlice[T any](a *memArena, len, cap int) []T {
	v := make([]T, len, cap)
	a.alloc.Add(uint64(unsafeSizeofSlice(v)))
	return v
}

func (a *memArena) String() string {
	return "memArena[stub]{alloc:" + strconv.FormatUint(a.alloc.Load(), 10) + "}"
}

func unsafeSizeofSlice[T any](v []T) uintptr {
	if cap(v) != 0 {
		return unsafe.Sizeof(v[0]) * uintptr(cap(v))
	}
	return 0
}
