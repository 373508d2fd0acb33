//go:build goexperiment.arenas

package ihtpidx

import (
	"arena"
	"runtime"
	"strconv"
	"sync/atomic"
	"unsafe"
)

// memArena backs the Indexer's string interner chunks, allocated while an
// Instance is loaded; the engine's tensors do not use it. When the goexperiment.arenas build tag is
// set, allocations are placed in a real arena and freed in one shot when the
// Indexer is no longer reachable; otherwise arena_stub.go falls back to the
// regular heap.
type memArena struct {
	alloc atomic.Uint64
	arena *arena.Arena
}

func newMemArena() *memArena {
	a := &memArena{arena: arena.NewArena()}
	runtime.AddCleanup(a, (*arena.Arena).Free, a.arena)
	return a
}

func arenaNew[T any](a *memArena) *T {
	v := arena.New[T](a.arena)
	a.alloc.Add(uint64(unsafe.Sizeof(*v)))
	return v
}

func arenaMakeSlice[T any](a *memArena, len, cap int) []T {
	v := arena.MakeSlice[T](a.arena, len, cap)
	a.alloc.Add(uint64(unsafeSizeofSlice(v)))
	return v
}

func (a *memArena) String() string {
	return "memArena[goexperiment.arenas]{alloc:" + strconv.FormatUint(a.alloc.Load(), 10) + "}"
}

func unsafeSizeofSlice[T any](v []T) uintptr {
	if cap(v) != 0 {
		return unsafe.Sizeof(v[0]) * uintptr(cap(v))
	}
	return 0
}
