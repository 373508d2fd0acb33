// Package ihtpidx implements the dense-index and bitmap substrate shared by
// the instance model and the engine's decision tensors: a bidirectional
// string-id/int-index map per entity kind (Indexer), a generic bitmap
// wrapper (Bitmap[T]) addressed by linear tensor offsets, and the small
// arena allocator that backs the Indexer's interned id strings.
package ihtpidx

import "fmt"

// Kind names an entity class tracked by the Indexer. "occupants" is always
// resolved to KindPatients: occupants and patients share one index space
// per spec (the unified patient index).
type Kind string

const (
	KindRooms             Kind = "rooms"
	KindOperatingTheatres Kind = "operating_theatres"
	KindSurgeons          Kind = "surgeons"
	KindNurses            Kind = "nurses"
	KindPatients          Kind = "patients"
)

func normalizeKind(k Kind) Kind {
	if k == "occupants" {
		return KindPatients
	}
	return k
}

// UnknownIDError is returned by ByID when id was never registered.
type UnknownIDError struct {
	Kind Kind
	ID   string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("ihtpidx: unknown %s id %q", e.Kind, e.ID)
}

// BadIndexError is returned by ByIndex when idx is out of range.
type BadIndexError struct {
	Kind Kind
	Idx  int
}

func (e *BadIndexError) Error() string {
	return fmt.Sprintf("ihtpidx: index %d out of range for kind %s", e.Idx, e.Kind)
}

// Indexer is a bidirectional map between stable string ids and dense,
// registration-order integer indices, kept separately per Kind. It is built
// once while loading an Instance and is immutable afterwards; it is not
// safe for concurrent registration, but read-only lookups are safe for
// concurrent use once registration has stopped.
//
// Grounded on the Python reference's Indexer class
// (original_source/.../Hospital.py) and structurally on the teacher's
// Indexer/interner[T] types (pkg/ottrecidx/index.go, ds.go).
type Indexer struct {
	arena *memArena
	sa    *stringInterner
	byID  map[Kind]map[string]int
	byIdx map[Kind][]string
}

// NewIndexer returns an empty Indexer.
func NewIndexer() *Indexer {
	a := newMemArena()
	return &Indexer{
		arena: a,
		sa:    newStringInterner(a),
		byID:  make(map[Kind]map[string]int),
		byIdx: make(map[Kind][]string),
	}
}

// Register assigns the next free index for kind to id, in registration
// order, and returns it. Registering the same (kind, id) pair twice is a
// programmer error and panics, since instance loading controls all calls.
func (x *Indexer) Register(kind Kind, id string) int {
	kind = normalizeKind(kind)
	id = x.sa.Intern(id)
	if _, ok := x.byID[kind]; !ok {
		x.byID[kind] = make(map[string]int)
	}
	if _, dup := x.byID[kind][id]; dup {
		panic(fmt.Sprintf("ihtpidx: duplicate id %q registered for kind %s", id, kind))
	}
	idx := len(x.byIdx[kind])
	x.byID[kind][id] = idx
	x.byIdx[kind] = append(x.byIdx[kind], id)
	return idx
}

// ByID looks up the index registered for id under kind.
func (x *Indexer) ByID(kind Kind, id string) (int, error) {
	kind = normalizeKind(kind)
	if idx, ok := x.byID[kind][id]; ok {
		return idx, nil
	}
	return 0, &UnknownIDError{Kind: kind, ID: id}
}

// ByIndex looks up the id registered at idx under kind.
func (x *Indexer) ByIndex(kind Kind, idx int) (string, error) {
	kind = normalizeKind(kind)
	ids := x.byIdx[kind]
	if idx < 0 || idx >= len(ids) {
		return "", &BadIndexError{Kind: kind, Idx: idx}
	}
	return ids[idx], nil
}

// Len returns the number of registered entries for kind.
func (x *Indexer) Len(kind Kind) int {
	return len(x.byIdx[normalizeKind(kind)])
}

// String renders allocator stats, matching the teacher's DebugIndexer
// style of surfacing arena/interner footprint for development use.
func (x *Indexer) String() string {
	return x.arena.String()
}
