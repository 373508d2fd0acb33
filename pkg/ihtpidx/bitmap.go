package ihtpidx

import (
	"iter"

	kbitmap "github.com/kelindar/bitmap"
)

// Bitmap wraps a [kbitmap.Bitmap] to be generic over the linear index type it
// is addressed by, so a PAS cell index and an NRA cell index can't be mixed
// up by accident at compile time. It is the flat storage for every bitmap
// tensor in pkg/ihtpengine (PASState, NRAState): each tensor packs its
// multi-dimensional index into one linear offset with row-major strides and
// addresses a single Bitmap with it, per spec's "big dense bitmap layout"
// guidance.
type Bitmap[T ~uint32] struct {
	kb kbitmap.Bitmap
}

// MakeBitmap returns a Bitmap capable of addressing indices in [0, n).
func MakeBitmap[T ~uint32](n int) Bitmap[T] {
	if n <= 0 {
		return Bitmap[T]{}
	}
	return Bitmap[T]{make(kbitmap.Bitmap, (n>>6)+1)}
}

func (b *Bitmap[T]) kbmut() *kbitmap.Bitmap {
	if b == nil {
		return nil
	}
	return &b.kb
}

// Set marks v present.
func (b *Bitmap[T]) Set(v T) { b.kbmut().Set(uint32(v)) }

// Remove marks v absent.
func (b *Bitmap[T]) Remove(v T) { b.kbmut().Remove(uint32(v)) }

// Clear resets every bit to zero without reallocating.
func (b *Bitmap[T]) Clear() { b.kbmut().Clear() }

// Contains reports whether v is present.
func (b Bitmap[T]) Contains(v T) bool { return b.kb.Contains(uint32(v)) }

// Count returns the number of set bits.
func (b Bitmap[T]) Count() int { return b.kb.Count() }

// CloneFrom overwrites b's contents with src's, growing if necessary.
func (b *Bitmap[T]) CloneFrom(src Bitmap[T]) {
	b.kb = src.kb.Clone(&b.kb)
}

// Clone returns a deep copy.
func (b Bitmap[T]) Clone() Bitmap[T] {
	var out Bitmap[T]
	out.CloneFrom(b)
	return out
}

// Any reports whether any bit is set.
func (b Bitmap[T]) Any() bool {
	_, ok := b.kb.Min()
	return ok
}

// Range iterates the set bits in ascending order.
func (b Bitmap[T]) Range() iter.Seq[T] {
	return func(yield func(T) bool) {
		for blockAt, block := range b.kb {
			if block == 0 {
				continue
			}
			base := T(blockAt << 6)
			for bit := 0; bit < 64; bit++ {
				if block&(1<<uint(bit)) != 0 {
					if !yield(base + T(bit)) {
						return
					}
				}
			}
		}
	}
}

// RangeWithin iterates the set bits v with lo <= v < hi.
func (b Bitmap[T]) RangeWithin(lo, hi T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range b.Range() {
			if v < lo {
				continue
			}
			if v >= hi {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// AnyWithin reports whether any bit v with lo <= v < hi is set.
func (b Bitmap[T]) AnyWithin(lo, hi T) bool {
	for range b.RangeWithin(lo, hi) {
		return true
	}
	return false
}

// CountWithin counts the bits v with lo <= v < hi.
func (b Bitmap[T]) CountWithin(lo, hi T) int {
	n := 0
	for range b.RangeWithin(lo, hi) {
		n++
	}
	return n
}
