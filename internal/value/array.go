package value

import "strings"

// Store owns array data blocks. An Array is a (data, offset, count)
// view into a block owned by exactly one Store; multiple Array
// wrappers may share a block, each holding a reference. When the last
// wrapper referencing a block is released, the block is unlinked —
// modeled here as a refcount rather than a literal intrusive list,
// since Go's GC already reclaims unreachable blocks; the refcount
// lets a caller observe "am I the last view" deterministically through
// Release.
type Store struct {
	blocks []*block
}

type block struct {
	data []Value
	refs int
}

func NewStore() *Store { return &Store{} }

// Array is a reference-counted view over a block's data.
type Array struct {
	blk    *block
	offset int
	count  int
}

// Alloc creates a new block of the given size, all elements Undef, and
// returns a wrapper viewing the whole thing.
func (s *Store) Alloc(size int) *Array {
	b := &block{data: make([]Value, size), refs: 0}
	s.blocks = append(s.blocks, b)
	a := &Array{blk: b, offset: 0, count: size}
	b.refs++
	return a
}

// AllocFrom creates a new block pre-populated with elems and returns a
// wrapper viewing the whole thing, used by the evaluator to materialize
// the accumulated result of an array-as-callable invocation.
func (s *Store) AllocFrom(elems []Value) *Array {
	b := &block{data: elems, refs: 0}
	s.blocks = append(s.blocks, b)
	a := &Array{blk: b, offset: 0, count: len(elems)}
	b.refs++
	return a
}

// View creates a new wrapper over the same block as a, with the given
// sub-range, bumping the refcount.
func (a *Array) View(offset, count int) *Array {
	a.blk.refs++
	return &Array{blk: a.blk, offset: a.offset + offset, count: count}
}

// Release drops this wrapper's hold on the block. Returns true if this
// was the last reference (the block is now unlinked/dead).
func (a *Array) Release() bool {
	a.blk.refs--
	return a.blk.refs == 0
}

func (a *Array) Len() int { return a.count }

func (a *Array) At(i int) Value {
	if i < 0 || i >= a.count {
		return UndefV()
	}
	return a.blk.data[a.offset+i]
}

func (a *Array) Set(i int, v Value) {
	if i < 0 || i >= a.count {
		return
	}
	a.blk.data[a.offset+i] = v
}

// Append grows the backing block by one element and the view by one,
// provided this view reaches the end of the block (the common case:
// the compiler always appends immediately after Arr allocates).
func (a *Array) Append(v Value) {
	end := a.offset + a.count
	if end == len(a.blk.data) {
		a.blk.data = append(a.blk.data, v)
	} else {
		// Not at the tail: materialize a fresh block so sibling views
		// of the original aren't disturbed.
		nb := make([]Value, a.count+1)
		copy(nb, a.blk.data[a.offset:a.offset+a.count])
		nb[a.count] = v
		a.blk.refs--
		a.blk = &block{data: nb, refs: 1}
		a.offset = 0
	}
	a.count++
}

func (a *Array) Elems() []Value {
	return a.blk.data[a.offset : a.offset+a.count]
}

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a.Elems() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Compare implements the array total order from spec.md §8: lexicographic
// by element, with element count as the final tiebreaker. Returns
// -1, 0, or 1.
func (a *Array) Compare(other *Array) int {
	n := a.count
	if other.count < n {
		n = other.count
	}
	for i := 0; i < n; i++ {
		c := Compare(a.At(i), other.At(i))
		if c != 0 {
			return c
		}
	}
	if a.count < other.count {
		return -1
	}
	if a.count > other.count {
		return 1
	}
	return 0
}
