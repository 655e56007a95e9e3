package game

import "math/bits"

const (
	wordBits = 64
	numWords = 4
	MaxCells = wordBits * numWords
)

// bitset is a fixed-size occupancy set. It is an array so that boards stay
// plain values: assignment copies them and == compares them.
type bitset [numWords]uint64

func (b *bitset) set(i int) {
	b[i/wordBits] |= 1 << uint(i%wordBits)
}

func (b *bitset) clear(i int) {
	b[i/wordBits] &^= 1 << uint(i%wordBits)
}

func (b *bitset) has(i int) bool {
	return b[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

func (b *bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *bitset) intersects(o *bitset) bool {
	for i := range b {
		if b[i]&o[i] != 0 {
			return true
		}
	}
	return false
}
