package collision

// bitmap is a dense bitset tracking which cached world boxes are stale.
type bitmap []uint64

// Set sets the bit x in the bitmap and grows it if necessary.
func (dst *bitmap) Set(x uint32) {
	blkAt := int(x >> 6)
	bitAt := int(x % 64)
	if size := len(*dst); blkAt >= size {
		dst.grow(blkAt)
	}

	(*dst)[blkAt] |= (1 << bitAt)
}

// Remove removes the bit x from the bitmap, but does not shrink it.
func (dst *bitmap) Remove(x uint32) {
	if blkAt := int(x >> 6); blkAt < len(*dst) {
		bitAt := int(x % 64)
		(*dst)[blkAt] &^= (1 << bitAt)
	}
}

// Contains checks whether a value is contained in the bitmap or not.
func (dst bitmap) Contains(x uint32) bool {
	blkAt := int(x >> 6)
	if size := len(dst); blkAt >= size {
		return false
	}

	bitAt := int(x % 64)
	return (dst[blkAt] & (1 << bitAt)) > 0
}

// SetAll sets the first n bits.
func (dst *bitmap) SetAll(n int) {
	for i := 0; i < n; i++ {
		dst.Set(uint32(i))
	}
}

// grow grows the size of the bitmap until we reach the desired block offset
func (dst *bitmap) grow(blkAt int) {
	if len(*dst) > blkAt {
		return
	}

	// If there's space, resize the slice without copying.
	if cap(*dst) > blkAt {
		*dst = (*dst)[:blkAt+1]
		return
	}

	old := *dst
	*dst = make(bitmap, blkAt+1)
	copy(*dst, old)
}
