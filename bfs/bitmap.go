package bfs

import (
	bitmaplib "github.com/boljen/go-bitmap"

	"github.com/oscoursework/bfs/block"
)

// freeBitmap wraps a github.com/boljen/go-bitmap Bitmap with BFS's own bit
// polarity: a set bit (1) means the corresponding inode or data block is
// FREE, and a clear bit (0) means it is in use. This is the opposite
// convention from the allocator go-bitmap is usually paired with, where a
// set bit marks a slot as taken; BFS's on-disk format predates any Go code
// and fixes the polarity the other way, so the inversion happens here rather
// than at every call site.
type freeBitmap struct {
	bits  bitmaplib.Bitmap
	count int
}

func newFreeBitmap(count int) freeBitmap {
	return freeBitmap{bits: bitmaplib.New(count), count: count}
}

// freeBitmapFromBlock builds a freeBitmap from a raw block read off disk.
// The block is copied so later mutation of the bitmap never aliases the
// caller's buffer.
func freeBitmapFromBlock(raw []byte, count int) freeBitmap {
	cp := append([]byte(nil), raw...)
	return freeBitmap{bits: bitmaplib.Bitmap(cp), count: count}
}

// IsFree reports whether bit i is marked free.
func (b freeBitmap) IsFree(i int) bool {
	if i < 0 || i >= b.count {
		return false
	}
	return b.bits.Get(i)
}

// SetFree marks bit i free or used.
func (b *freeBitmap) SetFree(i int, free bool) {
	b.bits.Set(i, free)
}

// MarkAllFree sets every tracked bit to free, as format() does.
func (b *freeBitmap) MarkAllFree() {
	for i := 0; i < b.count; i++ {
		b.bits.Set(i, true)
	}
}

// FirstFree returns the lowest-index free bit, or ok=false if none remain.
func (b freeBitmap) FirstFree() (int, bool) {
	for i := 0; i < b.count; i++ {
		if b.bits.Get(i) {
			return i, true
		}
	}
	return 0, false
}

// blockBytes renders the bitmap as a full, zero-padded disk block, ready to
// be written to the InodeBitMap or BlockBitMap block.
func (b freeBitmap) blockBytes() []byte {
	buf := make([]byte, block.Size)
	copy(buf, []byte(b.bits))
	return buf
}
