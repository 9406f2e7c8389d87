package bfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeBitmap_StartsUsedUntilMarkedFree(t *testing.T) {
	b := newFreeBitmap(10)
	assert.False(t, b.IsFree(0))

	b.MarkAllFree()
	for i := 0; i < 10; i++ {
		assert.True(t, b.IsFree(i))
	}
}

func TestFreeBitmap_FirstFreeSkipsUsedSlots(t *testing.T) {
	b := newFreeBitmap(4)
	b.MarkAllFree()
	b.SetFree(0, false)
	b.SetFree(1, false)

	idx, ok := b.FirstFree()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestFreeBitmap_FirstFreeExhausted(t *testing.T) {
	b := newFreeBitmap(2)
	b.MarkAllFree()
	b.SetFree(0, false)
	b.SetFree(1, false)

	_, ok := b.FirstFree()
	assert.False(t, ok)
}

func TestFreeBitmap_RoundTripsThroughBlockBytes(t *testing.T) {
	b := newFreeBitmap(16)
	b.MarkAllFree()
	b.SetFree(3, false)

	raw := b.blockBytes()
	restored := freeBitmapFromBlock(raw, 16)

	for i := 0; i < 16; i++ {
		assert.Equal(t, b.IsFree(i), restored.IsFree(i))
	}
}
