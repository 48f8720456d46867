package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a compact append-only store. Returned indices are 1-based so
// that zero stays the universal "no node" sentinel across all ID types.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return idx
}

// Get returns the element at the 1-based index, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Read-only by convention.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len reports the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data)) //nolint:gosec // checked on every Allocate
}
