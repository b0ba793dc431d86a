package pagination

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a start index falls outside the
// original dataset bounds.
var ErrIndexOutOfRange = errors.New("pagination: index out of range")

// Indexed paginates a dataset by original position instead of page number, so
// a reader never skips items when entries are deleted between requests: the
// cursor it hands back always points at the next surviving position.
type Indexed[T any] struct {
	items map[int]T
	size  int // original dataset length, fixed at creation
}

// NewIndexed indexes a dataset by its initial positions.
func NewIndexed[T any](items []T) *Indexed[T] {
	indexed := make(map[int]T, len(items))
	for i, item := range items {
		indexed[i] = item
	}
	return &Indexed[T]{items: indexed, size: len(items)}
}

// Delete removes the item at an original position. Positions never shift;
// deleted slots are simply skipped during iteration.
func (x *Indexed[T]) Delete(index int) {
	delete(x.items, index)
}

// Len returns the number of items still present.
func (x *Indexed[T]) Len() int { return len(x.items) }

// HyperIndexPage carries an index-addressed page of data. NextIndex is the
// position to request next, already advanced past any deleted slots.
type HyperIndexPage[T any] struct {
	Index     int `json:"index"`
	NextIndex int `json:"next_index"`
	PageSize  int `json:"page_size"`
	Data      []T `json:"data"`
}

// HyperIndex collects up to pageSize surviving items starting at index.
// The index must lie within the original dataset bounds; pageSize must be
// positive.
func (x *Indexed[T]) HyperIndex(index, pageSize int) (HyperIndexPage[T], error) {
	if index < 0 || index >= x.size {
		return HyperIndexPage[T]{}, fmt.Errorf("%w: %d (dataset size %d)", ErrIndexOutOfRange, index, x.size)
	}
	if pageSize < 1 {
		return HyperIndexPage[T]{}, fmt.Errorf("%w (page_size=%d)", ErrInvalidPage, pageSize)
	}

	data := make([]T, 0, pageSize)
	next := index
	for len(data) < pageSize && next < x.size {
		if item, ok := x.items[next]; ok {
			data = append(data, item)
		}
		next++
	}

	// Land the cursor on the next surviving position.
	for next < x.size {
		if _, ok := x.items[next]; ok {
			break
		}
		next++
	}

	return HyperIndexPage[T]{
		Index:     index,
		NextIndex: next,
		PageSize:  len(data),
		Data:      data,
	}, nil
}
