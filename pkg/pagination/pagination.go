// Package pagination provides page-based and index-based slicing helpers for
// in-memory datasets, including hypermedia-style page metadata and a
// deletion-resilient index mode.
package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned when a page number or page size is below 1.
var ErrInvalidPage = errors.New("pagination: page and page size must be positive")

// Range computes the half-open [start, end) slice bounds for a 1-based page.
func Range(page, pageSize int) (start, end int, err error) {
	if page < 1 || pageSize < 1 {
		return 0, 0, fmt.Errorf("%w (page=%d, page_size=%d)", ErrInvalidPage, page, pageSize)
	}
	start = (page - 1) * pageSize
	return start, start + pageSize, nil
}

// Paginator slices a fixed dataset into pages. The zero value is an empty
// dataset; it does not copy the backing slice.
type Paginator[T any] struct {
	items []T
}

// New wraps a dataset for pagination.
func New[T any](items []T) *Paginator[T] {
	return &Paginator[T]{items: items}
}

// Len returns the total number of items in the dataset.
func (p *Paginator[T]) Len() int { return len(p.items) }

// TotalPages returns the number of pages at the given page size.
func (p *Paginator[T]) TotalPages(pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (len(p.items) + pageSize - 1) / pageSize
}

// Page returns the items of the requested 1-based page. Pages past the end of
// the dataset are empty, not an error.
func (p *Paginator[T]) Page(page, pageSize int) ([]T, error) {
	start, end, err := Range(page, pageSize)
	if err != nil {
		return nil, err
	}
	if start >= len(p.items) {
		return []T{}, nil
	}
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end], nil
}

// HyperPage carries a page of data together with hypermedia navigation
// metadata.
type HyperPage[T any] struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Data       []T  `json:"data"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
	TotalPages int  `json:"total_pages"`
}

// HyperPage returns the requested page plus navigation metadata. PageSize
// reflects the number of items actually returned, which may be short on the
// final page. NextPage and PrevPage are nil at the dataset edges.
func (p *Paginator[T]) HyperPage(page, pageSize int) (HyperPage[T], error) {
	data, err := p.Page(page, pageSize)
	if err != nil {
		return HyperPage[T]{}, err
	}

	total := p.TotalPages(pageSize)
	hp := HyperPage[T]{
		Page:       page,
		PageSize:   len(data),
		Data:       data,
		TotalPages: total,
	}
	if page < total {
		next := page + 1
		hp.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		hp.PrevPage = &prev
	}
	return hp, nil
}
