package models

import (
	"fmt"
	"math"

	domainerrors "markeep/internal/errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a zero-based page index and a page size.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates page and size. Out-of-range values are rejected,
// never clamped. The offset of the requested page must fit in an int64.
func NewPageRequest(page, size int) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, domainerrors.InvalidArgument("page must not be negative")
	}
	if size < 1 || size > MaxPageSize {
		return PageRequest{}, domainerrors.InvalidArgument(fmt.Sprintf("size must be between 1 and %d", MaxPageSize))
	}
	if int64(page) > math.MaxInt64/int64(size)-1 {
		return PageRequest{}, domainerrors.InvalidArgument("page is too large")
	}
	return PageRequest{Page: page, Size: size}, nil
}

func (p PageRequest) Offset() int64 {
	return int64(p.Page) * int64(p.Size)
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    req.Page,
		PageSize:      req.Size,
	}
}
