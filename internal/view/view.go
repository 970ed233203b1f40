// Package view implements the generic sort/filter/paginate contract shared
// by the user and device listings.
package view

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Page size bounds; out-of-range requests clamp instead of erroring.
const (
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Value is a resolved comparable sort key: numeric for numbers, timestamps
// and flags, case-insensitive lexicographic for strings.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Number wraps a numeric sort key.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// Str wraps a string sort key, compared case-insensitively.
func Str(s string) Value { return Value{str: strings.ToLower(s)} }

// Time wraps a timestamp sort key as epoch milliseconds.
func Time(t time.Time) Value { return Number(float64(t.UnixMilli())) }

// Bool wraps a flag sort key as 0/1.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

func (v Value) less(o Value) bool {
	if v.isNum && o.isNum {
		return v.num < o.num
	}
	if v.isNum != o.isNum {
		// Mixed kinds only happen on resolver bugs; order numbers first.
		return v.isNum
	}
	return v.str < o.str
}

// Spec declares how one entity type is searched and sorted.
type Spec[T any] struct {
	// Fields whitelists sort keys and resolves their comparable values.
	Fields map[string]func(T) Value
	// DefaultSort is used when the requested sort key is absent or invalid.
	DefaultSort string
	// SearchText returns the fields matched by the substring query.
	SearchText func(T) []string
}

// Options are the caller-supplied listing parameters. Invalid values
// normalize silently rather than erroring.
type Options struct {
	Query    string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// Page is one page of a filtered, sorted collection.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	SortBy     string `json:"sort_by"`
	SortDir    string `json:"sort_dir"`
	Query      string `json:"query"`
}

// Paginate filters items by case-insensitive substring match, stable-sorts
// them by the resolved sort key, and slices out the requested page. The
// returned page number is always within [1, TotalPages] and the item count
// never exceeds the page size.
func Paginate[T any](items []T, spec Spec[T], opts Options) Page[T] {
	sortBy := opts.SortBy
	if _, ok := spec.Fields[sortBy]; !ok {
		sortBy = spec.DefaultSort
	}

	sortDir := strings.ToLower(opts.SortDir)
	if sortDir != DirAsc {
		sortDir = DirDesc
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	// Always build a fresh slice: the sort below must never reorder the
	// caller's backing array.
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if q == "" || matchesQuery(spec, item, q) {
			filtered = append(filtered, item)
		}
	}

	resolve := spec.Fields[sortBy]
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := resolve(filtered[i]), resolve(filtered[j])
		if sortDir == DirAsc {
			return a.less(b)
		}
		return b.less(a)
	})

	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		SortBy:     sortBy,
		SortDir:    sortDir,
		Query:      opts.Query,
	}
}

func matchesQuery[T any](spec Spec[T], item T, q string) bool {
	for _, field := range spec.SearchText(item) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
