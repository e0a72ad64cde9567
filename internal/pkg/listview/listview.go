// Package listview implements the search/filter/sort/paginate pipeline
// shared by the student, subject, user and activity list endpoints.
package listview

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1

	// windowSize is the maximum number of page links shown at once.
	windowSize = 5
)

// Kind selects the comparison rule for a sort key.
type Kind int

const (
	Text Kind = iota
	Numeric
	Date
)

// Field describes one sortable/filterable field of a record.
type Field[T any] struct {
	Kind  Kind
	Value func(T) string
}

// View binds a record type to its field schema. SearchKeys names the
// subset of fields matched by free-text search.
type View[T any] struct {
	Fields     map[string]Field[T]
	SearchKeys []string
}

// Query carries the caller's view state.
type Query struct {
	Search   string
	Filters  map[string]string
	SortKey  string
	SortDesc bool
	Page     int
	PageSize int
}

// Pagination is the metadata that accompanies one page of results.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int   `json:"totalItems"`
	FirstIndex  int   `json:"firstIndex"`
	LastIndex   int   `json:"lastIndex"`
	Window      []int `json:"window"`
}

// Page is one visible page of records plus its metadata.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// dateFormats are tried in order when coercing a date key. Values that
// parse with none of them sort as the earliest possible instant.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Apply runs the full pipeline over items and returns the requested page.
// Ties sort stably in original order.
func (v View[T]) Apply(items []T, q Query) Page[T] {
	out := v.search(items, q.Search)
	out = v.filter(out, q.Filters)
	out = v.sort(out, q.SortKey, q.SortDesc)
	return v.paginate(out, q.Page, q.PageSize)
}

func (v View[T]) search(items []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	var out []T
	for _, it := range items {
		for _, key := range v.SearchKeys {
			f, ok := v.Fields[key]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(f.Value(it)), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func (v View[T]) filter(items []T, filters map[string]string) []T {
	active := make(map[string]string)
	for key, want := range filters {
		if want == "" {
			continue // unset filter matches everything
		}
		if _, ok := v.Fields[key]; ok {
			active[key] = want
		}
	}
	if len(active) == 0 {
		return items
	}

	var out []T
	for _, it := range items {
		match := true
		for key, want := range active {
			if v.Fields[key].Value(it) != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, it)
		}
	}
	return out
}

func (v View[T]) sort(items []T, key string, desc bool) []T {
	f, ok := v.Fields[key]
	if !ok {
		return items
	}

	out := make([]T, len(items))
	copy(out, items)

	var less func(a, b T) bool
	switch f.Kind {
	case Date:
		less = func(a, b T) bool {
			return coerceDate(f.Value(a)).Before(coerceDate(f.Value(b)))
		}
	case Numeric:
		less = func(a, b T) bool {
			return coerceNumber(f.Value(a)) < coerceNumber(f.Value(b))
		}
	default:
		less = func(a, b T) bool {
			return strings.ToLower(f.Value(a)) < strings.ToLower(f.Value(b))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func (v View[T]) paginate(items []T, page, size int) Page[T] {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	first := (page - 1) * size
	last := first + size
	if last > total {
		last = total
	}

	return Page[T]{
		Items: items[first:last],
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			PageSize:    size,
			TotalItems:  total,
			FirstIndex:  first,
			LastIndex:   last,
			Window:      Window(page, totalPages),
		},
	}
}

// Window returns the visible page-number links: at most five numbers,
// recentered around the current page except near the first and last pages.
func Window(current, total int) []int {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := 1
	switch {
	case total <= windowSize:
		start = 1
	case current <= 3:
		start = 1
	case current >= total-2:
		start = total - windowSize + 1
	default:
		start = current - 2
	}

	end := start + windowSize - 1
	if end > total {
		end = total
	}

	window := make([]int, 0, windowSize)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}

// NextSort implements the header-click semantics: clicking the active key
// flips direction, clicking a new key sorts it ascending.
func NextSort(activeKey string, activeDesc bool, selected string) (string, bool) {
	if selected == activeKey {
		return activeKey, !activeDesc
	}
	return selected, false
}

func coerceNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}

func coerceDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
