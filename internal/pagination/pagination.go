package pagination

import "fmt"

// ErrInvalidPageSize is returned for a zero or negative page size.
var ErrInvalidPageSize = fmt.Errorf("page size must be positive")

// Paginate returns the 1-indexed page slice of items, clipped to the bounds
// of the input. A page past the end (or below 1) yields an empty slice,
// never an error. The result aliases the input; callers must not mutate it.
func Paginate[T any](items []T, page, size int) ([]T, error) {
	if size <= 0 {
		return nil, ErrInvalidPageSize
	}

	if page < 1 || len(items) == 0 {
		return []T{}, nil
	}

	// Bound before multiplying; (page-1)*size overflows for huge pages.
	if page-1 > (len(items)-1)/size {
		return []T{}, nil
	}

	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], nil
}

// PageCount returns how many pages of the given size items spans. An empty
// input has zero pages.
func PageCount(total, size int) (int, error) {
	if size <= 0 {
		return 0, ErrInvalidPageSize
	}
	if total <= 0 {
		return 0, nil
	}
	// (total + size - 1) / size would overflow for a huge size.
	return (total-1)/size + 1, nil
}
