package listing

import "strings"

// TotalPages is ceil(total/size), never less than 1.
func TotalPages(total, size int64) int64 {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func ClampPage(page, totalPages int64) int64 {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// FilterByName keeps the items whose name contains term, ignoring case and
// surrounding whitespace. A blank term keeps everything.
func FilterByName[T any](items []T, term string, nameOf func(T) string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(nameOf(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}

// PageSlice returns the 1-based page of items. Pages past the end are empty.
func PageSlice[T any](items []T, page, size int64) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= int64(len(items)) {
		return []T{}
	}
	end := start + size
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}
