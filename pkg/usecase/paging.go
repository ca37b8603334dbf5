package usecase

// Default page sizes per listing, matching the backend API
const (
	DefaultBoardPageSize    = 20
	DefaultCardPageSize     = 100
	DefaultActivityPageSize = 50
)

// paginate slices a full result set by zero-based page number and
// returns the slice plus the total count before paging. A non-positive
// limit falls back to fallbackLimit; a negative page is treated as 0.
func paginate[T any](items []T, page, limit, fallbackLimit int) ([]T, int) {
	total := len(items)
	if limit <= 0 {
		limit = fallbackLimit
	}
	if page < 0 {
		page = 0
	}

	// A page beyond the collection yields the empty page. Checking
	// against total/limit first keeps page*limit from overflowing on
	// huge caller-supplied page numbers.
	if page > total/limit {
		return []T{}, total
	}
	start := page * limit
	if start >= total {
		return []T{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], total
}
