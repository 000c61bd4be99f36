package catalog

const (
	// ThreeColumnMinWidth is the viewport width, in logical pixels, from
	// which the catalog renders three columns.
	ThreeColumnMinWidth = 1320

	pageSizeThreeColumn = 15
	pageSizeDefault     = 10
)

// PageSize returns the number of projects per page for a layout.
func PageSize(threeColumn bool) int {
	if threeColumn {
		return pageSizeThreeColumn
	}
	return pageSizeDefault
}

// TotalPages returns ceil(n/size), which is 0 for an empty collection.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns items[(page-1)*size : page*size], clipped to the slice.
// Pages outside the collection are empty.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}
