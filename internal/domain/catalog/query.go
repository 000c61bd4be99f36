package catalog

import "github.com/outrun/memeverse/internal/domain/project"

// Query is everything needed to render one catalog page.
type Query struct {
	Criteria  Criteria
	SortKey   SortKey
	Direction Direction
	Page      int
	PageSize  int
}

// Result is one rendered catalog page.
type Result struct {
	Items      []project.Project `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// Run filters, sorts and paginates projects. It is a pure function of its
// inputs.
func Run(projects []project.Project, q Query) Result {
	filtered := Filter(projects, q.Criteria)
	sorted := Sort(filtered, q.SortKey, q.Direction)
	size := q.PageSize
	if size <= 0 {
		size = PageSize(false)
	}
	return Result{
		Items:      Page(sorted, q.Page, size),
		Total:      len(sorted),
		TotalPages: TotalPages(len(sorted), size),
		Page:       q.Page,
		PageSize:   size,
	}
}
