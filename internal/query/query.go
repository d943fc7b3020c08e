// Package query implements the task listing pipeline: status filtering,
// sorting, and pagination over an in-memory slice of tasks.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// Sortable fields and orders accepted by the engine.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByTitle     = "title"
	SortByDueDate   = "dueDate"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Pagination bounds. Requests outside these are clamped, not rejected.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params describes one list request. Zero values select the defaults:
// page 1, limit 10, no status filter, createdAt descending.
type Params struct {
	Page      int
	Limit     int
	Status    domain.TaskStatus
	SortBy    string
	SortOrder string
}

// Pagination describes the position of a result page within the filtered set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one page of tasks plus its pagination metadata.
type Result struct {
	Data       []domain.Task `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// Run filters, sorts, and paginates tasks. It never fails: out-of-range
// pages yield an empty page and unknown sort fields fall back to createdAt.
func Run(tasks []domain.Task, p Params) Result {
	page := p.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filtered := tasks
	if p.Status != "" {
		filtered = make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == p.Status {
				filtered = append(filtered, t)
			}
		}
	}

	sortTasks(filtered, p.SortBy, p.SortOrder)

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pageData := filtered[start:end]
	if pageData == nil {
		pageData = []domain.Task{}
	}

	return Result{
		Data: pageData,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

func sortTasks(tasks []domain.Task, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	if sortOrder == "" {
		sortOrder = SortOrderDesc
	}
	desc := sortOrder == SortOrderDesc

	if sortBy == SortByTitle {
		sort.SliceStable(tasks, func(i, j int) bool {
			cmp := strings.Compare(tasks[i].Title, tasks[j].Title)
			if desc {
				cmp = -cmp
			}
			return cmp < 0
		})
		return
	}

	// Date-valued sort. Tasks missing the sort field go to the tail in both
	// directions: "no value" is a placement rule, not a comparison.
	sort.SliceStable(tasks, func(i, j int) bool {
		vi, oki := dateField(&tasks[i], sortBy)
		vj, okj := dateField(&tasks[j], sortBy)

		if !oki && !okj {
			return false
		}
		if !oki {
			return false
		}
		if !okj {
			return true
		}
		if desc {
			return vi.After(vj)
		}
		return vi.Before(vj)
	})
}

func dateField(t *domain.Task, sortBy string) (time.Time, bool) {
	switch sortBy {
	case SortByUpdatedAt:
		return t.UpdatedAt, !t.UpdatedAt.IsZero()
	case SortByDueDate:
		if t.DueDate == nil {
			return time.Time{}, false
		}
		return *t.DueDate, true
	default:
		return t.CreatedAt, !t.CreatedAt.IsZero()
	}
}
