package services

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// ListQuery carries the list-view knobs shared by every catalog entity.
// Status is "all", "1" (active only) or "0" (inactive only).
type ListQuery struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
	PerPage   int    `form:"per_page"`
	Page      int    `form:"page"`
}

type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

func (q ListQuery) normalized(sortable map[string]bool) ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Status = strings.TrimSpace(q.Status)
	if q.Status == "" {
		q.Status = "all"
	}
	if !sortable[q.Sort] {
		q.Sort = "id"
	}
	if !strings.EqualFold(q.Direction, "asc") {
		q.Direction = "desc"
	} else {
		q.Direction = "asc"
	}
	if q.PerPage <= 0 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q
}

// activeFilter applies the "status" knob against table.is_active.
func activeFilter(table, status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case "1", "true", "active":
			return db.Where(table+".is_active = ?", true)
		case "0", "false", "inactive":
			return db.Where(table+".is_active = ?", false)
		}
		return db
	}
}

// paginate counts the filtered query, then loads one page ordered by
// is_active first and the requested column second. Scopes (preloads) are
// applied to the page load only.
func paginate[T any](query *gorm.DB, table string, q ListQuery, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	page := Page[T]{Data: []T{}, CurrentPage: q.Page, PerPage: q.PerPage, LastPage: 1}

	if err := query.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return page, err
	}
	if page.Total > 0 {
		page.LastPage = int((page.Total + int64(q.PerPage) - 1) / int64(q.PerPage))
	}

	err := query.
		Scopes(scopes...).
		Order(table + ".is_active DESC").
		Order(table + "." + q.Sort + " " + strings.ToUpper(q.Direction)).
		Limit(q.PerPage).
		Offset((q.Page - 1) * q.PerPage).
		Find(&page.Data).Error
	return page, err
}
