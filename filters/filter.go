// Package filters turns raw list query parameters into gorm predicates and ordering.
//
// Filtering is permissive: a malformed or unknown value leaves the query untouched
// instead of failing the request.
package filters

import (
	"net/url"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Handler narrows db for one named parameter.
// Handlers must return db unchanged when the values make no sense for them.
type Handler func(db *gorm.DB, values []string) *gorm.DB

// Filter is the filtering configuration of one entity
type Filter struct {
	// SearchColumn receives the case-insensitive substring match of "search". Empty disables search.
	SearchColumn string
	// Sortable whitelists the columns accepted by "sort".
	Sortable []string
	// Handlers are keyed by query parameter name.
	Handlers map[string]Handler
	// DefaultOrder is used when no "sort" parameter is given.
	DefaultOrder *clause.OrderByColumn
}

// Apply composes search, named handlers and ordering onto db
func (f *Filter) Apply(db *gorm.DB, params url.Values) *gorm.DB {
	if f == nil {
		return db
	}

	if search := strings.TrimSpace(params.Get("search")); search != "" && f.SearchColumn != "" {
		db = db.Where("LOWER("+f.SearchColumn+") LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	names := make([]string, 0, len(f.Handlers))
	for name := range f.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := Values(params, name)
		if len(values) == 0 {
			continue
		}
		db = f.Handlers[name](db, values)
	}

	return f.applySort(db, params)
}

func (f *Filter) applySort(db *gorm.DB, params url.Values) *gorm.DB {
	column := strings.TrimSpace(params.Get("sort"))
	if column == "" {
		if f.DefaultOrder != nil {
			return db.Order(*f.DefaultOrder)
		}
		return db
	}
	if !f.IsSortable(column) {
		return db
	}

	desc := strings.EqualFold(strings.TrimSpace(params.Get("dir")), "desc")
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
}

// IsSortable reports whether column may be used in "sort"
func (f *Filter) IsSortable(column string) bool {
	for _, sortable := range f.Sortable {
		if sortable == column {
			return true
		}
	}
	return false
}

// Values collects a parameter given as "key", repeated keys, "key[]" or a comma list
func Values(params url.Values, key string) []string {
	raw := append([]string{}, params[key]...)
	raw = append(raw, params[key+"[]"]...)

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

// CreatedAtDesc is the default ordering of every catalog listing
func CreatedAtDesc() *clause.OrderByColumn {
	return &clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
}

// relatedTo matches owners linked through joinTable to a target whose id or name is in values.
// The match ignores the target's soft-delete state, like the association itself.
func relatedTo(ownerColumn, joinTable, ownerKey, targetKey, targetTable string) Handler {
	return func(db *gorm.DB, values []string) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table(joinTable).
			Select(joinTable+"."+ownerKey).
			Joins("JOIN "+targetTable+" ON "+targetTable+".id = "+joinTable+"."+targetKey).
			Where("("+targetTable+".id IN ? OR "+targetTable+".name IN ?)", values, values)
		return db.Where(ownerColumn+" IN (?)", sub)
	}
}
