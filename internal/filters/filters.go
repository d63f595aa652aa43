// Package filters owns the catalog query state: search, category, sort, and
// pagination, kept in sync with the address-bar query string.
package filters

import (
	"net/url"
	"strconv"
)

type Sort string

const (
	SortNameAsc   Sort = "name_asc"
	SortNameDesc  Sort = "name_desc"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

func (s Sort) Valid() bool {
	switch s {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

const (
	DefaultSort  = SortNameAsc
	DefaultLimit = 12
)

// State is the normalized set of catalog query parameters.
type State struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     Sort   `json:"sort"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

func Default() State {
	return State{Sort: DefaultSort, Page: 1, Limit: DefaultLimit}
}

// Partial carries the fields of a filter update; nil fields stay unchanged.
type Partial struct {
	Search   *string
	Category *string
	Sort     *Sort
}

// Merge applies a partial update. Any update through this path resets the
// page to 1, regardless of what the caller held before.
func (s State) Merge(p Partial) State {
	if p.Search != nil {
		s.Search = *p.Search
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Sort != nil && p.Sort.Valid() {
		s.Sort = *p.Sort
	}
	s.Page = 1
	return s
}

// WithSort sets the sort order and resets the page.
func (s State) WithSort(sort Sort) State {
	if sort.Valid() {
		s.Sort = sort
	}
	s.Page = 1
	return s
}

// WithPage moves to a page without touching the other fields. Non-positive
// pages are ignored.
func (s State) WithPage(page int) State {
	if page >= 1 {
		s.Page = page
	}
	return s
}

// Normalized clamps out-of-range fields back to defaults.
func (s State) Normalized() State {
	if !s.Sort.Valid() {
		s.Sort = DefaultSort
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	return s
}

// Values serializes only non-default fields, keeping URLs minimal. The
// default state serializes to an empty parameter set.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Category != "" {
		v.Set("category", s.Category)
	}
	if s.Sort != DefaultSort {
		v.Set("sort", string(s.Sort))
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// FromValues parses query parameters, recognizing only valid sort values and
// positive integer pages; everything else falls back to defaults.
func FromValues(v url.Values) State {
	s := Default()
	if search := v.Get("search"); search != "" {
		s.Search = search
	}
	if category := v.Get("category"); category != "" {
		s.Category = category
	}
	if sort := Sort(v.Get("sort")); sort.Valid() {
		s.Sort = sort
	}
	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 0 {
		s.Page = page
	}
	if limit, err := strconv.Atoi(v.Get("limit")); err == nil && limit > 0 {
		s.Limit = limit
	}
	return s
}
