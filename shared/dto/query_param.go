package dto

import (
	"net/http"
	"seatdesk/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	// MaxLimit caps a page so a roster export cannot pull the whole table at once.
	MaxLimit = 200
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Non-positive numbers are ignored and limit is capped at MaxLimit. With
// defaultRequest set, missing page and limit fall back to the defaults.
//
// sort_by is taken verbatim; pass the result through Sort before it reaches
// a repository.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	query := r.URL.Query()

	if page, ok := positiveInt(query.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(query.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if !defaultRequest {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Sort keeps SortBy only when it names one of the allowed columns and
// otherwise falls back to by and dir. SortBy ends up in ORDER BY verbatim.
func (q *QueryParams) Sort(allowed []string, by, dir string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = by
		q.SortDir = dir

		return
	}

	if q.SortDir == "" {
		q.SortDir = dir
	}
}

func positiveInt(value string) (int, bool) {
	if value == "" {
		return 0, false
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
