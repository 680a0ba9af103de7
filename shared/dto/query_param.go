package dto

import (
	"hotel/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// NewestFirst returns unpaginated params ordered by creation time, newest first.
func NewestFirst() QueryParams {
	return QueryParams{
		SortBy:  constant.DefaultValueSortBy,
		SortDir: SortDirDesc,
	}
}

// FromRequest populates QueryParams from the HTTP request.
// When defaultRequest is true, Page and Limit fall back to their defaults.
// Lists in this API are unpaginated unless the caller asks for a page, so most
// handlers pass false.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Sanitize restricts SortBy to the given columns, since it is interpolated into
// the ORDER BY clause. Unknown columns fall back to creation time, newest first.
func (q *QueryParams) Sanitize(allowed ...string) {
	if q.SortBy == "" || !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
		q.SortDir = SortDirDesc
	}

	if q.SortDir == "" {
		q.SortDir = SortDirDesc
	}
}
