package service

import (
	"fmt"
	"strconv"

	"github.com/yariga/property-api/internal/domain"
)

// ListParams carries the raw, stringly-typed query parameters of a
// property listing request, exactly as they arrive on the wire.
type ListParams struct {
	PropertyType string // propertyType: exact category filter
	TitleLike    string // title_like: case-insensitive substring filter
	Sort         string // _sort: field name
	Order        string // _order: "asc" or "desc"
	Start        string // _start: window start offset
	End          string // _end: window end offset (exclusive)
}

// sortableFields are the property fields a listing may be sorted on.
var sortableFields = map[string]bool{
	"id":           true,
	"title":        true,
	"price":        true,
	"location":     true,
	"propertyType": true,
	"createdAt":    true,
}

// BuildPropertyQuery validates the raw parameters and translates them
// into a store query.
//
// Sorting applies only when both _sort and _order are present. The
// window requires both _start and _end; a lone bound or a non-numeric
// value is rejected. A negative start clamps to 0 and an end before the
// start clamps the limit to 0, so the store never sees a negative
// window and such requests yield an empty page rather than an error.
func BuildPropertyQuery(params ListParams) (domain.PropertyQuery, error) {
	q := domain.PropertyQuery{
		Type:      params.PropertyType,
		TitleLike: params.TitleLike,
	}

	if params.Sort != "" && params.Order != "" {
		if !sortableFields[params.Sort] {
			return q, fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidInput, params.Sort)
		}
		switch params.Order {
		case "asc":
			q.SortOrder = domain.SortAsc
		case "desc":
			q.SortOrder = domain.SortDesc
		default:
			return q, fmt.Errorf("%w: _order must be asc or desc", domain.ErrInvalidInput)
		}
		q.SortField = params.Sort
	}

	if params.Start == "" && params.End == "" {
		return q, nil
	}
	if params.Start == "" || params.End == "" {
		return q, fmt.Errorf("%w: _start and _end must be supplied together", domain.ErrInvalidInput)
	}

	start, err := strconv.Atoi(params.Start)
	if err != nil {
		return q, fmt.Errorf("%w: _start must be numeric", domain.ErrInvalidInput)
	}
	end, err := strconv.Atoi(params.End)
	if err != nil {
		return q, fmt.Errorf("%w: _end must be numeric", domain.ErrInvalidInput)
	}

	if start < 0 {
		start = 0
	}
	limit := end - start
	if limit < 0 {
		limit = 0
	}

	q.Offset = start
	q.Limit = limit
	q.Paged = true
	return q, nil
}
