package forms

import "strings"

// DefaultItemsPerPage is used when a SearchForm has no configured page size.
const DefaultItemsPerPage = 20

// SearchSubmission carries the directory search parameters.
type SearchSubmission struct {
	Query             string `form:"q" validate:"max=255"`
	Limit             *int   `form:"limit" validate:"omitempty,min=0"`
	Page              *int   `form:"page" validate:"omitempty,min=1"`
	IncludeNonVouched bool   `form:"include_non_vouched"`
}

// CleanSearch holds the resolved search parameters.
type CleanSearch struct {
	Query             string
	Limit             int
	Offset            int
	IncludeNonVouched bool
}

// SearchForm resolves paging parameters against the configured page size.
type SearchForm struct {
	DefaultLimit int
}

// Clean substitutes the default page size when no limit was supplied.
// Supplied limits pass through without an upper bound.
func (f SearchForm) Clean(submission SearchSubmission) (CleanSearch, error) {
	submission.Query = strings.TrimSpace(submission.Query)
	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanSearch{}, err
	}
	if err := invalid("search", fields); err != nil {
		return CleanSearch{}, err
	}

	limit := f.defaultLimit()
	if submission.Limit != nil && *submission.Limit > 0 {
		limit = *submission.Limit
	}
	offset := 0
	if submission.Page != nil {
		offset = (*submission.Page - 1) * limit
	}
	return CleanSearch{
		Query:             submission.Query,
		Limit:             limit,
		Offset:            offset,
		IncludeNonVouched: submission.IncludeNonVouched,
	}, nil
}

func (f SearchForm) defaultLimit() int {
	if f.DefaultLimit > 0 {
		return f.DefaultLimit
	}
	return DefaultItemsPerPage
}
