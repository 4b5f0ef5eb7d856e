package currency

import (
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 100
	maxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// PageFromQuery reads page/page_size query params, falling back to the
// defaults on anything missing or unusable and capping page_size.
func PageFromQuery(query url.Values) Page {
	p := Page{Number: 1, Size: defaultPageSize}

	if n, err := strconv.Atoi(query.Get("page")); err == nil && n > 0 {
		p.Number = n
	}
	if s, err := strconv.Atoi(query.Get("page_size")); err == nil && s > 0 {
		p.Size = min(s, maxPageSize)
	}
	return p
}

// Envelope is the list-response wrapper every collection endpoint returns.
type Envelope struct {
	Count        int64 `json:"count"`
	TotalPages   int   `json:"total_pages"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
	Results      any   `json:"results"`
}

func NewEnvelope(page Page, total int64, results any) Envelope {
	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	if totalPages < 1 {
		totalPages = 1
	}

	env := Envelope{Count: total, TotalPages: totalPages, Results: results}
	if page.Number < totalPages {
		next := page.Number + 1
		env.NextPage = &next
	}
	if page.Number > 1 {
		prev := page.Number - 1
		env.PreviousPage = &prev
	}
	return env
}
