package resources

import (
	"net/http"
	"net/url"
	"strconv"
)

// Links points at neighbouring pages. Prev and Next are null at the edges.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta describes the page. From and To are null for an empty page.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int64  `json:"total"`
}

// Paginated is the collection shape carrying pagination links and metadata
type Paginated struct {
	Data  []any `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// NewPaginated builds the envelope for one page of data.
// Links keep the request's other query parameters so filters survive paging.
func NewPaginated(data []any, total int64, page, perPage int, req *http.Request) Paginated {
	if perPage < 1 {
		perPage = 1
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	path := RequestPath(req)
	query := url.Values{}
	if req != nil {
		query = req.URL.Query()
	}
	pageURL := func(n int) string {
		query.Set("page", strconv.Itoa(n))
		return path + "?" + query.Encode()
	}

	links := Links{First: pageURL(1), Last: pageURL(lastPage)}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}

	meta := Meta{
		CurrentPage: page,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     perPage,
		Total:       total,
	}
	if len(data) > 0 {
		from := (page-1)*perPage + 1
		to := from + len(data) - 1
		meta.From, meta.To = &from, &to
	}

	return Paginated{Data: data, Links: links, Meta: meta}
}

// RequestPath returns the absolute URL of req without its query string
func RequestPath(req *http.Request) string {
	if req == nil {
		return ""
	}
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + req.Host + req.URL.Path
}
