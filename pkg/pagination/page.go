package pagination

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// Request is the caller's view of a page: either an opaque cursor or a page number.
type Request struct {
	Cursor   string `form:"cursor" json:"cursor,omitempty"`
	Page     int    `form:"page" json:"page,omitempty" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" json:"page_size,omitempty" binding:"omitempty,min=1"`
}

// Query is a resolved page request handed to repositories. When After is set
// Offset is zero. Repositories return at most Limit+1 rows so the caller can
// tell whether another page exists.
type Query struct {
	After  *Cursor
	Offset int
	Limit  int
	Page   int
}

// Fetch is the number of rows a repository should read.
func (q Query) Fetch() int { return q.Limit + 1 }

// Resolve normalizes r against cfg. A cursor takes precedence over a page number.
func Resolve(r Request, cfg PageSizeConfig) (Query, error) {
	q := Query{Limit: ClampPageSize(r.PageSize, cfg)}
	if r.Cursor != "" {
		c, err := Decode(r.Cursor)
		if err != nil {
			return Query{}, err
		}
		q.After = &c
		return q, nil
	}
	q.Page = r.Page
	if q.Page < 1 {
		q.Page = 1
	}
	q.Offset = (q.Page - 1) * q.Limit
	return q, nil
}

// Page is one page of results in the API shape.
type Page[T any] struct {
	Items      []T    `json:"results"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
	Page       int    `json:"page,omitempty"`
	PageSize   int    `json:"page_size"`
}

// Build trims rows fetched with q.Fetch() down to q.Limit and derives the
// next cursor from the last kept row.
func Build[T any](rows []T, q Query, cursorOf func(T) Cursor) Page[T] {
	p := Page[T]{Items: rows, Page: q.Page, PageSize: q.Limit}
	if len(rows) > q.Limit {
		p.Items = rows[:q.Limit]
		p.HasMore = true
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.HasMore && len(p.Items) > 0 {
		p.NextCursor = cursorOf(p.Items[len(p.Items)-1]).Encode()
	}
	return p
}

// Map converts the items of a page while keeping its paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{NextCursor: p.NextCursor, HasMore: p.HasMore, Page: p.Page, PageSize: p.PageSize}
	out.Items = make([]U, len(p.Items))
	for i, it := range p.Items {
		out.Items[i] = fn(it)
	}
	return out
}
