package orm

// Pagination carries page metadata returned alongside paginated results.
type Pagination struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// Paginate runs the query with LIMIT/OFFSET and fills dest with one page of
// results. page is 1-based; perPage falls back to 15 when out of range.
func (q *Query) Paginate(page, perPage int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * perPage
	if err := q.db.Limit(perPage).Offset(offset).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}

	return Pagination{Page: page, PerPage: perPage, Total: total, LastPage: last}, nil
}
