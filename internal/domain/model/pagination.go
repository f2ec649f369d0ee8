package model

type Pagination struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	CurrentSize int `json:"currentSize"`
}
