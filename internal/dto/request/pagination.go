package request

// PaginatedRequest carries raw caller paging; services normalise it with the
// page-size clamp and offset helpers before hitting the store.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}
