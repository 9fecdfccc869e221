package dto

type ViewsResponse struct {
	TotalViews int64 `json:"total_views"`
}
