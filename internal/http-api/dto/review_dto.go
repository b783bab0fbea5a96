package dto

type UpsertReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Body   string `json:"body"`
}

type PaginationQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}
