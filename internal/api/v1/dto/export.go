package dto

// ExportRequest represents parameters for export requests
type ExportRequest struct {
	Format string `form:"format,default=xlsx" json:"format" binding:"oneof=csv json xlsx"`
	Limit  int    `form:"limit,default=1000" json:"limit" binding:"min=1,max=10000"`
}
