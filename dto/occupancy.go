package dto

// VacancyQuery tham số truy vấn tỷ lệ trống
type VacancyQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366"`
}

// AuditQuery tham số truy vấn nhật ký
type AuditQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Entity string `form:"entity" binding:"omitempty,oneof=availability_block contract"`
}

// UpcomingQuery tham số truy vấn hợp đồng sắp tới
type UpcomingQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}
