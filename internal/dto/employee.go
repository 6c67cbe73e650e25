package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,min=1,max=50"`
	FullName   string `json:"full_name"   binding:"required,min=1,max=255"`
	Email      string `json:"email"       binding:"required,email,max=254"`
	Department string `json:"department"  binding:"required,min=1,max=100"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Normalize 归一化分页参数
// binding 的 omitempty 会放过零值（如 ?page_size=0），
// 绑定后必须统一收敛到合法范围，响应中的分页元数据与查询保持一致
func (r *EmployeeListRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 || r.PageSize > 100 {
		r.PageSize = 20
	}
}

// EmployeeResponse 员工详细信息响应
type EmployeeResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}
