package dto

// DateLayout 考勤日期的统一格式
const DateLayout = "2006-01-02"

// ── 考勤模块 DTO ──

// MarkAttendanceRequest 考勤打点请求
type MarkAttendanceRequest struct {
	Employee int64  `json:"employee" binding:"required"` // 员工数据库主键
	Date     string `json:"date"     binding:"required,datetime=2006-01-02"`
	Status   string `json:"status"   binding:"required,oneof=present absent"`
}

// AttendanceListRequest 考勤列表查询参数
// 两个过滤条件各自可选，同时给出时取交集
type AttendanceListRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"omitempty,min=1"`
	Date       string `form:"date"        binding:"omitempty,datetime=2006-01-02"`
}

// EmployeeAttendanceRequest 单员工考勤查询参数（闭区间）
type EmployeeAttendanceRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceResponse 考勤记录响应（附带员工详情，避免前端二次查询）
type AttendanceResponse struct {
	ID             int64             `json:"id"`
	Employee       int64             `json:"employee"`
	EmployeeDetail *EmployeeResponse `json:"employee_detail,omitempty"`
	Date           string            `json:"date"`
	Status         string            `json:"status"`
}

// EmployeeAttendanceResponse 单员工考勤响应
type EmployeeAttendanceResponse struct {
	Employee EmployeeResponse     `json:"employee"`
	Records  []AttendanceResponse `json:"records"`
}

// ── 汇总看板 DTO ──

// PresentDaysEntry 员工出勤天数（仅包含至少一条 present 记录的员工）
type PresentDaysEntry struct {
	EmployeeID  int64 `json:"employee_id"`
	PresentDays int64 `json:"present_days"`
}

// SummaryResponse 看板汇总响应
type SummaryResponse struct {
	TotalEmployees        int64              `json:"total_employees"`
	PresentToday          int64              `json:"present_today"`
	AbsentToday           int64              `json:"absent_today"`
	PresentDaysByEmployee []PresentDaysEntry `json:"present_days_by_employee"`
}
