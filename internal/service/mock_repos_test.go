package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/paras-antino/hrms-backend/internal/model"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Mock Repositories（内存实现，行为对齐 GORM 语义）
// ═══════════════════════════════════════════════════════════

// ── mockEmployeeRepo ──

type mockEmployeeRepo struct {
	employees map[int64]*model.Employee
	nextID    int64
	createErr error // 非 nil 时 Create 直接返回该错误（模拟并发撞约束）
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	r := &mockEmployeeRepo{
		employees: make(map[int64]*model.Employee),
		nextID:    1,
	}
	// 预置一名员工，供冲突与查询用例使用
	r.employees[1] = &model.Employee{
		ID:         1,
		EmployeeID: "E001",
		FullName:   "张三",
		Email:      "zhangsan@test.com",
		Department: "技术部",
		CreatedAt:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	r.nextID = 2
	return r
}

func (r *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, e := range r.employees {
		if e.EmployeeID == emp.EmployeeID || e.Email == emp.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	emp.ID = r.nextID
	r.nextID++
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now()
	}
	cp := *emp
	r.employees[emp.ID] = &cp
	return nil
}

func (r *mockEmployeeRepo) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *emp
	return &cp, nil
}

func (r *mockEmployeeRepo) List(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	all := make([]model.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool {
		return strings.Compare(all[i].FullName, all[j].FullName) < 0
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *mockEmployeeRepo) Delete(_ context.Context, id int64) error {
	delete(r.employees, id)
	return nil
}

func (r *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func (r *mockEmployeeRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.employees[id]
	return ok, nil
}

func (r *mockEmployeeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, e := range r.employees {
		if e.EmployeeID == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockEmployeeRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, e := range r.employees {
		if e.Email == email && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ── mockAttendanceRepo ──

type mockAttendanceRepo struct {
	atts      map[int64]*model.Attendance
	nextID    int64
	emps      *mockEmployeeRepo // 用于回填 Employee 关联
	createErr error             // 非 nil 时 Create 直接返回该错误（模拟并发撞约束）
}

func newMockAttendanceRepo(emps *mockEmployeeRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		atts:   make(map[int64]*model.Attendance),
		nextID: 1,
		emps:   emps,
	}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *mockAttendanceRepo) withEmployee(att *model.Attendance) *model.Attendance {
	cp := *att
	if emp, ok := r.emps.employees[cp.EmployeeID]; ok {
		empCp := *emp
		cp.Employee = &empCp
	}
	return &cp
}

func (r *mockAttendanceRepo) Create(_ context.Context, att *model.Attendance) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.atts {
		if a.EmployeeID == att.EmployeeID && sameDay(a.Date, att.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	att.ID = r.nextID
	r.nextID++
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now()
	}
	cp := *att
	r.atts[att.ID] = &cp
	return nil
}

func (r *mockAttendanceRepo) GetByID(_ context.Context, id int64) (*model.Attendance, error) {
	att, ok := r.atts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withEmployee(att), nil
}

func (r *mockAttendanceRepo) List(_ context.Context, filters *repository.AttendanceListFilters) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range r.atts {
		if filters != nil {
			if filters.EmployeeID > 0 && a.EmployeeID != filters.EmployeeID {
				continue
			}
			if filters.Date != nil && !sameDay(a.Date, *filters.Date) {
				continue
			}
		}
		result = append(result, *r.withEmployee(a))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *mockAttendanceRepo) ListByEmployee(_ context.Context, employeeID int64, from, to *time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range r.atts {
		if a.EmployeeID != employeeID {
			continue
		}
		if from != nil && a.Date.Before(*from) {
			continue
		}
		if to != nil && a.Date.After(*to) {
			continue
		}
		result = append(result, *r.withEmployee(a))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *mockAttendanceRepo) Delete(_ context.Context, id int64) error {
	delete(r.atts, id)
	return nil
}

func (r *mockAttendanceRepo) Exists(_ context.Context, employeeID int64, date time.Time, excludeID int64) (bool, error) {
	for _, a := range r.atts {
		if a.EmployeeID == employeeID && sameDay(a.Date, date) && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockAttendanceRepo) CountByDateStatus(_ context.Context, date time.Time, status string) (int64, error) {
	var count int64
	for _, a := range r.atts {
		if sameDay(a.Date, date) && a.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *mockAttendanceRepo) PresentDaysByEmployee(_ context.Context) ([]repository.PresentDaysRow, error) {
	counts := make(map[int64]int64)
	for _, a := range r.atts {
		if a.Status == model.StatusPresent {
			counts[a.EmployeeID]++
		}
	}
	rows := make([]repository.PresentDaysRow, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, repository.PresentDaysRow{EmployeeID: id, PresentDays: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PresentDays != rows[j].PresentDays {
			return rows[i].PresentDays > rows[j].PresentDays
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows, nil
}
