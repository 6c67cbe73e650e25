package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/model"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// ── 测试辅助 ──

// setupTestAttendanceService 构造服务并固定"今日"时钟
func setupTestAttendanceService(today time.Time) (AttendanceService, *mockEmployeeRepo, *mockAttendanceRepo) {
	empRepo := newMockEmployeeRepo()
	attRepo := newMockAttendanceRepo(empRepo)
	repo := &repository.Repository{
		Employee:   empRepo,
		Attendance: attRepo,
	}
	svc := NewAttendanceService(repo, zap.NewNop(), time.UTC)
	svc.(*attendanceService).now = func() time.Time { return today }
	return svc, empRepo, attRepo
}

// addEmployee 追加一名员工到 mock 仓库
func addEmployee(r *mockEmployeeRepo, id int64, code, name, email string) {
	r.employees[id] = &model.Employee{
		ID:         id,
		EmployeeID: code,
		FullName:   name,
		Email:      email,
		Department: "技术部",
	}
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

// mustMark 打点失败时直接终止测试
func mustMark(t *testing.T, svc AttendanceService, employee int64, date, status string) {
	t.Helper()
	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: employee,
		Date:     date,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("准备考勤数据失败: %v", err)
	}
}

var fixedToday = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

// ── Mark 测试 ──

func TestAttendanceService_Mark_Success(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	result, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 1,
		Date:     "2024-01-01",
		Status:   model.StatusPresent,
	})
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	if result.Date != "2024-01-01" {
		t.Errorf("期望Date=2024-01-01，实际=%s", result.Date)
	}
	if result.Status != model.StatusPresent {
		t.Errorf("期望Status=present，实际=%s", result.Status)
	}
	if result.EmployeeDetail == nil || result.EmployeeDetail.EmployeeID != "E001" {
		t.Error("期望附带员工详情")
	}
}

func TestAttendanceService_Mark_EmployeeNotFound(t *testing.T) {
	svc, _, attRepo := setupTestAttendanceService(fixedToday)

	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 9999,
		Date:     "2024-01-01",
		Status:   model.StatusPresent,
	})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
	if len(attRepo.atts) != 0 {
		t.Error("失败的打点不应写入任何记录")
	}
}

func TestAttendanceService_Mark_Duplicate(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)

	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 1,
		Date:     "2024-01-01",
		Status:   model.StatusAbsent,
	})
	if !errors.Is(err, ErrAttendanceExists) {
		t.Errorf("期望 ErrAttendanceExists，实际: %v", err)
	}
}

func TestAttendanceService_Mark_ConstraintRace(t *testing.T) {
	svc, _, attRepo := setupTestAttendanceService(fixedToday)

	// 预检查不到重复，但插入撞上唯一约束：模拟并发请求先行写入
	attRepo.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 1,
		Date:     "2024-01-01",
		Status:   model.StatusPresent,
	})
	if !errors.Is(err, ErrAttendanceExists) {
		t.Errorf("约束冲突应映射为 ErrAttendanceExists，实际: %v", err)
	}
}

func TestAttendanceService_Mark_EmployeeDeletedRace(t *testing.T) {
	svc, _, attRepo := setupTestAttendanceService(fixedToday)

	// 预检后员工被删除，插入触发外键冲突
	attRepo.createErr = gorm.ErrForeignKeyViolated

	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 1,
		Date:     "2024-01-01",
		Status:   model.StatusPresent,
	})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("外键冲突应映射为 ErrEmployeeNotFound，实际: %v", err)
	}
}

func TestAttendanceService_Mark_InvalidStatus(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	_, err := svc.Mark(context.Background(), &dto.MarkAttendanceRequest{
		Employee: 1,
		Date:     "2024-01-01",
		Status:   "late",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际: %v", err)
	}
}

// ── List 测试 ──

func TestAttendanceService_List_NoFilters_NewestFirst(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-03", model.StatusAbsent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusPresent)

	result, err := svc.List(context.Background(), &dto.AttendanceListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("期望3条记录，实际=%d", len(result))
	}
	// 日期倒序
	dates := []string{result[0].Date, result[1].Date, result[2].Date}
	expected := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
	for i := range expected {
		if dates[i] != expected[i] {
			t.Errorf("第%d条期望日期=%s，实际=%s", i, expected[i], dates[i])
		}
	}
}

func TestAttendanceService_List_EmployeeFilter(t *testing.T) {
	svc, empRepo, _ := setupTestAttendanceService(fixedToday)
	addEmployee(empRepo, 2, "E200", "李四", "lisi@test.com")

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 2, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 2, "2024-01-02", model.StatusAbsent)

	result, err := svc.List(context.Background(), &dto.AttendanceListRequest{EmployeeID: 2})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望2条记录，实际=%d", len(result))
	}
	for _, r := range result {
		if r.Employee != 2 {
			t.Errorf("期望仅包含员工2的记录，实际出现员工%d", r.Employee)
		}
	}
}

func TestAttendanceService_List_BothFilters_Conjunction(t *testing.T) {
	svc, empRepo, _ := setupTestAttendanceService(fixedToday)
	addEmployee(empRepo, 2, "E200", "李四", "lisi@test.com")

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 2, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusAbsent)

	result, err := svc.List(context.Background(), &dto.AttendanceListRequest{
		EmployeeID: 1,
		Date:       "2024-01-01",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("两个过滤条件应取交集，期望1条，实际=%d", len(result))
	}
	if result[0].Employee != 1 || result[0].Date != "2024-01-01" {
		t.Errorf("过滤结果不符: employee=%d date=%s", result[0].Employee, result[0].Date)
	}
}

// ── ListByEmployee 测试 ──

func TestAttendanceService_ListByEmployee_DateRange(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusAbsent)

	result, err := svc.ListByEmployee(context.Background(), 1, &dto.EmployeeAttendanceRequest{
		From: "2024-01-02",
		To:   "2024-01-02",
	})
	if err != nil {
		t.Fatalf("ListByEmployee 应成功: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("闭区间 [01-02,01-02] 期望恰好1条，实际=%d", len(result.Records))
	}
	if result.Records[0].Date != "2024-01-02" || result.Records[0].Status != model.StatusAbsent {
		t.Errorf("期望01-02的absent记录，实际 date=%s status=%s",
			result.Records[0].Date, result.Records[0].Status)
	}
	if result.Employee.EmployeeID != "E001" {
		t.Errorf("期望附带员工详情E001，实际=%s", result.Employee.EmployeeID)
	}
}

func TestAttendanceService_ListByEmployee_NotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	_, err := svc.ListByEmployee(context.Background(), 9999, &dto.EmployeeAttendanceRequest{})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── Summary 测试 ──

func TestAttendanceService_Summary_Scenario(t *testing.T) {
	// 固定"今日"为 2024-01-01
	svc, empRepo, _ := setupTestAttendanceService(fixedToday)
	addEmployee(empRepo, 2, "E200", "李四", "lisi@test.com")

	// A(E001): 01-01 present, 01-02 absent; B(E200): 01-01 present
	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusAbsent)
	mustMark(t, svc, 2, "2024-01-01", model.StatusPresent)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.TotalEmployees != 2 {
		t.Errorf("期望TotalEmployees=2，实际=%d", summary.TotalEmployees)
	}
	if summary.PresentToday != 2 {
		t.Errorf("期望PresentToday=2，实际=%d", summary.PresentToday)
	}
	if summary.AbsentToday != 0 {
		t.Errorf("期望AbsentToday=0，实际=%d", summary.AbsentToday)
	}
	if len(summary.PresentDaysByEmployee) != 2 {
		t.Fatalf("期望2名员工有出勤记录，实际=%d", len(summary.PresentDaysByEmployee))
	}
	// A/B 各1天，相对顺序不作断言
	for _, entry := range summary.PresentDaysByEmployee {
		if entry.PresentDays != 1 {
			t.Errorf("员工%d期望出勤1天，实际=%d", entry.EmployeeID, entry.PresentDays)
		}
	}
}

func TestAttendanceService_Summary_PresentDaysSortedDesc(t *testing.T) {
	svc, empRepo, _ := setupTestAttendanceService(fixedToday)
	addEmployee(empRepo, 2, "E200", "李四", "lisi@test.com")

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-03", model.StatusPresent)
	mustMark(t, svc, 2, "2024-01-01", model.StatusPresent)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	entries := summary.PresentDaysByEmployee
	if len(entries) != 2 {
		t.Fatalf("期望2条聚合结果，实际=%d", len(entries))
	}
	if entries[0].EmployeeID != 1 || entries[0].PresentDays != 3 {
		t.Errorf("期望首条为员工1出勤3天，实际 employee=%d days=%d",
			entries[0].EmployeeID, entries[0].PresentDays)
	}
	if entries[1].PresentDays > entries[0].PresentDays {
		t.Error("出勤天数应降序排列")
	}
}

func TestAttendanceService_Summary_OmitsZeroPresent(t *testing.T) {
	svc, empRepo, _ := setupTestAttendanceService(fixedToday)
	addEmployee(empRepo, 2, "E200", "李四", "lisi@test.com")

	// 员工2只有absent记录，不应出现在出勤天数列表中
	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 2, "2024-01-01", model.StatusAbsent)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	for _, entry := range summary.PresentDaysByEmployee {
		if entry.EmployeeID == 2 {
			t.Error("无present记录的员工不应出现在出勤天数列表中")
		}
	}
}

func TestAttendanceService_Summary_TodayUsesInjectedClock(t *testing.T) {
	// "今日"固定为 2024-01-02，01-01 的记录不应计入今日统计
	svc, _, _ := setupTestAttendanceService(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)
	mustMark(t, svc, 1, "2024-01-02", model.StatusAbsent)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.PresentToday != 0 {
		t.Errorf("期望PresentToday=0，实际=%d", summary.PresentToday)
	}
	if summary.AbsentToday != 1 {
		t.Errorf("期望AbsentToday=1，实际=%d", summary.AbsentToday)
	}
}

// ── Delete 测试 ──

func TestAttendanceService_Delete_Success(t *testing.T) {
	svc, _, attRepo := setupTestAttendanceService(fixedToday)

	mustMark(t, svc, 1, "2024-01-01", model.StatusPresent)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(attRepo.atts) != 0 {
		t.Error("考勤记录应被删除")
	}
}

func TestAttendanceService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(fixedToday)

	err := svc.Delete(context.Background(), 9999)
	if !errors.Is(err, ErrAttendanceNotFound) {
		t.Errorf("期望 ErrAttendanceNotFound，实际: %v", err)
	}
}
