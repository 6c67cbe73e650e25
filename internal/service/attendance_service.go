package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/model"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotFound = errors.New("考勤记录不存在")
	ErrAttendanceExists   = errors.New("该员工当日已有考勤记录")
	ErrInvalidStatus      = errors.New("考勤状态必须为 present 或 absent")
	ErrInvalidDate        = errors.New("日期格式必须为 YYYY-MM-DD")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Mark 为某员工打某日考勤
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	// List 按可选条件过滤考勤列表，日期倒序，附带员工详情
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
	// ListByEmployee 单员工考勤记录，可选闭区间日期范围
	ListByEmployee(ctx context.Context, employeeID int64, req *dto.EmployeeAttendanceRequest) (*dto.EmployeeAttendanceResponse, error)
	// Summary 看板汇总：总人数、今日出勤/缺勤数、各员工出勤天数
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time // 可注入时钟，测试中固定"今日"
}

// NewAttendanceService 创建 AttendanceService 实例
// loc 为"今日"统计所用时区
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger, loc *time.Location) AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceService{
		repo:   repo,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// ────────────────────── Mark ──────────────────────
//
// 员工存在性与重复性预检只负责友好报错；两次查询与插入之间
// 并不原子，并发下以 (employee_id, date) 唯一约束为正确性保证：
// 插入命中约束时映射为与预检相同的业务错误

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	date, err := time.ParseInLocation(dto.DateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	exists, err := s.repo.Employee.ExistsByID(ctx, req.Employee)
	if err != nil {
		s.logger.Error("查询员工失败", zap.Int64("employee", req.Employee), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	dup, err := s.repo.Attendance.Exists(ctx, req.Employee, date, 0)
	if err != nil {
		s.logger.Error("查询考勤失败", zap.Int64("employee", req.Employee), zap.Error(err))
		return nil, err
	}
	if dup {
		return nil, ErrAttendanceExists
	}

	att := &model.Attendance{
		EmployeeID: req.Employee,
		Date:       date,
		Status:     req.Status,
	}

	if err := s.repo.Attendance.Create(ctx, att); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 与并发请求撞上唯一约束
			return nil, ErrAttendanceExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// 员工在预检之后被删除
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("创建考勤记录失败", zap.Int64("employee", req.Employee), zap.Error(err))
		return nil, err
	}

	// 重新加载以附带员工详情
	full, err := s.repo.Attendance.GetByID(ctx, att.ID)
	if err != nil {
		s.logger.Error("回读考勤记录失败", zap.Int64("id", att.ID), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(full), nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	filters := &repository.AttendanceListFilters{
		EmployeeID: req.EmployeeID,
	}
	if req.Date != "" {
		date, err := time.ParseInLocation(dto.DateLayout, req.Date, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filters.Date = &date
	}

	atts, err := s.repo.Attendance.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出考勤失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(atts))
	for i := range atts {
		result = append(result, *toAttendanceResponse(&atts[i]))
	}

	return result, nil
}

// ────────────────────── ListByEmployee ──────────────────────

func (s *attendanceService) ListByEmployee(ctx context.Context, employeeID int64, req *dto.EmployeeAttendanceRequest) (*dto.EmployeeAttendanceResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Int64("id", employeeID), zap.Error(err))
		return nil, err
	}

	var from, to *time.Time
	if req.From != "" {
		d, err := time.ParseInLocation(dto.DateLayout, req.From, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		from = &d
	}
	if req.To != "" {
		d, err := time.ParseInLocation(dto.DateLayout, req.To, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		to = &d
	}

	atts, err := s.repo.Attendance.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error("查询员工考勤失败", zap.Int64("id", employeeID), zap.Error(err))
		return nil, err
	}

	records := make([]dto.AttendanceResponse, 0, len(atts))
	for i := range atts {
		records = append(records, *toAttendanceResponse(&atts[i]))
	}

	return &dto.EmployeeAttendanceResponse{
		Employee: *toEmployeeResponse(emp),
		Records:  records,
	}, nil
}

// ────────────────────── Summary ──────────────────────
//
// 固定数量的聚合查询（COUNT / GROUP BY），不把记录拉到内存里数：
// 成本随分组数而非总行数增长

func (s *attendanceService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	today := s.today()

	total, err := s.repo.Employee.Count(ctx)
	if err != nil {
		s.logger.Error("统计员工总数失败", zap.Error(err))
		return nil, err
	}

	presentToday, err := s.repo.Attendance.CountByDateStatus(ctx, today, model.StatusPresent)
	if err != nil {
		s.logger.Error("统计今日出勤失败", zap.Error(err))
		return nil, err
	}

	absentToday, err := s.repo.Attendance.CountByDateStatus(ctx, today, model.StatusAbsent)
	if err != nil {
		s.logger.Error("统计今日缺勤失败", zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Attendance.PresentDaysByEmployee(ctx)
	if err != nil {
		s.logger.Error("统计员工出勤天数失败", zap.Error(err))
		return nil, err
	}

	presentDays := make([]dto.PresentDaysEntry, 0, len(rows))
	for _, row := range rows {
		presentDays = append(presentDays, dto.PresentDaysEntry{
			EmployeeID:  row.EmployeeID,
			PresentDays: row.PresentDays,
		})
	}

	return &dto.SummaryResponse{
		TotalEmployees:        total,
		PresentToday:          presentToday,
		AbsentToday:           absentToday,
		PresentDaysByEmployee: presentDays,
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attendanceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Attendance.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		s.logger.Error("删除考勤记录失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// today 按配置时区取当前日历日（零点）
func (s *attendanceService) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

func toAttendanceResponse(att *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:       att.ID,
		Employee: att.EmployeeID,
		Date:     att.Date.Format(dto.DateLayout),
		Status:   att.Status,
	}
	if att.Employee != nil {
		resp.EmployeeDetail = toEmployeeResponse(att.Employee)
	}
	return resp
}
