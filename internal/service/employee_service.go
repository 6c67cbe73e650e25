package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/model"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
	ErrEmployeeIDExists = errors.New("工号已存在")
	ErrEmailExists      = errors.New("邮箱已被使用")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────
//
// 唯一性预检仅提供友好的字段级报错；并发下以数据库唯一约束为准，
// 插入返回 ErrDuplicatedKey 时映射回同样的业务错误

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	code := strings.TrimSpace(req.EmployeeID)
	email := strings.ToLower(strings.TrimSpace(req.Email)) // 邮箱统一小写比较与存储

	exists, err := s.repo.Employee.ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("查询工号失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmployeeIDExists
	}

	exists, err = s.repo.Employee.ExistsByEmail(ctx, email, 0)
	if err != nil {
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	emp := &model.Employee{
		EmployeeID: code,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      email,
		Department: strings.TrimSpace(req.Department),
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.resolveDuplicate(ctx, code)
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(emp), nil
}

// resolveDuplicate 判定并发写入冲突命中的是工号约束还是邮箱约束
func (s *employeeService) resolveDuplicate(ctx context.Context, code string) error {
	exists, err := s.repo.Employee.ExistsByCode(ctx, code)
	if err == nil && exists {
		return ErrEmployeeIDExists
	}
	return ErrEmailExists
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(emp), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	req.Normalize()

	emps, total, err := s.repo.Employee.List(ctx, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, *toEmployeeResponse(&emps[i]))
	}

	return result, total, nil
}

// ────────────────────── Delete ──────────────────────
//
// 删除为级联操作：外键 ON DELETE CASCADE 在同一语句事务内
// 清理该员工的全部考勤记录，不存在部分生效

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Employee.Delete(ctx, id); err != nil {
		s.logger.Error("删除员工失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toEmployeeResponse(emp *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		CreatedAt:  emp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
