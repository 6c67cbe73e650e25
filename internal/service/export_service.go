package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("无可导出的考勤记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将过滤后的考勤列表导出为 Excel (.xlsx)，过滤条件与列表接口一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出考勤记录为 Excel
	ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance — 导出考勤记录为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "考勤记录"
//   - 列：工号 | 姓名 | 部门 | 邮箱 | 日期 | 状态
//   - 行序与列表接口一致（日期倒序）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest) (*bytes.Buffer, string, error) {
	filters := &repository.AttendanceListFilters{
		EmployeeID: req.EmployeeID,
	}
	if req.Date != "" {
		date, err := time.ParseInLocation(dto.DateLayout, req.Date, time.UTC)
		if err != nil {
			return nil, "", ErrInvalidDate
		}
		filters.Date = &date
	}

	atts, err := s.repo.Attendance.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(atts) == 0 {
		return nil, "", ErrExportNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤记录"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 28)
	f.SetColWidth(sheetName, "E", "F", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"工号", "姓名", "部门", "邮箱", "日期", "状态"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	// 数据行
	row := 2
	for i := range atts {
		att := &atts[i]
		code, name, dept, email := "-", "-", "-", "-"
		if att.Employee != nil {
			code = att.Employee.EmployeeID
			name = att.Employee.FullName
			dept = att.Employee.Department
			email = att.Employee.Email
		}
		f.SetCellValue(sheetName, cell("A", row), code)
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), dept)
		f.SetCellValue(sheetName, cell("D", row), email)
		f.SetCellValue(sheetName, cell("E", row), att.Date.Format(dto.DateLayout))
		f.SetCellValue(sheetName, cell("F", row), att.Status)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考勤记录_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
