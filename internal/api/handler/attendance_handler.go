package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/service"
	"github.com/paras-antino/hrms-backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// ListAttendance 获取考勤列表（可按员工、日期过滤）
// GET /api/v1/attendance?employee_id=&date=
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, err := h.attSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// MarkAttendance 考勤打点
// POST /api/v1/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.attSvc.Mark(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, record)
}

// GetSummary 获取看板汇总
// GET /api/v1/attendance/summary
func (h *AttendanceHandler) GetSummary(c *gin.Context) {
	summary, err := h.attSvc.Summary(c.Request.Context())
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, summary)
}

// GetEmployeeAttendance 获取单员工考勤记录（可选闭区间日期范围）
// GET /api/v1/attendance/employee/:id?from=&to=
func (h *AttendanceHandler) GetEmployeeAttendance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.EmployeeAttendanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attSvc.ListByEmployee(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteAttendance 删除考勤记录
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.attSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 11001, "员工不存在")
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 12001, "考勤记录不存在")
	case errors.Is(err, service.ErrAttendanceExists):
		response.BadRequest(c, 12002, "该员工当日已有考勤记录")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 12003, "考勤状态必须为 present 或 absent")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12004, "日期格式必须为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
