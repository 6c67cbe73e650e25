package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/paras-antino/hrms-backend/internal/dto"
	"github.com/paras-antino/hrms-backend/internal/service"
	"github.com/paras-antino/hrms-backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// ListEmployees 获取员工列表
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	req.Normalize()

	emps, total, err := h.empSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, emps, total, req.Page, req.PageSize)
}

// CreateEmployee 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// GetEmployee 获取员工详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// DeleteEmployee 删除员工（级联删除其全部考勤记录）
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 11001, "员工不存在")
	case errors.Is(err, service.ErrEmployeeIDExists):
		response.BadRequest(c, 11002, "工号已存在")
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, 11003, "邮箱已被使用")
	default:
		response.InternalError(c)
	}
}

// parseIDParam 解析路径参数 :id 为数据库主键
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID 必须为正整数")
		return 0, false
	}
	return id, true
}
