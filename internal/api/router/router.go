package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paras-antino/hrms-backend/config"
	"github.com/paras-antino/hrms-backend/internal/api/handler"
	"github.com/paras-antino/hrms-backend/internal/api/middleware"
	"github.com/paras-antino/hrms-backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "hrms-backend"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 员工模块
		employees := v1.Group("/employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.POST("", middleware.RateLimit(rdb, 30, time.Minute), h.Employee.CreateEmployee)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
		}

		// 考勤模块
		// 注意 /summary、/export、/employee/:id 需注册在 /:id 之前无歧义：
		// Gin 静态路由优先于参数路由
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", h.Attendance.ListAttendance)
			attendance.POST("", middleware.RateLimit(rdb, 60, time.Minute), h.Attendance.MarkAttendance)
			attendance.GET("/summary", h.Attendance.GetSummary)
			attendance.GET("/export", h.Export.ExportAttendance)
			attendance.GET("/employee/:id", h.Attendance.GetEmployeeAttendance)
			attendance.DELETE("/:id", h.Attendance.DeleteAttendance)
		}
	}

	return r
}
