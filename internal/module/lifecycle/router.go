package lifecycle

import (
	"team-recruit-system/internal/global/middleware"
	"team-recruit-system/internal/global/response"
	"time"

	"github.com/gin-gonic/gin"
)

func (l *ModuleLifecycle) InitRouter(r *gin.RouterGroup) {
	lifecycleGroup := r.Group("/lifecycle")

	// 手动触发扫描仅限管理员
	lifecycleGroup.Use(middleware.Auth(1))
	{
		lifecycleGroup.POST("/scan", ScanHandler)
	}
}

// ScanHandler 手动触发一次生命周期扫描
// 可选 date 参数（YYYY-MM-DD）用于指定"今天"，默认当前时间
func ScanHandler(c *gin.Context) {
	today := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("日期格式须为 YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	count, err := Scan(today)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, map[string]interface{}{"transitioned": count})
}
