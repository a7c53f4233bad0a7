package audit

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleAudit) InitRouter(r *gin.RouterGroup) {
	auditGroup := r.Group("/audit")

	auditGroup.Use(middleware.Auth(0))
	{
		auditGroup.GET("/posting/:id/history", PostingHistory)
		auditGroup.GET("/posting/:id/exits", PostingExits)
		auditGroup.GET("/team/:id/rounds", TeamRounds)
	}

	adminGroup := r.Group("/audit")
	adminGroup.Use(middleware.Auth(1))
	{
		adminGroup.GET("/posting/:id/export", ExportPosting)
	}
}
