package team

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (t *ModuleTeam) InitRouter(r *gin.RouterGroup) {
	teamGroup := r.Group("/team")

	teamGroup.Use(middleware.Auth(0))
	{
		teamGroup.GET("/:id", GetTeam)
		teamGroup.POST("/:id/close", Close)
	}
}
