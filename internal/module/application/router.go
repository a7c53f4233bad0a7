package application

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleApplication) InitRouter(r *gin.RouterGroup) {
	applicationGroup := r.Group("/application")

	applicationGroup.Use(middleware.Auth(0))
	{
		applicationGroup.POST("/apply", Apply)
		applicationGroup.POST("/approve/:id", Approve)
		applicationGroup.POST("/reject/:id", Reject)
		applicationGroup.GET("/list", ListByPosting)
		applicationGroup.GET("/mine", ListMine)
	}
}
