package user

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/register", Register)
		userGroup.POST("/login", Login)
	}

	authGroup := r.Group("/user")
	authGroup.Use(middleware.Auth(0))
	{
		authGroup.GET("/me", Me)
	}
}
