package posting

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModulePosting) InitRouter(r *gin.RouterGroup) {
	// 招募帖相关端点以 /posting 为前缀
	postingGroup := r.Group("/posting")

	postingGroup.Use(middleware.Auth(0))
	{
		postingGroup.GET("/list", ListPostings)
		postingGroup.GET("/get/:id", GetPosting)
		postingGroup.POST("/create", CreatePosting)
		postingGroup.PUT("/update/:id", UpdatePosting)
		postingGroup.DELETE("/delete/:id", DeletePosting)
		postingGroup.PUT("/restore/:id", RestorePosting)

		postingGroup.POST("/:id/position", AddPosition)
		postingGroup.DELETE("/:id/position/:positionId", RemovePosition)
	}
}
