package roster

import (
	"team-recruit-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (r *ModuleRoster) InitRouter(g *gin.RouterGroup) {
	rosterGroup := g.Group("/team")

	rosterGroup.Use(middleware.Auth(0))
	{
		rosterGroup.POST("/:id/expel/:userId", Expel)
		rosterGroup.POST("/:id/withdraw", Withdraw)
	}
}
