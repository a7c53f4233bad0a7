package module

import (
	"team-recruit-system/internal/module/application"
	"team-recruit-system/internal/module/audit"
	"team-recruit-system/internal/module/lifecycle"
	"team-recruit-system/internal/module/ping"
	"team-recruit-system/internal/module/posting"
	"team-recruit-system/internal/module/roster"
	"team-recruit-system/internal/module/team"
	"team-recruit-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&posting.ModulePosting{},
		&application.ModuleApplication{},
		&roster.ModuleRoster{},
		&team.ModuleTeam{},
		&lifecycle.ModuleLifecycle{},
		&audit.ModuleAudit{},
	})
}
