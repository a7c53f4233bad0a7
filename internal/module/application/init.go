package application

import (
	"log/slog"
	"team-recruit-system/internal/global/logger"
)

var log *slog.Logger

type ModuleApplication struct{}

func (a *ModuleApplication) GetName() string {
	return "Application"
}

func (a *ModuleApplication) Init() {
	log = logger.New("Application")
}
