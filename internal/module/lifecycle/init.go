package lifecycle

import (
	"log/slog"
	"team-recruit-system/internal/global/logger"
)

var log *slog.Logger

type ModuleLifecycle struct{}

func (l *ModuleLifecycle) GetName() string {
	return "Lifecycle"
}

func (l *ModuleLifecycle) Init() {
	log = logger.New("Lifecycle")
}
