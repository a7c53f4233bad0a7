package roster

import (
	"log/slog"
	"team-recruit-system/internal/global/logger"
)

var log *slog.Logger

type ModuleRoster struct{}

func (r *ModuleRoster) GetName() string {
	return "Roster"
}

func (r *ModuleRoster) Init() {
	log = logger.New("Roster")
}
