package audit

import (
	"log/slog"
	"team-recruit-system/internal/global/logger"
)

var log *slog.Logger

type ModuleAudit struct{}

func (a *ModuleAudit) GetName() string {
	return "Audit"
}

func (a *ModuleAudit) Init() {
	log = logger.New("Audit")
}
