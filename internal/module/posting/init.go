package posting

import (
	"log/slog"
	"team-recruit-system/internal/global/logger"
)

var log *slog.Logger

type ModulePosting struct{}

func (p *ModulePosting) GetName() string {
	return "Posting"
}

func (p *ModulePosting) Init() {
	log = logger.New("Posting")
}
