package server

import (
	"context"
	"fmt"
	"log/slog"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/chat"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/httpclient"
	"team-recruit-system/internal/global/logger"
	"team-recruit-system/internal/global/middleware"
	"team-recruit-system/internal/global/notify"
	internalOtel "team-recruit-system/internal/global/otel"
	internalRedis "team-recruit-system/internal/global/redis"
	internalSentry "team-recruit-system/internal/global/sentry"
	"team-recruit-system/internal/module"
	"team-recruit-system/internal/module/lifecycle"
	"team-recruit-system/tools"
	"time"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

const flushTimeout = 2 * time.Second

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := internalSentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()
	internalRedis.Init()
	httpclient.Init()
	chat.Init()
	notify.Init()

	// 事务提交后的成员变更事件：聊天同步 + 通知推送
	event.RegisterDefaultHandlers()
	event.Start()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}

	lifecycle.StartScheduler()
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(internalSentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}

// Shutdown 退出前的清理：刷 Sentry 缓冲、关 OTel TracerProvider
func Shutdown(ctx context.Context) {
	internalSentry.Flush(flushTimeout)
	if config.Get().OTel.Enable {
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
}
