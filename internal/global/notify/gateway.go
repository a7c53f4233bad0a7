package notify

import (
	"log/slog"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/httpclient"
	"team-recruit-system/internal/global/logger"
)

// EventKind 通知事件类型
type EventKind string

const (
	EventApplicationApproved EventKind = "application.approved"
	EventApplicationRejected EventKind = "application.rejected"
	EventMemberExpelled      EventKind = "member.expelled"
	EventMemberWithdrawn     EventKind = "member.withdrawn"
	EventTeamClosed          EventKind = "team.closed"
)

// Gateway 推送通知网关。投递语义为 at-least-once、发后不管：
// 通知失败只记日志，绝不回滚已提交的业务状态。
type Gateway interface {
	Emit(kind EventKind, payload map[string]any)
}

var (
	instance Gateway
	log      *slog.Logger
)

func Init() {
	log = logger.New("Notify")
	if config.Get().Notify.BaseURL == "" {
		instance = noopGateway{}
		log.Info("通知网关未配置，通知事件仅记日志")
		return
	}
	instance = &httpGateway{baseURL: config.Get().Notify.BaseURL, token: config.Get().Notify.Token}
}

func Get() Gateway {
	if instance == nil {
		Init()
	}
	return instance
}

// Set 仅供测试注入
func Set(g Gateway) {
	instance = g
}

type httpGateway struct {
	baseURL string
	token   string
}

func (g *httpGateway) Emit(kind EventKind, payload map[string]any) {
	resp, err := httpclient.Client.R().
		SetAuthToken(g.token).
		SetBody(map[string]any{"kind": string(kind), "payload": payload}).
		Post(g.baseURL + "/events")
	if err != nil {
		log.Warn("通知发送失败", "kind", kind, "error", err)
		return
	}
	if resp.IsError() {
		log.Warn("通知发送失败", "kind", kind, "status", resp.Status())
	}
}

type noopGateway struct{}

func (noopGateway) Emit(kind EventKind, payload map[string]any) {
	log.Info("通知事件", "kind", kind, "payload", payload)
}
