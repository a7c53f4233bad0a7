package chat

import (
	"fmt"
	"log/slog"
	"net/http"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/httpclient"
	"team-recruit-system/internal/global/logger"
	"team-recruit-system/internal/model"

	"github.com/pkg/errors"
)

// Bridge 聊天服务的成员同步桥接口。聊天消息的存储与投递在聊天服务侧，
// 这里只负责把 roster 变更同步过去。
type Bridge interface {
	EnsureRoomExists(team *model.Team) error
	AddMember(teamID uint, userID uint) error
	RemoveMember(teamID uint, userID uint) error
}

var instance Bridge

var log *slog.Logger

// Init 按配置选择 HTTP 桥或空实现（未配置聊天服务时）
func Init() {
	log = logger.New("ChatBridge")
	if config.Get().Chat.BaseURL == "" {
		instance = noopBridge{}
		log.Info("聊天服务未配置，成员同步为空操作")
		return
	}
	instance = &httpBridge{baseURL: config.Get().Chat.BaseURL, token: config.Get().Chat.Token}
}

// Get 获取全局桥实例
func Get() Bridge {
	if instance == nil {
		Init()
	}
	return instance
}

// Set 仅供测试注入
func Set(b Bridge) {
	instance = b
}

type httpBridge struct {
	baseURL string
	token   string
}

func (b *httpBridge) EnsureRoomExists(team *model.Team) error {
	resp, err := httpclient.Client.R().
		SetAuthToken(b.token).
		SetBody(map[string]any{"team_id": team.ID, "title": team.Title}).
		Post(b.baseURL + "/rooms")
	if err != nil {
		return errors.Wrap(err, "创建聊天房间请求失败")
	}
	// 两次并发审批同时触发首次建房是良性竞争，重复创建按成功处理
	if resp.StatusCode() == http.StatusConflict {
		return nil
	}
	if resp.IsError() {
		return errors.Errorf("创建聊天房间失败: %s", resp.Status())
	}
	return nil
}

func (b *httpBridge) AddMember(teamID uint, userID uint) error {
	resp, err := httpclient.Client.R().
		SetAuthToken(b.token).
		SetBody(map[string]any{"user_id": userID}).
		Post(fmt.Sprintf("%s/rooms/%d/members", b.baseURL, teamID))
	if err != nil {
		return errors.Wrap(err, "同步聊天成员失败")
	}
	if resp.StatusCode() == http.StatusConflict {
		// 已在房间内，视为成功
		return nil
	}
	if resp.IsError() {
		return errors.Errorf("同步聊天成员失败: %s", resp.Status())
	}
	return nil
}

func (b *httpBridge) RemoveMember(teamID uint, userID uint) error {
	resp, err := httpclient.Client.R().
		SetAuthToken(b.token).
		Delete(fmt.Sprintf("%s/rooms/%d/members/%d", b.baseURL, teamID, userID))
	if err != nil {
		return errors.Wrap(err, "移除聊天成员失败")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return errors.Errorf("移除聊天成员失败: %s", resp.Status())
	}
	return nil
}

type noopBridge struct{}

func (noopBridge) EnsureRoomExists(*model.Team) error { return nil }
func (noopBridge) AddMember(uint, uint) error         { return nil }
func (noopBridge) RemoveMember(uint, uint) error      { return nil }
