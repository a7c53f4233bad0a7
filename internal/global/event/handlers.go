package event

import (
	"team-recruit-system/internal/global/chat"
	"team-recruit-system/internal/global/notify"
)

// RegisterDefaultHandlers 注册默认订阅方：聊天成员同步 + 通知推送。
// 两个订阅方各自失败各自记日志，互不影响，也不影响已提交的业务状态。
func RegisterDefaultHandlers() {
	Subscribe(syncChat)
	Subscribe(emitNotification)
}

func syncChat(e MembershipEvent) {
	bridge := chat.Get()
	switch e.Kind {
	case MemberJoined:
		// 首次加人前确保房间存在；并发建房的重复冲突在桥内部按成功吞掉
		if err := bridge.EnsureRoomExists(&e.Team); err != nil {
			getLog().Warn("确保聊天房间存在失败", "team_id", e.Team.ID, "error", err)
			return
		}
		if err := bridge.AddMember(e.Team.ID, e.UserID); err != nil {
			getLog().Warn("聊天成员同步失败", "team_id", e.Team.ID, "user_id", e.UserID, "error", err)
		}
	case MemberExpelled, MemberWithdrawn:
		if err := bridge.RemoveMember(e.Team.ID, e.UserID); err != nil {
			getLog().Warn("聊天成员移除失败", "team_id", e.Team.ID, "user_id", e.UserID, "error", err)
		}
	}
}

func emitNotification(e MembershipEvent) {
	gateway := notify.Get()
	payload := map[string]any{"team_id": e.Team.ID, "user_id": e.UserID}
	for k, v := range e.Payload {
		payload[k] = v
	}
	switch e.Kind {
	case MemberJoined:
		gateway.Emit(notify.EventApplicationApproved, payload)
	case MemberExpelled:
		gateway.Emit(notify.EventMemberExpelled, payload)
	case MemberWithdrawn:
		gateway.Emit(notify.EventMemberWithdrawn, payload)
	case TeamClosed:
		gateway.Emit(notify.EventTeamClosed, payload)
	}
}
