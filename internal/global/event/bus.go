package event

import (
	"log/slog"
	"sync"
	"team-recruit-system/internal/global/logger"
	"team-recruit-system/internal/model"
)

// Kind 成员变更事件类型
type Kind string

const (
	MemberJoined    Kind = "member.joined"
	MemberExpelled  Kind = "member.expelled"
	MemberWithdrawn Kind = "member.withdrawn"
	TeamClosed      Kind = "team.closed"
)

// MembershipEvent 事务提交后发布的成员变更事件。
// Participant 是唯一权威写入，聊天同步、通知推送都由订阅方消费本事件完成，
// 因此数据库事务里绝不发生网络调用。
type MembershipEvent struct {
	Kind    Kind
	Team    model.Team
	UserID  uint
	Payload map[string]any
}

// Handler 事件处理函数；处理失败只记日志，不影响其他订阅方
type Handler func(MembershipEvent)

var (
	mu       sync.RWMutex
	handlers []Handler
	ch       chan MembershipEvent
	logOnce  sync.Once
	log      *slog.Logger
)

func getLog() *slog.Logger {
	logOnce.Do(func() {
		log = logger.New("Event")
	})
	return log
}

// Subscribe 注册事件处理函数，须在 Start 之前完成
func Subscribe(h Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, h)
}

// Start 启动异步分发协程
func Start() {
	ch = make(chan MembershipEvent, 256)
	go func() {
		for e := range ch {
			dispatch(e)
		}
	}()
}

// Publish 发布事件。必须在事务提交之后调用。
// 未启动异步分发时（测试场景）同步分发，便于断言。
func Publish(e MembershipEvent) {
	if ch == nil {
		dispatch(e)
		return
	}
	select {
	case ch <- e:
	default:
		// 队列满时丢到当前协程处理，保证 at-least-once
		dispatch(e)
	}
}

func dispatch(e MembershipEvent) {
	mu.RLock()
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	mu.RUnlock()
	for _, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					getLog().Error("事件处理 panic", "kind", e.Kind, "panic", r)
				}
			}()
			h(e)
		}()
	}
}

// Reset 仅供测试清空订阅方
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	handlers = nil
	ch = nil
}
