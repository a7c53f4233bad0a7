package test

import (
	"sync"

	"team-recruit-system/internal/global/notify"
	"team-recruit-system/internal/model"
)

// FakeBridge 记录聊天同步调用，供测试断言
type FakeBridge struct {
	mu      sync.Mutex
	Rooms   []uint
	Added   [][2]uint // {teamID, userID}
	Removed [][2]uint
}

func (b *FakeBridge) EnsureRoomExists(team *model.Team) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Rooms = append(b.Rooms, team.ID)
	return nil
}

func (b *FakeBridge) AddMember(teamID, userID uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Added = append(b.Added, [2]uint{teamID, userID})
	return nil
}

func (b *FakeBridge) RemoveMember(teamID, userID uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Removed = append(b.Removed, [2]uint{teamID, userID})
	return nil
}

// FakeGateway 记录通知事件，供测试断言
type FakeGateway struct {
	mu     sync.Mutex
	Events []notify.EventKind
}

func (g *FakeGateway) Emit(kind notify.EventKind, payload map[string]any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Events = append(g.Events, kind)
}
