package model

// ParticipantRole 成员角色；每帖有且仅有一个未删除的 LEADER，随帖创建
type ParticipantRole string

const (
	RoleLeader ParticipantRole = "LEADER"
	RoleMember ParticipantRole = "MEMBER"
)

// ExitReason 退出原因，软删除时一并写入
type ExitReason string

const (
	ExitExpelled  ExitReason = "EXPELLED"
	ExitWithdrawn ExitReason = "WITHDRAWN"
)

// Participant 已确认的队伍成员（按招募帖）
// 软删除 + exit_reason 表达 ACTIVE → EXPELLED | WITHDRAWN 的退出状态机；
// 删除走「deleted_at IS NULL 条件更新」保证恰好一次。
type Participant struct {
	Model
	PostingID  uint            `gorm:"not null;index" json:"posting_id"`
	PositionID uint            `gorm:"default:null" json:"position_id"` // 队长无职位
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Role       ParticipantRole `gorm:"type:varchar(10);not null" json:"role"`
	ExitReason ExitReason      `gorm:"type:varchar(10);default:null" json:"exit_reason,omitempty"`
}
