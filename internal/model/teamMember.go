package model

// TeamMember 队伍成员，与 Participant 一比一镜像，在同一事务内同步写入
type TeamMember struct {
	Model
	TeamID uint            `gorm:"not null;index" json:"team_id"`
	UserID uint            `gorm:"not null;index" json:"user_id"`
	Role   ParticipantRole `gorm:"type:varchar(10);not null" json:"role"`
}
