package model

// Team 队伍：围绕招募帖的组织壳，承接聊天/通知/互评，随帖创建、一一对应
type Team struct {
	Model
	RecruitmentID uint            `gorm:"not null;uniqueIndex:idx_team_recruitment" json:"recruitment_id"`
	Kind          RecruitmentKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_team_recruitment" json:"kind"`
	OwnerID       uint            `gorm:"not null;index" json:"owner_id"`
	Title         string          `gorm:"type:varchar(100);not null" json:"title"`
}
