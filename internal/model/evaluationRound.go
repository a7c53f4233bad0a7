package model

import "time"

// EvaluationRoundStatus 互评轮次状态
type EvaluationRoundStatus string

const (
	RoundOpen   EvaluationRoundStatus = "OPEN"
	RoundClosed EvaluationRoundStatus = "CLOSED"
)

// EvaluationRound 队伍关闭时开启的互评窗口，每队同时最多一个 OPEN
type EvaluationRound struct {
	Model
	TeamID   uint                  `gorm:"not null;index" json:"team_id"`
	Status   EvaluationRoundStatus `gorm:"type:varchar(10);not null" json:"status"`
	OpenedAt time.Time             `gorm:"not null" json:"opened_at"`
	ClosesAt time.Time             `gorm:"not null" json:"closes_at"` // opened_at + 7 天
}

// EvaluationWindow 互评窗口时长
const EvaluationWindow = 7 * 24 * time.Hour
