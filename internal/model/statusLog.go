package model

// PostingStatusLog 招募帖状态流转记录，每次流转追加一行（审计用）
type PostingStatusLog struct {
	Model
	PostingID  uint          `gorm:"not null;index" json:"posting_id"`
	FromStatus PostingStatus `gorm:"type:varchar(12);not null" json:"from_status"`
	ToStatus   PostingStatus `gorm:"type:varchar(12);not null" json:"to_status"`
	Actor      string        `gorm:"type:varchar(30);not null" json:"actor"` // 用户ID 或 "scheduler"
}
