package model

// Position 招募帖下的职位（如 后端、设计），同一帖内名称唯一
type Position struct {
	Model
	PostingID uint   `gorm:"not null;uniqueIndex:idx_posting_position" json:"posting_id"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_posting_position" json:"name"`
}
