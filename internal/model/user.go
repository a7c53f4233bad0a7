package model

type User struct {
	Model
	Username string `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	RoleID   int    `gorm:"default:0;not null" json:"role_id"`
	NickName string `gorm:"type:varchar(30);not null" json:"nick_name"`
	Avatar   string `gorm:"type:varchar(255);" json:"avatar"`
	// 信誉温度的本地快照，权威值来自信誉服务（只读）
	Temperature float64 `gorm:"default:36.5" json:"temperature"`
}
