package model

// ApplicationStatus 申请状态：PENDING 为唯一非终态，APPROVED/REJECTED 不可再变更
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application 加入申请（一个职位一条）
// Active 在 PENDING 时为 1、终态时为 NULL，配合 (posting_id, applicant_id, active)
// 唯一索引实现「同一人对同一帖最多一条未决申请」：NULL 不参与唯一冲突，
// 终态申请不会阻止再次申请，而并发重复的 PENDING 插入会触发唯一键冲突。
type Application struct {
	Model
	PostingID   uint              `gorm:"not null;uniqueIndex:idx_active_application" json:"posting_id"`
	PositionID  uint              `gorm:"not null;index" json:"position_id"`
	ApplicantID uint              `gorm:"not null;uniqueIndex:idx_active_application" json:"applicant_id"`
	Status      ApplicationStatus `gorm:"type:varchar(10);not null" json:"status"`
	Active      *int8             `gorm:"uniqueIndex:idx_active_application" json:"-"`
}

// ActiveFlag Active 列在 PENDING 状态下的取值
func ActiveFlag() *int8 {
	one := int8(1)
	return &one
}
