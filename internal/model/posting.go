package model

// RecruitmentKind 招募类型：项目 / 学习小组，同一套工作流按 kind 区分
type RecruitmentKind string

const (
	KindProject RecruitmentKind = "PROJECT"
	KindStudy   RecruitmentKind = "STUDY"
)

func (k RecruitmentKind) Valid() bool {
	return k == KindProject || k == KindStudy
}

// PostingStatus 招募帖状态机：RECRUITING → ONGOING → CLOSED，CLOSED 为终态
type PostingStatus string

const (
	StatusRecruiting PostingStatus = "RECRUITING"
	StatusOngoing    PostingStatus = "ONGOING"
	StatusClosed     PostingStatus = "CLOSED"
)

// Posting 招募帖（项目/学习招募）
type Posting struct {
	Model
	OwnerID        uint            `gorm:"not null;index" json:"owner_id"`           // 发起人（队长）用户ID
	Kind           RecruitmentKind `gorm:"type:varchar(10);not null" json:"kind"`    // 招募类型
	Status         PostingStatus   `gorm:"type:varchar(12);not null" json:"status"`  // 当前状态
	Title          string          `gorm:"type:varchar(100);not null" json:"title"`  // 标题
	Content        string          `gorm:"type:text" json:"content"`                 // 正文
	Capacity       int             `gorm:"not null" json:"capacity"`                 // 成员名额（不含队长），>=1
	ConfirmedCount int             `gorm:"not null;default:0" json:"confirmed"`      // 已确认成员数，审批时以条件更新做并发守卫
	StartDate      int64           `gorm:"not null;index" json:"start_date"`         // 开始日期（Unix 秒）
	DurationMonths int             `gorm:"not null" json:"expected_duration_months"` // 预计持续月数
	AgeMin         int             `gorm:"default:0" json:"age_min"`                 // 年龄下限，0 表示不限
	AgeMax         int             `gorm:"default:0" json:"age_max"`                 // 年龄上限，0 表示不限

	Positions []Position `gorm:"foreignKey:PostingID" json:"positions,omitempty"`
}
