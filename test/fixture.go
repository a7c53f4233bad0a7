package test

import (
	"strconv"
	"testing"
	"time"

	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/application"
	"team-recruit-system/internal/module/posting"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// CreateUser 插入一个测试用户
func CreateUser(t *testing.T, username string) *model.User {
	t.Helper()
	u := model.User{Username: username, Password: "test-hash", NickName: username}
	require.NoError(t, database.DB.Create(&u).Error)
	return &u
}

// Scenario 一个最小的招募场景：发起人 + 招募帖（含一个职位）+ 随帖创建的队伍
type Scenario struct {
	Owner    *model.User
	Posting  model.Posting
	Team     model.Team
	Position model.Position
}

// NewScenario 通过创建接口搭建场景，capacity 为成员名额（不含队长）
func NewScenario(t *testing.T, capacity int) *Scenario {
	t.Helper()
	owner := CreateUser(t, "owner")
	resp := DoAuthRequest(t, posting.CreatePosting, owner.ID, 0, posting.PostingCreateReq{
		Kind:           model.KindProject,
		Title:          "分布式爬虫项目",
		Content:        "找队友",
		Capacity:       capacity,
		StartDate:      time.Now().AddDate(0, 0, 7).Unix(),
		DurationMonths: 2,
		Positions:      []string{"后端"},
	})
	NoError(t, resp)

	s := Scenario{Owner: owner}
	require.NoError(t, database.DB.First(&s.Posting, "owner_id = ?", owner.ID).Error)
	require.NoError(t, database.DB.First(&s.Team, "recruitment_id = ?", s.Posting.ID).Error)
	require.NoError(t, database.DB.First(&s.Position, "posting_id = ?", s.Posting.ID).Error)
	return &s
}

// Apply 以 user 身份向场景的职位提交申请，返回申请记录
func Apply(t *testing.T, s *Scenario, user *model.User) *model.Application {
	t.Helper()
	resp := DoAuthRequest(t, application.Apply, user.ID, 0, application.ApplyReq{
		PostingID:  s.Posting.ID,
		PositionID: s.Position.ID,
	})
	NoError(t, resp)

	var app model.Application
	require.NoError(t, database.DB.
		First(&app, "posting_id = ? AND applicant_id = ?", s.Posting.ID, user.ID).Error)
	return &app
}

// Join 以 user 身份申请并由发起人批准，成为队伍成员
func Join(t *testing.T, s *Scenario, user *model.User) *model.Application {
	t.Helper()
	app := Apply(t, s, user)
	resp := DoAuthRequest(t, application.Approve, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: IDParam(app.ID)})
	NoError(t, resp)
	return app
}

// IDParam 把数据库主键转成路由参数值
func IDParam(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
