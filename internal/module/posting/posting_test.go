package posting_test

import (
	"testing"
	"time"

	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/posting"
	"team-recruit-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCreatePostingCreatesTeamAndLeader(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 3)

	require.Equal(t, model.StatusRecruiting, s.Posting.Status)
	require.Equal(t, 0, s.Posting.ConfirmedCount)
	require.Equal(t, s.Owner.ID, s.Team.OwnerID)
	require.Equal(t, s.Posting.Kind, s.Team.Kind)

	// 队长成员记录与 TeamMember 镜像随帖创建
	var leader model.Participant
	require.NoError(t, database.DB.
		First(&leader, "posting_id = ? AND role = ?", s.Posting.ID, model.RoleLeader).Error)
	require.Equal(t, s.Owner.ID, leader.UserID)

	var mirror model.TeamMember
	require.NoError(t, database.DB.
		First(&mirror, "team_id = ? AND user_id = ?", s.Team.ID, s.Owner.ID).Error)
	require.Equal(t, model.RoleLeader, mirror.Role)
}

func TestCreatePostingValidation(t *testing.T) {
	test.Init(t)
	owner := test.CreateUser(t, "alice")

	valid := posting.PostingCreateReq{
		Kind:           model.KindStudy,
		Title:          "算法学习小组",
		Capacity:       2,
		StartDate:      time.Now().Unix(),
		DurationMonths: 1,
	}

	req := valid
	req.Kind = "CLUB"
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, posting.CreatePosting, owner.ID, 0, req))

	req = valid
	req.Capacity = -1
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, posting.CreatePosting, owner.ID, 0, req))

	req = valid
	req.AgeMin = 25
	req.AgeMax = 18
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, posting.CreatePosting, owner.ID, 0, req))

	// 同帖内职位名不能重复，整个创建回滚
	req = valid
	req.Positions = []string{"后端", "后端"}
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, posting.CreatePosting, owner.ID, 0, req))

	var count int64
	require.NoError(t, database.DB.Model(&model.Posting{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdatePosting(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Posting.ID)}

	title := "改个标题"
	test.NoError(t, test.DoAuthRequest(t, posting.UpdatePosting, s.Owner.ID, 0,
		posting.PostingUpdateReq{Title: &title}, idParam))

	var updated model.Posting
	require.NoError(t, database.DB.First(&updated, "id = ?", s.Posting.ID).Error)
	require.Equal(t, title, updated.Title)

	// 非发起人不能修改
	stranger := test.CreateUser(t, "bob")
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, posting.UpdatePosting, stranger.ID, 0,
			posting.PostingUpdateReq{Title: &title}, idParam))

	// 名额不能压到已确认成员数以下
	member := test.CreateUser(t, "carol")
	test.Join(t, s, member)
	zero := 0
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, posting.UpdatePosting, s.Owner.ID, 0,
			posting.PostingUpdateReq{Capacity: &zero}, idParam))

	// 已关闭的帖不可再修改
	require.NoError(t, database.DB.Model(&model.Posting{}).
		Where("id = ?", s.Posting.ID).Update("status", model.StatusClosed).Error)
	test.ErrorEqual(t, response.ErrAlreadyClosed,
		test.DoAuthRequest(t, posting.UpdatePosting, s.Owner.ID, 0,
			posting.PostingUpdateReq{Title: &title}, idParam))
}

func TestDeleteAndRestorePosting(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Posting.ID)}

	test.NoError(t, test.DoAuthRequest(t, posting.DeletePosting, s.Owner.ID, 0, nil, idParam))

	// 已删除的帖对外等同不存在
	test.ErrorEqual(t, response.ErrNotFound,
		test.DoAuthRequest(t, posting.GetPosting, s.Owner.ID, 0, nil, idParam))

	test.NoError(t, test.DoAuthRequest(t, posting.RestorePosting, s.Owner.ID, 0, nil, idParam))
	test.NoError(t, test.DoAuthRequest(t, posting.GetPosting, s.Owner.ID, 0, nil, idParam))
}

func TestAddAndRemovePosition(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Posting.ID)}

	test.NoError(t, test.DoAuthRequest(t, posting.AddPosition, s.Owner.ID, 0,
		posting.PositionAddReq{Name: "设计"}, idParam))

	// 同名职位重复添加
	test.ErrorEqual(t, response.ErrAlreadyExists,
		test.DoAuthRequest(t, posting.AddPosition, s.Owner.ID, 0,
			posting.PositionAddReq{Name: "设计"}, idParam))

	var pos model.Position
	require.NoError(t, database.DB.
		First(&pos, "posting_id = ? AND name = ?", s.Posting.ID, "设计").Error)

	test.NoError(t, test.DoAuthRequest(t, posting.RemovePosition, s.Owner.ID, 0, nil,
		idParam, gin.Param{Key: "positionId", Value: test.IDParam(pos.ID)}))

	// 有在队成员的职位不能删除
	member := test.CreateUser(t, "dave")
	test.Join(t, s, member)
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, posting.RemovePosition, s.Owner.ID, 0, nil,
			idParam, gin.Param{Key: "positionId", Value: test.IDParam(s.Position.ID)}))
}
