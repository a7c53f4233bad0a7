package application_test

import (
	"testing"

	"team-recruit-system/internal/global/chat"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/notify"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/application"
	"team-recruit-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestApplyAndApprove(t *testing.T) {
	test.Init(t)
	bridge := &test.FakeBridge{}
	gateway := &test.FakeGateway{}
	chat.Set(bridge)
	notify.Set(gateway)
	event.RegisterDefaultHandlers()

	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	app := test.Join(t, s, bob)

	var approved model.Application
	require.NoError(t, database.DB.First(&approved, "id = ?", app.ID).Error)
	require.Equal(t, model.ApplicationApproved, approved.Status)
	require.Nil(t, approved.Active)

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 1, posting.ConfirmedCount)

	var participant model.Participant
	require.NoError(t, database.DB.
		First(&participant, "posting_id = ? AND user_id = ?", s.Posting.ID, bob.ID).Error)
	require.Equal(t, model.RoleMember, participant.Role)

	var mirror model.TeamMember
	require.NoError(t, database.DB.
		First(&mirror, "team_id = ? AND user_id = ?", s.Team.ID, bob.ID).Error)

	// 事务提交后：建房 + 拉人 + 通知
	require.Equal(t, []uint{s.Team.ID}, bridge.Rooms)
	require.Equal(t, [][2]uint{{s.Team.ID, bob.ID}}, bridge.Added)
	require.Equal(t, []notify.EventKind{notify.EventApplicationApproved}, gateway.Events)
}

func TestApplyDuplicatePending(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Apply(t, s, bob)

	// 未决申请存在时重复提交被唯一索引挡住
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Apply, bob.ID, 0, application.ApplyReq{
			PostingID:  s.Posting.ID,
			PositionID: s.Position.ID,
		}))

	var count int64
	require.NoError(t, database.DB.Model(&model.Application{}).
		Where("applicant_id = ?", bob.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestReapplyAfterRejected(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	app := test.Apply(t, s, bob)

	test.NoError(t, test.DoAuthRequest(t, application.Reject, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(app.ID)}))

	// 终态申请的 active 为 NULL，不妨碍再次申请
	test.NoError(t, test.DoAuthRequest(t, application.Apply, bob.ID, 0, application.ApplyReq{
		PostingID:  s.Posting.ID,
		PositionID: s.Position.ID,
	}))

	var count int64
	require.NoError(t, database.DB.Model(&model.Application{}).
		Where("applicant_id = ?", bob.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestApplyGuards(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)

	// 发起人不能申请自己的帖
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Apply, s.Owner.ID, 0, application.ApplyReq{
			PostingID:  s.Posting.ID,
			PositionID: s.Position.ID,
		}))

	// 在队成员不能再次申请
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Apply, bob.ID, 0, application.ApplyReq{
			PostingID:  s.Posting.ID,
			PositionID: s.Position.ID,
		}))

	// 停止招募后不再接收申请
	require.NoError(t, database.DB.Model(&model.Posting{}).
		Where("id = ?", s.Posting.ID).Update("status", model.StatusOngoing).Error)
	carol := test.CreateUser(t, "carol")
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Apply, carol.ID, 0, application.ApplyReq{
			PostingID:  s.Posting.ID,
			PositionID: s.Position.ID,
		}))
}

func TestApproveLastSlot(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 1)
	bob := test.CreateUser(t, "bob")
	carol := test.CreateUser(t, "carol")
	bobApp := test.Apply(t, s, bob)
	carolApp := test.Apply(t, s, carol)

	test.NoError(t, test.DoAuthRequest(t, application.Approve, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(bobApp.ID)}))

	// 最后一个名额只属于一个人，后到的批准失败且申请保持 PENDING
	test.ErrorEqual(t, response.ErrCapacityExceeded,
		test.DoAuthRequest(t, application.Approve, s.Owner.ID, 0, nil,
			gin.Param{Key: "id", Value: test.IDParam(carolApp.ID)}))

	var still model.Application
	require.NoError(t, database.DB.First(&still, "id = ?", carolApp.ID).Error)
	require.Equal(t, model.ApplicationPending, still.Status)
	require.NotNil(t, still.Active)

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 1, posting.ConfirmedCount)

	// 满员后仍可拒绝
	test.NoError(t, test.DoAuthRequest(t, application.Reject, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(carolApp.ID)}))
}

func TestApproveExactlyOnce(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	app := test.Join(t, s, bob)

	idParam := gin.Param{Key: "id", Value: test.IDParam(app.ID)}
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Approve, s.Owner.ID, 0, nil, idParam))
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, application.Reject, s.Owner.ID, 0, nil, idParam))

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 1, posting.ConfirmedCount)
}

func TestApproveOnlyOwner(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	app := test.Apply(t, s, bob)

	idParam := gin.Param{Key: "id", Value: test.IDParam(app.ID)}
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, application.Approve, bob.ID, 0, nil, idParam))
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, application.Reject, bob.ID, 0, nil, idParam))
}
