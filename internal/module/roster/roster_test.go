package roster_test

import (
	"testing"

	"team-recruit-system/internal/global/chat"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/notify"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/roster"
	"team-recruit-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestExpel(t *testing.T) {
	test.Init(t)
	bridge := &test.FakeBridge{}
	gateway := &test.FakeGateway{}
	chat.Set(bridge)
	notify.Set(gateway)
	event.RegisterDefaultHandlers()

	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)

	teamParam := gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}
	userParam := gin.Param{Key: "userId", Value: test.IDParam(bob.ID)}
	test.NoError(t, test.DoAuthRequest(t, roster.Expel, s.Owner.ID, 0, nil, teamParam, userParam))

	// 软删除 + 退出原因，名额回收
	var participant model.Participant
	require.NoError(t, database.DB.Unscoped().
		First(&participant, "posting_id = ? AND user_id = ?", s.Posting.ID, bob.ID).Error)
	require.True(t, participant.DeletedAt.Valid)
	require.Equal(t, model.ExitExpelled, participant.ExitReason)

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 0, posting.ConfirmedCount)

	require.Equal(t, [][2]uint{{s.Team.ID, bob.ID}}, bridge.Removed)
	require.Contains(t, gateway.Events, notify.EventMemberExpelled)

	// 对已退出成员重复移出是冲突，不是静默成功
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, roster.Expel, s.Owner.ID, 0, nil, teamParam, userParam))

	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 0, posting.ConfirmedCount)
}

func TestExpelGuards(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)

	teamParam := gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}

	// 只有队长可以移出成员
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, roster.Expel, bob.ID, 0, nil, teamParam,
			gin.Param{Key: "userId", Value: test.IDParam(bob.ID)}))

	// 队长不能被移出
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoAuthRequest(t, roster.Expel, s.Owner.ID, 0, nil, teamParam,
			gin.Param{Key: "userId", Value: test.IDParam(s.Owner.ID)}))

	// 非成员目标
	stranger := test.CreateUser(t, "carol")
	test.ErrorEqual(t, response.ErrNotFound,
		test.DoAuthRequest(t, roster.Expel, s.Owner.ID, 0, nil, teamParam,
			gin.Param{Key: "userId", Value: test.IDParam(stranger.ID)}))
}

func TestWithdraw(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)

	teamParam := gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}

	// 确认文本必须逐字一致，不一致时不产生任何状态变化
	test.ErrorEqual(t, response.ErrConfirmText,
		test.DoAuthRequest(t, roster.Withdraw, bob.ID, 0,
			roster.WithdrawReq{ConfirmText: "退出"}, teamParam))

	var participant model.Participant
	require.NoError(t, database.DB.
		First(&participant, "posting_id = ? AND user_id = ?", s.Posting.ID, bob.ID).Error)
	require.False(t, participant.DeletedAt.Valid)

	test.NoError(t, test.DoAuthRequest(t, roster.Withdraw, bob.ID, 0,
		roster.WithdrawReq{ConfirmText: roster.WithdrawConfirmText}, teamParam))

	require.NoError(t, database.DB.Unscoped().
		First(&participant, "posting_id = ? AND user_id = ?", s.Posting.ID, bob.ID).Error)
	require.True(t, participant.DeletedAt.Valid)
	require.Equal(t, model.ExitWithdrawn, participant.ExitReason)

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, 0, posting.ConfirmedCount)

	// 重复退队是冲突
	test.ErrorEqual(t, response.ErrConflict,
		test.DoAuthRequest(t, roster.Withdraw, bob.ID, 0,
			roster.WithdrawReq{ConfirmText: roster.WithdrawConfirmText}, teamParam))
}

func TestWithdrawLeaderForbidden(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)

	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, roster.Withdraw, s.Owner.ID, 0,
			roster.WithdrawReq{ConfirmText: roster.WithdrawConfirmText},
			gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}))
}
