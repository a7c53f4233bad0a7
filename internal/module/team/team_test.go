package team_test

import (
	"testing"
	"time"

	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/team"
	"team-recruit-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetTeam(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)

	resp := test.DoAuthRequest(t, team.GetTeam, bob.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)})
	test.NoError(t, resp)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	members, ok := data["members"].([]interface{})
	require.True(t, ok)
	require.Len(t, members, 2) // 队长 + bob
}

func TestCloseTeam(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}

	// 只有发起人可以关闭
	stranger := test.CreateUser(t, "bob")
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, team.Close, stranger.ID, 0, nil, idParam))

	test.NoError(t, test.DoAuthRequest(t, team.Close, s.Owner.ID, 0, nil, idParam))

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, model.StatusClosed, posting.Status)

	// 状态流转记录 + 互评轮次（7 天窗口）
	var statusLog model.PostingStatusLog
	require.NoError(t, database.DB.
		First(&statusLog, "posting_id = ? AND to_status = ?", s.Posting.ID, model.StatusClosed).Error)
	require.Equal(t, test.IDParam(s.Owner.ID), statusLog.Actor)

	var round model.EvaluationRound
	require.NoError(t, database.DB.
		First(&round, "team_id = ? AND status = ?", s.Team.ID, model.RoundOpen).Error)
	require.WithinDuration(t, round.OpenedAt.Add(model.EvaluationWindow), round.ClosesAt, time.Second)
}

func TestCloseTeamExactlyOnce(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}

	test.NoError(t, test.DoAuthRequest(t, team.Close, s.Owner.ID, 0, nil, idParam))

	// 重复关闭显式报错，CLOSED 不可逆，轮次不会多开
	test.ErrorEqual(t, response.ErrAlreadyClosed,
		test.DoAuthRequest(t, team.Close, s.Owner.ID, 0, nil, idParam))

	var rounds int64
	require.NoError(t, database.DB.Model(&model.EvaluationRound{}).
		Where("team_id = ? AND status = ?", s.Team.ID, model.RoundOpen).
		Count(&rounds).Error)
	require.EqualValues(t, 1, rounds)

	var posting model.Posting
	require.NoError(t, database.DB.First(&posting, "id = ?", s.Posting.ID).Error)
	require.Equal(t, model.StatusClosed, posting.Status)
}
