package audit_test

import (
	"testing"

	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/module/audit"
	"team-recruit-system/internal/module/roster"
	"team-recruit-system/internal/module/team"
	"team-recruit-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPostingHistory(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)

	test.NoError(t, test.DoAuthRequest(t, team.Close, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}))

	idParam := gin.Param{Key: "id", Value: test.IDParam(s.Posting.ID)}
	resp := test.DoAuthRequest(t, audit.PostingHistory, s.Owner.ID, 0, nil, idParam)
	test.NoError(t, resp)
	logs, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, logs, 1)

	// 旁人不可见，管理员可见
	stranger := test.CreateUser(t, "bob")
	test.ErrorEqual(t, response.ErrForbidden,
		test.DoAuthRequest(t, audit.PostingHistory, stranger.ID, 0, nil, idParam))
	test.NoError(t, test.DoAuthRequest(t, audit.PostingHistory, stranger.ID, 1, nil, idParam))
}

func TestPostingExits(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)
	bob := test.CreateUser(t, "bob")
	test.Join(t, s, bob)

	test.NoError(t, test.DoAuthRequest(t, roster.Expel, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)},
		gin.Param{Key: "userId", Value: test.IDParam(bob.ID)}))

	resp := test.DoAuthRequest(t, audit.PostingExits, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Posting.ID)})
	test.NoError(t, resp)
	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)

	record, ok := records[0].(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, bob.ID, record["user_id"])
	require.EqualValues(t, "EXPELLED", record["exit_reason"])
}

func TestTeamRounds(t *testing.T) {
	test.Init(t)
	s := test.NewScenario(t, 2)

	test.NoError(t, test.DoAuthRequest(t, team.Close, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)}))

	resp := test.DoAuthRequest(t, audit.TeamRounds, s.Owner.ID, 0, nil,
		gin.Param{Key: "id", Value: test.IDParam(s.Team.ID)})
	test.NoError(t, resp)
	rounds, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rounds, 1)
}
