package user_test

import (
	"testing"

	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/module/user"
	"team-recruit-system/test"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	test.Init(t)

	registerReq := user.RegisterReq{Username: "alice", Password: "secret123", NickName: "爱丽丝"}
	test.NoError(t, test.DoRequest(t, user.Register, registerReq))

	// 用户名唯一
	test.ErrorEqual(t, response.ErrAlreadyExists, test.DoRequest(t, user.Register, registerReq))

	test.NoError(t, test.DoRequest(t, user.Login,
		user.LoginReq{Username: "alice", Password: "secret123"}))

	// 密码错误与用户不存在返回同一个错误，不泄露哪个不对
	test.ErrorEqual(t, response.ErrInvalidPassword, test.DoRequest(t, user.Login,
		user.LoginReq{Username: "alice", Password: "wrong"}))
	test.ErrorEqual(t, response.ErrInvalidPassword, test.DoRequest(t, user.Login,
		user.LoginReq{Username: "nobody", Password: "secret123"}))
}

func TestMe(t *testing.T) {
	test.Init(t)

	test.NoError(t, test.DoRequest(t, user.Register,
		user.RegisterReq{Username: "alice", Password: "secret123", NickName: "爱丽丝"}))
	resp := test.DoRequest(t, user.Login,
		user.LoginReq{Username: "alice", Password: "secret123"})
	test.NoError(t, resp)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	userID := uint(data["user_id"].(float64))

	resp = test.DoAuthRequest(t, user.Me, userID, 0, nil)
	test.NoError(t, resp)
	me, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "alice", me["username"])
	// 信誉服务未配置时回落到默认温度
	require.EqualValues(t, 36.5, me["temperature"])
}
