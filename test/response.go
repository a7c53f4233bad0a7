package test

import (
	"testing"

	"team-recruit-system/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ErrorEqual 断言响应为指定业务错误。WithTips 会在消息后追加提示，因此只比对错误码
func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code, "msg: %s", resp.Msg)
}

// NoError 断言响应成功
func NoError(t *testing.T, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, int32(200), resp.Code, "msg: %s, origin: %s", resp.Msg, resp.Origin)
}
