package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"team-recruit-system/internal/global/jwt"
	"team-recruit-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// DoRequest 以 JSON 请求体调用 handler，返回统一响应体
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) (resp response.ResponseBody) {
	return doRequest(t, handlerFunc, nil, request)
}

// DoAuthRequest 以指定用户身份调用 handler，params 用于填充路由参数（如 :id）
func DoAuthRequest(t *testing.T, handlerFunc gin.HandlerFunc, userID uint, roleID int, request any, params ...gin.Param) (resp response.ResponseBody) {
	claims := &jwt.Claims{Payload: jwt.Payload{UserID: userID, RoleID: roleID}}
	return doRequest(t, handlerFunc, claims, request, params...)
}

func doRequest(t *testing.T, handlerFunc gin.HandlerFunc, claims *jwt.Claims, request any, params ...gin.Param) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := bytes.NewReader(nil)
	if request != nil {
		requestBytes, err := json.Marshal(request)
		require.NoError(t, err)
		body = bytes.NewReader(requestBytes)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/test", body)
	c.Params = params
	if claims != nil {
		c.Set("payload", claims)
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}
