package response

import (
	"net/http"
	"team-recruit-system/config"

	"github.com/gin-gonic/gin"
)

// 错误码按 HTTP 语义分段：401xx 未认证，403xx 无权限，404xx 不存在，
// 409xx 冲突类（重复处理 / 已删除 / 名额已满 / 已关闭），400xx 请求不合法，500xx 服务端
var (
	ErrInvalidRequest = newError(40001, "请求参数不合法")
	ErrConfirmText    = newError(40002, "确认文本不匹配")

	ErrUnauthorized = newError(40101, "未认证")
	ErrTokenInvalid = newError(40102, "登录凭证无效")

	ErrForbidden = newError(40301, "无权限操作")

	ErrNotFound = newError(40401, "资源不存在")

	ErrConflict         = newError(40901, "状态冲突，请求已被处理过")
	ErrAlreadyExists    = newError(40902, "记录已存在")
	ErrCapacityExceeded = newError(40903, "名额已满") // 与 Conflict 区分，前端据此展示"已满"
	ErrAlreadyClosed    = newError(40904, "队伍已关闭")

	ErrInvalidPassword = newError(40103, "用户名或密码错误")

	ErrDatabase       = newError(50001, "数据库错误")
	ErrServerInternal = newError(50000, "服务器内部错误")
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Success 返回成功响应，data 可选
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应；非 *Error 的错误统一按内部错误处理
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrServerInternal.WithOrigin(err)
	}
	body := ResponseBody{Code: e.Code, Msg: e.Message}
	// origin 仅在 debug 模式下暴露给前端
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Recovery 捕获 handler panic，转换为内部错误响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = &Error{Code: ErrServerInternal.Code, Message: ErrServerInternal.Message}
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
		c.Abort()
	}
}
