package user

import (
	"team-recruit-system/internal/global/context"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/jwt"
	"team-recruit-system/internal/global/reputation"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/global/sentry/tracing"
	"team-recruit-system/internal/model"
	"team-recruit-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RegisterReq 定义注册请求的结构体
type RegisterReq struct {
	Username string `json:"username" binding:"required"` // 用户名，唯一标识用户
	Password string `json:"password" binding:"required"` // 密码
	NickName string `json:"nick_name" binding:"required"`
}

// Register 处理用户注册请求
func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	hash, err := tools.PasswordHash(req.Password)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	user := model.User{
		Username: req.Username,
		Password: hash,
		NickName: req.NickName,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("用户名已存在", "username", req.Username)
			response.Fail(c, response.ErrAlreadyExists.WithTips("用户名已存在"))
			return
		}
		log.Error("创建用户失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功", "user_id", user.ID, "username", user.Username)
	response.Success(c, map[string]interface{}{
		"user_id": user.ID,
	})
}

// LoginReq 定义登录请求的结构体
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户是否存在
	var user model.User
	err := database.DB.Where("username = ?", req.Username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "username", req.Username)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "username", req.Username)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功", "user_id", user.ID, "username", user.Username)

	// 生成 JWT 令牌并返回用户信息
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.ID,
			RoleID: user.RoleID,
		}),
		"user_id":   user.ID,
		"nick_name": user.NickName,
	})
}

// Me 返回当前登录用户信息，附带信誉温度（来自信誉服务，只读）
func Me(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	temperature := reputation.Temperature(tracing.ContextWithSpan(c), user.ID)

	response.Success(c, map[string]interface{}{
		"user_id":     user.ID,
		"username":    user.Username,
		"nick_name":   user.NickName,
		"avatar":      user.Avatar,
		"role_id":     user.RoleID,
		"temperature": temperature,
	})
}

// RequireUser 校验用户存在并返回用户记录，供其他模块复用
func RequireUser(userID uint) (*model.User, *response.Error) {
	var user model.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound.WithTips("用户不存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &user, nil
}
