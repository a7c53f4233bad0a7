package jwt

import (
	"team-recruit-system/config"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Payload 写入令牌的业务字段
type Payload struct {
	UserID uint `json:"user_id"`
	RoleID int  `json:"role_id"`
}

type Claims struct {
	Payload
	jwtlib.RegisteredClaims
}

// CreateToken 生成访问令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Duration(cfg.AccessExpire) * time.Second)),
			Issuer:    "team-recruit-system",
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// HMAC 签名只会因密钥类型错误失败，属于配置问题
		panic(err)
	}
	return signed
}

// ParseToken 解析并校验令牌
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
