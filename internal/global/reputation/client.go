package reputation

import (
	"context"
	"fmt"
	"strconv"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/httpclient"
	"team-recruit-system/internal/global/redis"
	"time"
)

// Temperature 查询用户信誉温度（只读）。优先读 Redis 缓存，
// 其次请求信誉服务；两者都不可用时返回配置的默认值。
func Temperature(ctx context.Context, userID uint) float64 {
	cfg := config.Get().Reputation
	cacheKey := fmt.Sprintf("reputation:temperature:%d", userID)

	if redis.Enabled() {
		if cached, err := redis.Client.Get(ctx, cacheKey).Result(); err == nil {
			if v, err := strconv.ParseFloat(cached, 64); err == nil {
				return v
			}
		}
	}

	if cfg.BaseURL == "" {
		return cfg.DefaultValue
	}

	var body struct {
		Temperature float64 `json:"temperature"`
	}
	resp, err := httpclient.Client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("%s/users/%d/temperature", cfg.BaseURL, userID))
	if err != nil || resp.IsError() {
		return cfg.DefaultValue
	}

	if redis.Enabled() {
		ttl := time.Duration(cfg.CacheTTLSec) * time.Second
		redis.Client.Set(ctx, cacheKey, strconv.FormatFloat(body.Temperature, 'f', 2, 64), ttl)
	}
	return body.Temperature
}
