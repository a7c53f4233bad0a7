package redis

import (
	"context"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/sentry/tracing"
	"team-recruit-system/tools"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var Client *goredis.Client

// Init 初始化 Redis 连接；未配置 Host 时跳过（依赖方自行降级）
func Init() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return
	}

	Client = goredis.NewClient(&goredis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(Client.Ping(ctx).Err())
}

// Enabled Redis 是否可用
func Enabled() bool {
	return Client != nil
}

// TryLock 以 SETNX 方式抢占分布式锁，抢到返回 true
func TryLock(ctx context.Context, key string, ttl time.Duration) bool {
	if !Enabled() {
		// 没有 Redis 时退化为单实例运行，直接放行
		return true
	}
	ok, err := Client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false
	}
	return ok
}

// Unlock 释放 TryLock 抢占的锁
func Unlock(ctx context.Context, key string) {
	if Enabled() {
		Client.Del(ctx, key)
	}
}
