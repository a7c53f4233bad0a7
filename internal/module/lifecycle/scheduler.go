package lifecycle

import (
	"context"
	"team-recruit-system/config"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/redis"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"time"

	"gorm.io/gorm"
)

// GracePeriod 预计完成后的宽限期，给队长留出收尾时间
const GracePeriod = 7 * 24 * time.Hour

const scanLockKey = "lifecycle:scan:lock"

// Decide 纯函数：给定当前状态与"今天"，计算应流转到的状态
// 返回的 ok 为 false 表示无需写入。
// 已经过了关闭期限的 RECRUITING 帖直接判定为 CLOSED，
// 使得同一 today 重复扫描收敛到相同的最终状态。
func Decide(status model.PostingStatus, startDate int64, durationMonths int, today time.Time) (model.PostingStatus, bool) {
	start := time.Unix(startDate, 0)
	closeDeadline := start.AddDate(0, durationMonths, 0).Add(GracePeriod)

	switch status {
	case model.StatusRecruiting:
		if !today.Before(closeDeadline) {
			return model.StatusClosed, true
		}
		if !start.After(today) {
			return model.StatusOngoing, true
		}
	case model.StatusOngoing:
		if !today.Before(closeDeadline) {
			return model.StatusClosed, true
		}
	}
	return status, false
}

// Scan 分批扫描未删除且未关闭、已到开始日期的招募帖并推进状态。
// 每个帖的更新是独立事务，写入前以当前状态做条件更新，
// 因此部分失败后重跑是幂等的。单个帖失败只记日志，不中断整个扫描。
func Scan(today time.Time) (int, *response.Error) {
	chunkSize := config.Get().Lifecycle.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 200
	}

	transitioned := 0
	var cursor uint
	for {
		var postings []model.Posting
		err := database.DB.
			Where("status <> ? AND start_date <= ? AND id > ?", model.StatusClosed, today.Unix(), cursor).
			Order("id ASC").Limit(chunkSize).
			Find(&postings).Error
		if err != nil {
			log.Error("生命周期扫描查询失败", "error", err)
			return transitioned, response.ErrDatabase.WithOrigin(err)
		}
		if len(postings) == 0 {
			break
		}

		for i := range postings {
			p := &postings[i]
			cursor = p.ID

			next, ok := Decide(p.Status, p.StartDate, p.DurationMonths, today)
			if !ok {
				continue
			}
			if err := transition(p, next); err != nil {
				// 单帖失败隔离：记录后继续扫描
				log.Error("招募帖状态流转失败", "error", err, "posting_id", p.ID, "to", next)
				continue
			}
			transitioned++
		}

		if len(postings) < chunkSize {
			break
		}
	}

	log.Info("生命周期扫描完成", "today", today.Format("2006-01-02"), "transitioned", transitioned)
	return transitioned, nil
}

// transition 推进单个帖的状态，独立事务 + 当前状态条件更新。
// 与队长手动关闭竞争时，后提交方影响 0 行，CLOSED 永不回退。
func transition(p *model.Posting, next model.PostingStatus) error {
	var moved bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Posting{}).
			Where("id = ? AND status = ?", p.ID, p.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 状态已被并发修改，本次不写
			return nil
		}
		moved = true
		return tx.Create(&model.PostingStatusLog{
			PostingID:  p.ID,
			FromStatus: p.Status,
			ToStatus:   next,
			Actor:      "scheduler",
		}).Error
	})
	if err != nil || !moved {
		return err
	}

	if next == model.StatusClosed {
		// 自动关闭也通知队伍成员；互评轮次只由手动关闭开启
		var team model.Team
		if err := database.DB.First(&team, "recruitment_id = ? AND kind = ?", p.ID, p.Kind).Error; err == nil {
			event.Publish(event.MembershipEvent{
				Kind: event.TeamClosed,
				Team: team,
				Payload: map[string]any{
					"posting_id": p.ID,
					"auto":       true,
				},
			})
		}
	}
	return nil
}

// StartScheduler 启动后台定时扫描；扫描间隔为 0 时不启动。
// 多实例部署时通过 Redis 锁保证同一轮只有一个实例执行。
func StartScheduler() {
	interval := time.Duration(config.Get().Lifecycle.ScanIntervalMin) * time.Minute
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if redis.TryLock(ctx, scanLockKey, interval) {
				if _, err := Scan(time.Now()); err != nil {
					log.Error("定时生命周期扫描失败", "error", err)
				}
				redis.Unlock(ctx, scanLockKey)
			}
			cancel()
		}
	}()
	log.Info("生命周期定时扫描已启动", "interval", interval.String())
}
