package team

import (
	"strconv"
	"team-recruit-system/internal/global/context"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func actorID(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// GetTeam 查看队伍详情与成员列表
func GetTeam(c *gin.Context) {
	id := c.Param("id")

	var team model.Team
	if err := database.DB.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("队伍不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var members []model.TeamMember
	if err := database.DB.Where("team_id = ?", team.ID).Find(&members).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"team":    team,
		"members": members,
	})
}

// Close 队长手动关闭队伍
// 关闭是从非终态出发的条件更新：与定时流转竞争时后提交方观察到 AlreadyClosed，
// CLOSED 不可逆。关闭成功后若无进行中的互评轮次则开启一轮（7 天窗口）。
func Close(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var team model.Team
	if err := database.DB.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("队伍不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 队伍按 (recruitment_id, kind) 关联回招募帖
	var posting model.Posting
	if err := database.DB.First(&posting, "id = ? AND kind = ?", team.RecruitmentID, team.Kind).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		log.Warn("非发起人尝试关闭队伍", "team_id", team.ID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只有发起人可以关闭队伍"))
		return
	}

	var respErr *response.Error
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 重复关闭说明客户端状态已过期，显式报错而不是静默成功
		res := tx.Model(&model.Posting{}).
			Where("id = ? AND status <> ?", posting.ID, model.StatusClosed).
			Update("status", model.StatusClosed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			respErr = response.ErrAlreadyClosed
			return respErr
		}

		if err := tx.Create(&model.PostingStatusLog{
			PostingID:  posting.ID,
			FromStatus: posting.Status,
			ToStatus:   model.StatusClosed,
			Actor:      actorID(payload.UserID),
		}).Error; err != nil {
			return err
		}

		// 每队同时最多一个 OPEN 轮次；关闭本身恰好一次，轮次创建不会竞争
		var openCount int64
		if err := tx.Model(&model.EvaluationRound{}).
			Where("team_id = ? AND status = ?", team.ID, model.RoundOpen).
			Count(&openCount).Error; err != nil {
			return err
		}
		if openCount == 0 {
			now := time.Now()
			if err := tx.Create(&model.EvaluationRound{
				TeamID:   team.ID,
				Status:   model.RoundOpen,
				OpenedAt: now,
				ClosesAt: now.Add(model.EvaluationWindow),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if respErr != nil {
		response.Fail(c, respErr)
		return
	}
	if err != nil {
		log.Error("关闭队伍失败", "error", err, "team_id", team.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	event.Publish(event.MembershipEvent{
		Kind: event.TeamClosed,
		Team: team,
		Payload: map[string]any{
			"posting_id": posting.ID,
		},
	})

	log.Info("队伍已关闭", "team_id", team.ID, "posting_id", posting.ID, "acting_user_id", payload.UserID)
	response.Success(c, map[string]interface{}{
		"team_id": team.ID,
		"status":  model.StatusClosed,
	})
}
