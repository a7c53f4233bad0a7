package roster

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

// WithdrawConfirmText 主动退队的确认文本，必须逐字一致，防止误触发
const WithdrawConfirmText = "确认退出队伍"

// Expel 队长将成员移出队伍
// 目标必须是未退出的 MEMBER；对已退出成员重复操作返回冲突而不是静默成功
func Expel(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	teamID := c.Param("id")
	userIDStr := c.Param("userId")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("成员ID不合法"))
		return
	}

	team, respErr := requireTeam(teamID)
	if respErr != nil {
		response.Fail(c, respErr)
		return
	}
	if team.OwnerID != payload.UserID {
		log.Warn("非队长尝试移出成员", "team_id", team.ID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只有队长可以移出成员"))
		return
	}
	if uint(userID) == team.OwnerID {
		response.Fail(c, response.ErrInvalidRequest.WithTips("队长不能被移出"))
		return
	}

	if respErr := removeMember(team, uint(userID), model.ExitExpelled); respErr != nil {
		response.Fail(c, respErr)
		return
	}

	event.Publish(event.MembershipEvent{
		Kind:   event.MemberExpelled,
		Team:   *team,
		UserID: uint(userID),
		Payload: map[string]any{
			"acting_user_id": payload.UserID,
		},
	})

	log.Info("成员已被移出", "team_id", team.ID, "target_user_id", userID, "acting_user_id", payload.UserID)
	response.Success(c)
}

// WithdrawReq 定义主动退队请求的结构体
type WithdrawReq struct {
	ConfirmText string `json:"confirm_text" binding:"required"` // 必须与 WithdrawConfirmText 逐字一致
}

// Withdraw 成员主动退队（仅本人；队长不能走此路径）
func Withdraw(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	teamID := c.Param("id")

	var req WithdrawReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.ConfirmText != WithdrawConfirmText {
		response.Fail(c, response.ErrConfirmText.WithTips("请输入: "+WithdrawConfirmText))
		return
	}

	team, respErr := requireTeam(teamID)
	if respErr != nil {
		response.Fail(c, respErr)
		return
	}
	if team.OwnerID == payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("队长不能退出自己的队伍"))
		return
	}

	if respErr := removeMember(team, payload.UserID, model.ExitWithdrawn); respErr != nil {
		response.Fail(c, respErr)
		return
	}

	event.Publish(event.MembershipEvent{
		Kind:   event.MemberWithdrawn,
		Team:   *team,
		UserID: payload.UserID,
	})

	log.Info("成员主动退队", "team_id", team.ID, "user_id", payload.UserID)
	response.Success(c)
}

func requireTeam(teamID string) (*model.Team, *response.Error) {
	var team model.Team
	if err := database.DB.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound.WithTips("队伍不存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &team, nil
}

// removeMember 软删除成员并回收名额，同一事务内镜像 TeamMember。
// deleted_at IS NULL 条件更新保证恰好一次：同一成员的并发移除只有一个成功。
func removeMember(team *model.Team, userID uint, reason model.ExitReason) *response.Error {
	var respErr *response.Error
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var participant model.Participant
		err := tx.Unscoped().
			First(&participant, "posting_id = ? AND user_id = ?", team.RecruitmentID, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respErr = response.ErrNotFound.WithTips("成员不存在")
			return respErr
		}
		if err != nil {
			return err
		}
		if participant.Role == model.RoleLeader {
			respErr = response.ErrInvalidRequest.WithTips("队长不能退出")
			return respErr
		}

		now := time.Now()
		res := tx.Unscoped().Model(&model.Participant{}).
			Where("id = ? AND deleted_at IS NULL", participant.ID).
			Updates(map[string]interface{}{"deleted_at": now, "exit_reason": reason})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			respErr = response.ErrConflict.WithTips("成员已退出")
			return respErr
		}

		res = tx.Unscoped().Model(&model.TeamMember{}).
			Where("team_id = ? AND user_id = ? AND deleted_at IS NULL", team.ID, userID).
			Update("deleted_at", now)
		if res.Error != nil {
			return res.Error
		}

		// 回收名额；confirmed_count > 0 防御脏数据下的负数
		return tx.Model(&model.Posting{}).
			Where("id = ? AND confirmed_count > 0", team.RecruitmentID).
			UpdateColumn("confirmed_count", gorm.Expr("confirmed_count - 1")).Error
	})
	if respErr != nil {
		return respErr
	}
	if err != nil {
		log.Error("移除成员失败", "error", err, "team_id", team.ID, "user_id", userID)
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
