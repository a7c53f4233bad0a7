package audit

import (
	"team-recruit-system/internal/global/context"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func requirePosting(c *gin.Context) (*model.Posting, bool) {
	id := c.Param("id")
	var posting model.Posting
	if err := database.DB.Unscoped().First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return nil, false
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &posting, true
}

// PostingHistory 查询招募帖的状态流转记录（仅发起人或管理员）
func PostingHistory(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	posting, ok := requirePosting(c)
	if !ok {
		return
	}
	if posting.OwnerID != payload.UserID && payload.RoleID < 1 {
		response.Fail(c, response.ErrForbidden)
		return
	}

	var logs []model.PostingStatusLog
	if err := database.DB.Where("posting_id = ?", posting.ID).
		Order("created_at ASC").Find(&logs).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, logs)
}

// ExitRecord 退出成员的审计视图
type ExitRecord struct {
	UserID     uint             `json:"user_id"`
	Role       string           `json:"role"`
	ExitReason model.ExitReason `json:"exit_reason"`
	ExitedAt   int64            `json:"exited_at"`
}

// PostingExits 查询招募帖的成员退出记录（仅发起人或管理员）
func PostingExits(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	posting, ok := requirePosting(c)
	if !ok {
		return
	}
	if posting.OwnerID != payload.UserID && payload.RoleID < 1 {
		response.Fail(c, response.ErrForbidden)
		return
	}

	var exited []model.Participant
	if err := database.DB.Unscoped().
		Where("posting_id = ? AND deleted_at IS NOT NULL", posting.ID).
		Find(&exited).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	records := make([]ExitRecord, 0, len(exited))
	for _, p := range exited {
		records = append(records, ExitRecord{
			UserID:     p.UserID,
			Role:       string(p.Role),
			ExitReason: p.ExitReason,
			ExitedAt:   p.DeletedAt.Time.UnixMilli(),
		})
	}
	response.Success(c, records)
}

// TeamRounds 查询队伍的互评轮次及其开闭时间
func TeamRounds(c *gin.Context) {
	id := c.Param("id")
	var rounds []model.EvaluationRound
	if err := database.DB.Where("team_id = ?", id).
		Order("opened_at ASC").Find(&rounds).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, rounds)
}
