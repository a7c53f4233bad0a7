package posting

import (
	"team-recruit-system/internal/global/context"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PositionAddReq 定义新增职位请求的结构体
type PositionAddReq struct {
	Name string `json:"name" binding:"required"`
}

// AddPosition 向招募帖新增职位（仅发起人）
func AddPosition(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var req PositionAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("无权限修改该招募帖"))
		return
	}

	position := model.Position{PostingID: posting.ID, Name: req.Name}
	if err := database.DB.Create(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("职位名已存在"))
			return
		}
		log.Error("新增职位失败", "error", err, "posting_id", posting.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("职位新增成功", "posting_id", posting.ID, "position_id", position.ID)
	response.Success(c, map[string]interface{}{"position_id": position.ID})
}

// RemovePosition 删除职位（仅发起人）
// 仍被未决申请或在队成员引用的职位不可删除
func RemovePosition(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")
	positionID := c.Param("positionId")

	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("无权限修改该招募帖"))
		return
	}

	var position model.Position
	if err := database.DB.First(&position, "id = ? AND posting_id = ?", positionID, posting.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("职位不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var pendingCount int64
	if err := database.DB.Model(&model.Application{}).
		Where("position_id = ? AND status = ?", position.ID, model.ApplicationPending).
		Count(&pendingCount).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if pendingCount > 0 {
		response.Fail(c, response.ErrConflict.WithTips("职位仍有未处理的申请"))
		return
	}

	var memberCount int64
	if err := database.DB.Model(&model.Participant{}).
		Where("position_id = ?", position.ID).
		Count(&memberCount).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if memberCount > 0 {
		response.Fail(c, response.ErrConflict.WithTips("职位仍有在队成员"))
		return
	}

	if err := database.DB.Delete(&position).Error; err != nil {
		log.Error("删除职位失败", "error", err, "position_id", position.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("职位删除成功", "posting_id", posting.ID, "position_id", position.ID)
	response.Success(c)
}
