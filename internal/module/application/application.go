package application

import (
	"team-recruit-system/internal/global/context"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/global/notify"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ApplyReq 定义提交申请请求的结构体
type ApplyReq struct {
	PostingID  uint `json:"posting_id" binding:"required"`
	PositionID uint `json:"position_id" binding:"required"`
}

// Apply 提交加入申请
// 同一人对同一帖最多一条未决申请，由 (posting_id, applicant_id, active)
// 唯一索引兜底，并发重复提交表现为唯一键冲突
func Apply(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定申请请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 已删除的帖被默认作用域过滤，等同不存在
	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", req.PostingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.Status != model.StatusRecruiting {
		response.Fail(c, response.ErrConflict.WithTips("该招募帖已停止招募"))
		return
	}
	if posting.OwnerID == payload.UserID {
		response.Fail(c, response.ErrConflict.WithTips("不能申请自己发起的招募"))
		return
	}

	var position model.Position
	if err := database.DB.First(&position, "id = ? AND posting_id = ?", req.PositionID, req.PostingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("职位不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 已在队成员不能重复申请
	var memberCount int64
	if err := database.DB.Model(&model.Participant{}).
		Where("posting_id = ? AND user_id = ?", req.PostingID, payload.UserID).
		Count(&memberCount).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if memberCount > 0 {
		response.Fail(c, response.ErrConflict.WithTips("已是该队伍成员"))
		return
	}

	app := model.Application{
		PostingID:   req.PostingID,
		PositionID:  req.PositionID,
		ApplicantID: payload.UserID,
		Status:      model.ApplicationPending,
		Active:      model.ActiveFlag(),
	}
	if err := database.DB.Create(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("重复申请", "posting_id", req.PostingID, "user_id", payload.UserID)
			response.Fail(c, response.ErrConflict.WithTips("已有未处理的申请"))
			return
		}
		log.Error("创建申请失败", "error", err, "posting_id", req.PostingID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("申请提交成功", "application_id", app.ID, "posting_id", req.PostingID, "user_id", payload.UserID)
	response.Success(c, map[string]interface{}{"application_id": app.ID})
}

// Approve 批准申请（仅发起人）
// 名额校验与成员写入在同一事务内完成：
// confirmed_count 的条件自增是并发守卫，最后一个名额的两个并发批准恰好一个成功。
// 聊天同步与通知在事务提交后异步进行，事务内不做任何网络调用。
func Approve(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var app model.Application
	if err := database.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("申请不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", app.PostingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		log.Warn("非发起人尝试批准申请", "application_id", app.ID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只有发起人可以处理申请"))
		return
	}
	if app.Status != model.ApplicationPending {
		response.Fail(c, response.ErrConflict.WithTips("申请已被处理"))
		return
	}

	var team model.Team
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// PENDING → APPROVED 条件更新，并发处理同一申请时只有一个成功
		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", app.ID, model.ApplicationPending).
			Updates(map[string]interface{}{"status": model.ApplicationApproved, "active": nil})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.ErrConflict.WithTips("申请已被处理")
		}

		// 名额守卫：条件自增，满员时影响 0 行。
		// 失败整个事务回滚，申请保持 PENDING，可重试或拒绝。
		res = tx.Model(&model.Posting{}).
			Where("id = ? AND confirmed_count < capacity", posting.ID).
			UpdateColumn("confirmed_count", gorm.Expr("confirmed_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.ErrCapacityExceeded
		}

		if err := tx.First(&team, "recruitment_id = ? AND kind = ?", posting.ID, posting.Kind).Error; err != nil {
			return err
		}

		participant := model.Participant{
			PostingID:  posting.ID,
			PositionID: app.PositionID,
			UserID:     app.ApplicantID,
			Role:       model.RoleMember,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		// TeamMember 与 Participant 同库，镜像写入放在同一短事务内
		return tx.Create(&model.TeamMember{
			TeamID: team.ID,
			UserID: app.ApplicantID,
			Role:   model.RoleMember,
		}).Error
	})
	if err != nil {
		var respErr *response.Error
		if errors.As(err, &respErr) {
			response.Fail(c, respErr)
			return
		}
		log.Error("批准申请失败", "error", err, "application_id", app.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 提交之后才发布事件：聊天同步 + 通知，失败不回滚业务状态
	event.Publish(event.MembershipEvent{
		Kind:   event.MemberJoined,
		Team:   team,
		UserID: app.ApplicantID,
		Payload: map[string]any{
			"application_id": app.ID,
			"posting_id":     posting.ID,
		},
	})

	log.Info("申请批准成功", "application_id", app.ID, "posting_id", posting.ID, "applicant_id", app.ApplicantID)
	response.Success(c)
}

// Reject 拒绝申请（仅发起人），终态不可再变更
func Reject(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var app model.Application
	if err := database.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("申请不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", app.PostingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("只有发起人可以处理申请"))
		return
	}

	res := database.DB.Model(&model.Application{}).
		Where("id = ? AND status = ?", app.ID, model.ApplicationPending).
		Updates(map[string]interface{}{"status": model.ApplicationRejected, "active": nil})
	if res.Error != nil {
		log.Error("拒绝申请失败", "error", res.Error, "application_id", app.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		response.Fail(c, response.ErrConflict.WithTips("申请已被处理"))
		return
	}

	notify.Get().Emit(notify.EventApplicationRejected, map[string]any{
		"application_id": app.ID,
		"posting_id":     posting.ID,
		"applicant_id":   app.ApplicantID,
	})

	log.Info("申请已拒绝", "application_id", app.ID, "posting_id", posting.ID)
	response.Success(c)
}

// ListByPosting 发起人查看某帖的申请列表
func ListByPosting(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	postingID := c.Query("posting_id")
	if postingID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("posting_id 不能为空"))
		return
	}

	var posting model.Posting
	if err := database.DB.First(&posting, "id = ?", postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("只有发起人可以查看申请"))
		return
	}

	var apps []model.Application
	if err := database.DB.Where("posting_id = ?", postingID).
		Order("created_at ASC").Find(&apps).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, apps)
}

// ListMine 查看自己提交的申请
func ListMine(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var apps []model.Application
	if err := database.DB.Where("applicant_id = ?", payload.UserID).
		Order("created_at DESC").Find(&apps).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, apps)
}
