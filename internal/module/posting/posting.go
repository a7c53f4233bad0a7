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

// PostingCreateReq 定义创建招募帖请求的结构体
type PostingCreateReq struct {
	Kind           model.RecruitmentKind `json:"kind" binding:"required"`       // PROJECT 或 STUDY
	Title          string                `json:"title" binding:"required"`      // 标题
	Content        string                `json:"content"`                       // 正文
	Capacity       int                   `json:"capacity" binding:"required"`   // 成员名额（不含队长）
	StartDate      int64                 `json:"start_date" binding:"required"` // 开始日期（Unix 秒）
	DurationMonths int                   `json:"expected_duration_months" binding:"required"`
	AgeMin         int                   `json:"age_min"` // 0 表示不限
	AgeMax         int                   `json:"age_max"` // 0 表示不限
	Positions      []string              `json:"positions"`
}

// CreatePosting 创建招募帖，同一事务内创建队伍和队长成员记录
func CreatePosting(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req PostingCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建招募帖请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !req.Kind.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("kind 必须是 PROJECT 或 STUDY"))
		return
	}
	if req.Capacity < 1 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("名额至少为 1"))
		return
	}
	if req.DurationMonths < 1 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("持续月数至少为 1"))
		return
	}
	// (0,0) 表示不限年龄，否则区间必须合法
	if (req.AgeMin != 0 || req.AgeMax != 0) && (req.AgeMin < 0 || req.AgeMax < req.AgeMin) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("年龄区间不合法"))
		return
	}

	posting := model.Posting{
		OwnerID:        payload.UserID,
		Kind:           req.Kind,
		Status:         model.StatusRecruiting,
		Title:          req.Title,
		Content:        req.Content,
		Capacity:       req.Capacity,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
		AgeMin:         req.AgeMin,
		AgeMax:         req.AgeMax,
	}

	var team model.Team
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&posting).Error; err != nil {
			return err
		}
		for _, name := range req.Positions {
			if name == "" {
				return response.ErrInvalidRequest.WithTips("职位名不能为空")
			}
			if err := tx.Create(&model.Position{PostingID: posting.ID, Name: name}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return response.ErrInvalidRequest.WithTips("职位名重复: " + name)
				}
				return err
			}
		}
		// 队伍与帖一一对应，随帖创建
		team = model.Team{
			RecruitmentID: posting.ID,
			Kind:          posting.Kind,
			OwnerID:       posting.OwnerID,
			Title:         posting.Title,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		// 队长成员记录随帖创建，保证每帖恰好一个未删除的 LEADER
		leader := model.Participant{
			PostingID: posting.ID,
			UserID:    posting.OwnerID,
			Role:      model.RoleLeader,
		}
		if err := tx.Create(&leader).Error; err != nil {
			return err
		}
		return tx.Create(&model.TeamMember{
			TeamID: team.ID,
			UserID: posting.OwnerID,
			Role:   model.RoleLeader,
		}).Error
	})
	if err != nil {
		var respErr *response.Error
		if errors.As(err, &respErr) {
			response.Fail(c, respErr)
			return
		}
		log.Error("创建招募帖失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("招募帖创建成功", "posting_id", posting.ID, "team_id", team.ID, "owner_id", payload.UserID)
	response.Success(c, map[string]interface{}{
		"posting_id": posting.ID,
		"team_id":    team.ID,
	})
}

// ListPostingsReq 定义招募帖列表的查询参数结构体
type ListPostingsReq struct {
	Kind     string `form:"kind"`      // 类型筛选
	Status   string `form:"status"`    // 状态筛选
	OwnerID  uint   `form:"owner_id"`  // 发起人筛选
	Title    string `form:"title"`     // 标题模糊查询
	Page     int    `form:"page"`      // 页码，默认为1
	PageSize int    `form:"page_size"` // 每页大小，默认为10
}

// ListPostings 获取招募帖列表（支持查询参数）
func ListPostings(c *gin.Context) {
	var req ListPostingsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.Posting{})
	if req.Kind != "" {
		query = query.Where("kind = ?", req.Kind)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.OwnerID != 0 {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取招募帖总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var postings []model.Posting
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Positions").Order("created_at DESC").
		Offset(offset).Limit(req.PageSize).Find(&postings).Error; err != nil {
		log.Error("获取招募帖列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"postings":    postings,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	})
}

// GetPosting 获取单个招募帖详情
func GetPosting(c *gin.Context) {
	id := c.Param("id")
	var posting model.Posting
	if err := database.DB.Preload("Positions").First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, posting)
}

// PostingUpdateReq 定义更新招募帖请求的结构体，使用指针类型支持部分更新
type PostingUpdateReq struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	Capacity       *int    `json:"capacity"`
	StartDate      *int64  `json:"start_date"`
	DurationMonths *int    `json:"expected_duration_months"`
	AgeMin         *int    `json:"age_min"`
	AgeMax         *int    `json:"age_max"`
}

// UpdatePosting 处理更新招募帖请求（仅发起人，仅招募中）
func UpdatePosting(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var req PostingUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新招募帖请求失败", "error", err, "id", id)
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
		log.Warn("无权限更新招募帖", "id", id, "owner_id", posting.OwnerID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("无权限更新该招募帖"))
		return
	}
	if posting.Status == model.StatusClosed {
		response.Fail(c, response.ErrAlreadyClosed)
		return
	}

	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Content != nil {
		posting.Content = *req.Content
	}
	if req.Capacity != nil {
		// 名额不能压到已确认成员数以下
		if *req.Capacity < 1 || *req.Capacity < posting.ConfirmedCount {
			response.Fail(c, response.ErrInvalidRequest.WithTips("名额不合法"))
			return
		}
		posting.Capacity = *req.Capacity
	}
	if req.StartDate != nil {
		posting.StartDate = *req.StartDate
	}
	if req.DurationMonths != nil {
		if *req.DurationMonths < 1 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("持续月数至少为 1"))
			return
		}
		posting.DurationMonths = *req.DurationMonths
	}
	if req.AgeMin != nil {
		posting.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		posting.AgeMax = *req.AgeMax
	}
	if (posting.AgeMin != 0 || posting.AgeMax != 0) && (posting.AgeMin < 0 || posting.AgeMax < posting.AgeMin) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("年龄区间不合法"))
		return
	}

	if err := database.DB.Save(&posting).Error; err != nil {
		log.Error("更新招募帖失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("招募帖更新成功", "id", posting.ID)
	response.Success(c)
}

// DeletePosting 软删除招募帖（仅发起人）
func DeletePosting(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

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
		log.Warn("无权限删除招募帖", "id", id, "owner_id", posting.OwnerID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("无权限删除该招募帖"))
		return
	}

	if err := database.DB.Delete(&posting).Error; err != nil {
		log.Error("删除招募帖失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("招募帖删除成功", "id", posting.ID)
	response.Success(c)
}

// RestorePosting 还原被软删除的招募帖（仅发起人）
func RestorePosting(c *gin.Context) {
	payload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	var posting model.Posting
	if err := database.DB.Unscoped().First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("招募帖不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if posting.OwnerID != payload.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("无权限还原该招募帖"))
		return
	}

	posting.DeletedAt = gorm.DeletedAt{}
	if err := database.DB.Unscoped().Save(&posting).Error; err != nil {
		log.Error("还原招募帖失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("招募帖还原成功", "id", posting.ID)
	response.Success(c)
}
