package audit

import (
	"fmt"
	"net/url"
	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/response"
	"team-recruit-system/internal/model"
	"team-recruit-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// rosterRow 导出表格的成员行
type rosterRow struct {
	UserID   uint   `excel:"用户ID"`
	Role     string `excel:"角色"`
	JoinedAt string `excel:"加入时间"`
	Exited   string `excel:"退出原因"`
	ExitedAt string `excel:"退出时间"`
}

// historyRow 导出表格的状态流转行
type historyRow struct {
	From  string `excel:"原状态"`
	To    string `excel:"新状态"`
	Actor string `excel:"操作方"`
	At    string `excel:"时间"`
}

const timeLayout = "2006-01-02 15:04:05"

// ExportPosting 导出招募帖的成员名册与状态流转记录（管理员）
func ExportPosting(c *gin.Context) {
	posting, ok := requirePosting(c)
	if !ok {
		return
	}

	var participants []model.Participant
	if err := database.DB.Unscoped().
		Where("posting_id = ?", posting.ID).
		Order("created_at ASC").Find(&participants).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var logs []model.PostingStatusLog
	if err := database.DB.Where("posting_id = ?", posting.ID).
		Order("created_at ASC").Find(&logs).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rosterRows := make([]rosterRow, 0, len(participants))
	for _, p := range participants {
		row := rosterRow{
			UserID:   p.UserID,
			Role:     string(p.Role),
			JoinedAt: p.CreatedAt.Format(timeLayout),
		}
		if p.DeletedAt.Valid {
			row.Exited = string(p.ExitReason)
			row.ExitedAt = p.DeletedAt.Time.Format(timeLayout)
		}
		rosterRows = append(rosterRows, row)
	}

	historyRows := make([]historyRow, 0, len(logs))
	for _, l := range logs {
		historyRows = append(historyRows, historyRow{
			From:  string(l.FromStatus),
			To:    string(l.ToStatus),
			Actor: l.Actor,
			At:    l.CreatedAt.Format(timeLayout),
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, "成员名册", rosterRows); err != nil {
		log.Error("导出成员名册失败", "error", err, "posting_id", posting.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if err := tools.ExportToExcel(f, "状态记录", historyRows); err != nil {
		log.Error("导出状态记录失败", "error", err, "posting_id", posting.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	filename := url.QueryEscape(fmt.Sprintf("posting-%d-audit.xlsx", posting.ID))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, filename, filename))
	c.Data(200, tools.ExcelContentType, buf.Bytes())
}
