package lifecycle_test

import (
	"testing"
	"time"

	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/model"
	"team-recruit-system/internal/module/lifecycle"
	"team-recruit-system/test"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecide(t *testing.T) {
	start := date(2025, 1, 1)
	// 持续 1 个月 + 7 天宽限期 = 2025-02-08 起可关闭

	cases := []struct {
		name   string
		status model.PostingStatus
		today  time.Time
		want   model.PostingStatus
		moved  bool
	}{
		{"到达开始日期转进行中", model.StatusRecruiting, date(2025, 1, 2), model.StatusOngoing, true},
		{"开始日期当天即转", model.StatusRecruiting, date(2025, 1, 1), model.StatusOngoing, true},
		{"宽限期内维持进行中", model.StatusOngoing, date(2025, 2, 7), model.StatusOngoing, false},
		{"过了宽限期自动关闭", model.StatusOngoing, date(2025, 2, 8), model.StatusClosed, true},
		{"晚到的扫描直接关闭", model.StatusRecruiting, date(2025, 3, 1), model.StatusClosed, true},
		{"关闭是终态", model.StatusClosed, date(2025, 3, 1), model.StatusClosed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, moved := lifecycle.Decide(tc.status, start.Unix(), 1, tc.today)
			require.Equal(t, tc.moved, moved)
			if moved {
				require.Equal(t, tc.want, next)
			}
		})
	}
}

func TestDecideFutureStart(t *testing.T) {
	start := date(2025, 6, 1)
	_, moved := lifecycle.Decide(model.StatusRecruiting, start.Unix(), 1, date(2025, 5, 1))
	require.False(t, moved)
}

func TestScan(t *testing.T) {
	test.Init(t)
	today := date(2025, 3, 1)

	toOngoing := model.Posting{
		OwnerID: 1, Kind: model.KindProject, Status: model.StatusRecruiting,
		Title: "刚开始", Capacity: 2,
		StartDate: date(2025, 2, 28).Unix(), DurationMonths: 6,
	}
	toClosed := model.Posting{
		OwnerID: 1, Kind: model.KindStudy, Status: model.StatusOngoing,
		Title: "早该结束", Capacity: 2,
		StartDate: date(2024, 11, 1).Unix(), DurationMonths: 1,
	}
	notYet := model.Posting{
		OwnerID: 1, Kind: model.KindProject, Status: model.StatusRecruiting,
		Title: "还没开始", Capacity: 2,
		StartDate: date(2025, 4, 1).Unix(), DurationMonths: 1,
	}
	require.NoError(t, database.DB.Create(&toOngoing).Error)
	require.NoError(t, database.DB.Create(&toClosed).Error)
	require.NoError(t, database.DB.Create(&notYet).Error)

	transitioned, respErr := lifecycle.Scan(today)
	require.Nil(t, respErr)
	require.Equal(t, 2, transitioned)

	var p model.Posting
	require.NoError(t, database.DB.First(&p, "id = ?", toOngoing.ID).Error)
	require.Equal(t, model.StatusOngoing, p.Status)
	p = model.Posting{}
	require.NoError(t, database.DB.First(&p, "id = ?", toClosed.ID).Error)
	require.Equal(t, model.StatusClosed, p.Status)
	p = model.Posting{}
	require.NoError(t, database.DB.First(&p, "id = ?", notYet.ID).Error)
	require.Equal(t, model.StatusRecruiting, p.Status)

	// 自动流转也留审计记录
	var statusLog model.PostingStatusLog
	require.NoError(t, database.DB.
		First(&statusLog, "posting_id = ?", toClosed.ID).Error)
	require.Equal(t, "scheduler", statusLog.Actor)
	require.Equal(t, model.StatusClosed, statusLog.ToStatus)

	// 同一天重跑收敛：没有新的流转
	transitioned, respErr = lifecycle.Scan(today)
	require.Nil(t, respErr)
	require.Zero(t, transitioned)
}

func TestScanSkipsDeleted(t *testing.T) {
	test.Init(t)
	today := date(2025, 3, 1)

	deleted := model.Posting{
		OwnerID: 1, Kind: model.KindProject, Status: model.StatusRecruiting,
		Title: "已删除", Capacity: 2,
		StartDate: date(2025, 1, 1).Unix(), DurationMonths: 1,
	}
	require.NoError(t, database.DB.Create(&deleted).Error)
	require.NoError(t, database.DB.Delete(&deleted).Error)

	transitioned, respErr := lifecycle.Scan(today)
	require.Nil(t, respErr)
	require.Zero(t, transitioned)

	var p model.Posting
	require.NoError(t, database.DB.Unscoped().First(&p, "id = ?", deleted.ID).Error)
	require.Equal(t, model.StatusRecruiting, p.Status)
}
