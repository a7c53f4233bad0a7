package test

import (
	"testing"

	"team-recruit-system/internal/global/database"
	"team-recruit-system/internal/global/event"
	"team-recruit-system/internal/module"

	"github.com/gin-gonic/gin"
)

// Init 初始化测试环境：全新的内存数据库 + 清空事件订阅 + 各模块日志器。
// 每个测试函数开头调用一次。
func Init(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.InitTest()
	event.Reset()
	for _, m := range module.Modules {
		m.Init()
	}
}
