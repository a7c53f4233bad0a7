package database

import (
	"fmt"
	"sync/atomic"

	"team-recruit-system/config"
	"team-recruit-system/internal/global/sentry/tracing"
	"team-recruit-system/internal/model"
	"team-recruit-system/tools"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Posting{},
	&model.Position{},
	&model.Application{},
	&model.Participant{},
	&model.Team{},
	&model.TeamMember{},
	&model.EvaluationRound{},
	&model.PostingStatusLog{},
	// 在这里添加其他模型
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,                                       // 把唯一键冲突等翻译成 gorm.ErrDuplicatedKey
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	tools.PanicOnErr(err)

	// Sentry 启用时追踪慢查询
	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin()))
	}
	DB = db

	// 使用模型列表进行自动迁移
	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}

var testDBSeq atomic.Int64

// InitTest 用内存 sqlite 初始化测试数据库，迁移与生产走同一份模型列表。
// 每次调用使用独立的内存库，测试之间互不影响。
func InitTest() {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		TranslateError: true,
		Logger:         logger.Discard,
	})
	tools.PanicOnErr(err)
	// sqlite 写入本身串行，单连接避免并发测试里出现 busy 错误
	sqlDB, err := db.DB()
	tools.PanicOnErr(err)
	sqlDB.SetMaxOpenConns(1)
	DB = db
	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}
