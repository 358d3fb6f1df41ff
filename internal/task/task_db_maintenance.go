package task

import (
	"context"
	"time"

	"github.com/jollymugivara/transaction-revision-service/internal/app"
	"go.uber.org/zap"
)

// DbMaintenanceTask 数据库维护任务
// 定期刷新统计信息并回收已删除修订版本占用的空间
type DbMaintenanceTask struct {
	app      *app.App
	interval time.Duration
}

// Name 返回任务名称
func (t *DbMaintenanceTask) Name() string {
	return "DbMaintenance"
}

// LoopInterval 返回执行间隔
func (t *DbMaintenanceTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *DbMaintenanceTask) IsStartupRun() bool {
	return false
}

// Run 执行维护任务
func (t *DbMaintenanceTask) Run(ctx context.Context) error {
	if err := t.app.Dao.Maintain(ctx); err != nil {
		t.app.Logger().Error("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("type", "loopRun"),
		zap.String("msg", "success"))

	return nil
}

// NewDbMaintenanceTask 创建数据库维护任务
// 配置的间隔为 0 时禁用任务
func NewDbMaintenanceTask(appContainer *app.App) (Task, error) {
	interval := appContainer.Config().GetMaintenanceInterval()
	if interval <= 0 {
		return nil, nil
	}

	return &DbMaintenanceTask{app: appContainer, interval: interval}, nil
}

// init 自动注册维护任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDbMaintenanceTask(appContainer)
	})
}
