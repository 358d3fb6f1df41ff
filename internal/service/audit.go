// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// auditor emits structured audit entries for record and revision
// operations. Emission is fire and forget: a failed audit write never
// fails the operation it describes.
// auditor 为记录及修订版本操作发出结构化审计条目。
// 发出即忘：审计写入失败绝不影响其描述的操作。
type auditor struct {
	logger *zap.Logger
}

func newAuditor(lg *zap.Logger) *auditor {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &auditor{logger: lg.Named("audit")}
}

// record logs one performed operation with a unique event id
// record 以唯一事件 ID 记录一次已执行的操作
func (a *auditor) record(op domain.Operation, actor domain.Actor, transactionID, revisionID int64, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String(logger.FieldEventID, uuid.NewString()),
		zap.String(logger.FieldOperation, string(op)),
		zap.Int64(logger.FieldActor, actor.UID),
	}
	if transactionID > 0 {
		fields = append(fields, zap.Int64(logger.FieldTransactionID, transactionID))
	}
	if revisionID > 0 {
		fields = append(fields, zap.Int64(logger.FieldRevisionID, revisionID))
	}
	fields = append(fields, extra...)
	a.logger.Info("operation performed", fields...)
}

// denied logs a rejected operation
// denied 记录一次被拒绝的操作
func (a *auditor) denied(op domain.Operation, actor domain.Actor, transactionID int64) {
	a.logger.Warn("operation denied",
		zap.String(logger.FieldEventID, uuid.NewString()),
		zap.String(logger.FieldOperation, string(op)),
		zap.Int64(logger.FieldActor, actor.UID),
		zap.Int64(logger.FieldTransactionID, transactionID),
	)
}
