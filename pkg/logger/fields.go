package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldActor 操作者 ID 字段（审计日志）
	FieldActor = "actorId"

	// FieldOperation 操作类型字段（审计日志）
	FieldOperation = "operation"

	// FieldTransactionID 交易记录 ID 字段
	FieldTransactionID = "transactionId"

	// FieldRevisionID 修订版本 ID 字段
	FieldRevisionID = "revisionId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldEventID 审计事件 ID 字段
	FieldEventID = "eventId"
)
