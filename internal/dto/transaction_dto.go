// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"
)

// TransactionCreateRequest Request parameters for creating a transaction record
// 创建交易记录的请求参数
type TransactionCreateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=50"`         // Record name // 记录名称
	Sender   string `json:"sender" form:"sender" binding:"required,max=50"`     // Paying party // 付款方
	Receiver string `json:"receiver" form:"receiver" binding:"required,max=50"` // Receiving party // 收款方
	Amount   string `json:"amount" form:"amount" binding:"required,max=20"`     // Amount, opaque text // 金额，不透明文本
}

// TransactionUpdateRequest Request parameters for updating a transaction record
// 更新交易记录的请求参数
// Each update creates a new revision; the log message is attached to it.
// 每次更新都会创建新修订版本；日志消息附加在该版本上。
type TransactionUpdateRequest struct {
	ID         int64  `json:"id" form:"id" binding:"required"`
	Name       string `json:"name" form:"name" binding:"required,max=50"`
	Sender     string `json:"sender" form:"sender" binding:"required,max=50"`
	Receiver   string `json:"receiver" form:"receiver" binding:"required,max=50"`
	Amount     string `json:"amount" form:"amount" binding:"required,max=20"`
	LogMessage string `json:"logMessage" form:"logMessage"` // Revision log message // 修订日志消息
}

// TransactionGetRequest Request parameters for fetching a single record
// 获取单条记录的请求参数
type TransactionGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// TransactionDeleteRequest Request parameters for deleting a record with all revisions
// 删除记录（连同全部修订版本）的请求参数
type TransactionDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// TransactionDTO Transaction record data transfer object (current revision view)
// TransactionDTO 交易记录数据传输对象（当前修订版本视图）
type TransactionDTO struct {
	ID                int64      `json:"id"`
	CurrentRevisionID int64      `json:"currentRevisionId"`
	OwnerUID          int64      `json:"ownerUid"`
	Name              string     `json:"name"`
	Sender            string     `json:"sender"`
	Receiver          string     `json:"receiver"`
	Amount            string     `json:"amount"`
	Published         bool       `json:"published"`
	CreatedAt         timex.Time `json:"createdAt"`
	ChangedAt         timex.Time `json:"changedAt"`
}

// TransactionDTOFromDomain 领域模型转 DTO
func TransactionDTOFromDomain(t *domain.Transaction) *TransactionDTO {
	if t == nil {
		return nil
	}
	return &TransactionDTO{
		ID:                t.ID,
		CurrentRevisionID: t.CurrentRevisionID,
		OwnerUID:          t.OwnerUID,
		Name:              t.Name,
		Sender:            t.Sender,
		Receiver:          t.Receiver,
		Amount:            t.Amount,
		Published:         t.Published,
		CreatedAt:         timex.Time(t.CreatedAt),
		ChangedAt:         timex.Time(t.ChangedAt),
	}
}
