// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"
)

// History row action identifiers
// 历史行操作标识
const (
	HistoryActionView   = "view"
	HistoryActionRevert = "revert"
	HistoryActionDelete = "delete"
)

// Redirect hints returned after deleting a revision
// 删除修订版本后返回的跳转提示
const (
	RedirectHistory   = "history"
	RedirectCanonical = "canonical"
)

// RevisionListRequest Request parameters for the revision history of a record
// 获取记录修订历史的请求参数
type RevisionListRequest struct {
	TransactionID int64 `json:"transactionId" form:"transactionId" binding:"required"`
}

// RevisionGetRequest Request parameters for fetching a single revision snapshot
// 获取单个修订版本快照的请求参数
type RevisionGetRequest struct {
	TransactionID int64 `json:"transactionId" form:"transactionId" binding:"required"`
	RevisionID    int64 `json:"revisionId" form:"revisionId" binding:"required"`
}

// RevisionRevertRequest Request parameters for reverting a record to a past revision
// 将记录回滚到历史修订版本的请求参数
type RevisionRevertRequest struct {
	TransactionID int64 `json:"transactionId" form:"transactionId" binding:"required"`
	RevisionID    int64 `json:"revisionId" form:"revisionId" binding:"required"`
}

// RevisionDeleteRequest Request parameters for deleting a single revision
// 删除单个修订版本的请求参数
type RevisionDeleteRequest struct {
	TransactionID int64 `json:"transactionId" form:"transactionId" binding:"required"`
	RevisionID    int64 `json:"revisionId" form:"revisionId" binding:"required"`
}

// RevisionDiffRequest Request parameters for comparing two revisions
// 比较两个修订版本的请求参数
type RevisionDiffRequest struct {
	TransactionID  int64 `json:"transactionId" form:"transactionId" binding:"required"`
	FromRevisionID int64 `json:"fromRevisionId" form:"fromRevisionId" binding:"required"`
	ToRevisionID   int64 `json:"toRevisionId" form:"toRevisionId" binding:"required"`
}

// RevisionDTO Revision snapshot data transfer object
// RevisionDTO 修订版本快照数据传输对象
type RevisionDTO struct {
	RevisionID        int64      `json:"revisionId"`
	TransactionID     int64      `json:"transactionId"`
	AuthorUID         int64      `json:"authorUid"`
	LogMessage        string     `json:"logMessage"`
	Name              string     `json:"name"`
	Sender            string     `json:"sender"`
	Receiver          string     `json:"receiver"`
	Amount            string     `json:"amount"`
	Published         bool       `json:"published"`
	RevisionCreatedAt timex.Time `json:"revisionCreatedAt"`
	// Label 形如 "Revision of <name> from <date>" 的展示标题
	Label string `json:"label"`
}

// RevisionDTOFromDomain 领域模型转 DTO
func RevisionDTOFromDomain(rev *domain.TransactionRevision) *RevisionDTO {
	if rev == nil {
		return nil
	}
	return &RevisionDTO{
		RevisionID:        rev.RevisionID,
		TransactionID:     rev.TransactionID,
		AuthorUID:         rev.AuthorUID,
		LogMessage:        rev.LogMessage,
		Name:              rev.Name,
		Sender:            rev.Sender,
		Receiver:          rev.Receiver,
		Amount:            rev.Amount,
		Published:         rev.Published,
		RevisionCreatedAt: timex.Time(rev.RevisionCreatedAt),
	}
}

// HistoryRowDTO One row of the revision history table. LogMessage is
// already sanitized for safe rendering; Actions lists the operations the
// requesting actor may perform on this row.
// HistoryRowDTO 修订历史表的一行。LogMessage 已消毒可安全渲染；
// Actions 列出请求者可对该行执行的操作。
type HistoryRowDTO struct {
	RevisionID        int64      `json:"revisionId"`
	AuthorUID         int64      `json:"authorUid"`
	AuthorUsername    string     `json:"authorUsername"`
	LogMessage        string     `json:"logMessage"`
	RevisionCreatedAt timex.Time `json:"revisionCreatedAt"`
	IsCurrent         bool       `json:"isCurrent"`
	Actions           []string   `json:"actions"`
}

// HistoryDTO Full revision history of a record, most recent first
// HistoryDTO 记录的完整修订历史，最新在前
type HistoryDTO struct {
	TransactionID int64            `json:"transactionId"`
	Name          string           `json:"name"`
	Rows          []*HistoryRowDTO `json:"rows"`
}

// RevisionDeleteResultDTO Result of deleting a revision. Redirect tells the
// client where to navigate next: back to the history when other revisions
// remain, otherwise to the record itself.
// RevisionDeleteResultDTO 删除修订版本的结果。Redirect 告知客户端后续跳转：
// 仍有其他修订版本时回到历史页，否则回到记录本身。
type RevisionDeleteResultDTO struct {
	TransactionID int64  `json:"transactionId"`
	RevisionID    int64  `json:"revisionId"`
	Redirect      string `json:"redirect"`
}

// FieldDiffDTO Inline diff of one business field between two revisions
// FieldDiffDTO 两个修订版本之间单个业务字段的行内差异
type FieldDiffDTO struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
	// Pretty 为 diffmatchpatch 文本格式的差异描述
	Pretty string `json:"pretty"`
}

// RevisionDiffDTO Comparison of two revision snapshots
// RevisionDiffDTO 两个修订版本快照的比较结果
type RevisionDiffDTO struct {
	TransactionID  int64           `json:"transactionId"`
	FromRevisionID int64           `json:"fromRevisionId"`
	ToRevisionID   int64           `json:"toRevisionId"`
	Fields         []*FieldDiffDTO `json:"fields"`
}
