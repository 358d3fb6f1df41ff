// Package domain 定义领域模型和接口
package domain

import "time"

// Business field length limits // 业务字段长度限制
const (
	MaxNameLength   = 50
	MaxSenderLength = 50
	MaxReceiverLen  = 50
	MaxAmountLength = 20
)

// Transaction is the record in its current-revision view. ID is stable
// across all revisions; CurrentRevisionID points at the revision whose
// snapshot the business fields reflect.
// Transaction 是记录的当前修订版本视图。ID 在所有修订版本间保持不变；
// CurrentRevisionID 指向业务字段所反映的修订版本。
type Transaction struct {
	ID                int64
	CurrentRevisionID int64
	OwnerUID          int64
	Name              string
	Sender            string
	Receiver          string
	// Amount is opaque text, not a parsed number
	// Amount 为不透明文本，不做数字解析
	Amount    string
	Published bool
	CreatedAt time.Time
	ChangedAt time.Time
}

// TransactionRevision is an immutable snapshot of the business fields at
// one point in the record's history. Only the log message is attached at
// creation time; historical revisions are never edited in place.
// TransactionRevision 是记录历史上某一时刻业务字段的不可变快照。
// 只有日志消息在创建时附加；历史修订版本绝不原地修改。
type TransactionRevision struct {
	RevisionID        int64
	TransactionID     int64
	AuthorUID         int64
	LogMessage        string
	RevisionCreatedAt time.Time

	// Snapshot of business fields // 业务字段快照
	Name      string
	Sender    string
	Receiver  string
	Amount    string
	Published bool
	ChangedAt time.Time
}

// SnapshotFrom copies the business fields of t into the revision
// SnapshotFrom 将 t 的业务字段复制到修订版本中
func (r *TransactionRevision) SnapshotFrom(t *Transaction) {
	r.Name = t.Name
	r.Sender = t.Sender
	r.Receiver = t.Receiver
	r.Amount = t.Amount
	r.Published = t.Published
	r.ChangedAt = t.ChangedAt
}

// ApplyTo writes the revision snapshot onto the record view
// ApplyTo 将修订版本快照写回记录视图
func (r *TransactionRevision) ApplyTo(t *Transaction) {
	t.CurrentRevisionID = r.RevisionID
	t.Name = r.Name
	t.Sender = r.Sender
	t.Receiver = r.Receiver
	t.Amount = r.Amount
	t.Published = r.Published
	t.ChangedAt = r.ChangedAt
}
