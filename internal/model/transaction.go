package model

import "github.com/jollymugivara/transaction-revision-service/pkg/timex"

const TableNameTransaction = "transaction"

// Transaction mapped from table <transaction>
type Transaction struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	CurrentRevisionID int64      `gorm:"column:current_revision_id;not null;index:idx_current_revision" json:"currentRevisionId" form:"currentRevisionId"`
	OwnerUID          int64      `gorm:"column:owner_uid;not null;index:idx_owner_uid" json:"ownerUid" form:"ownerUid"`
	Name              string     `gorm:"column:name;not null" json:"name" form:"name"`
	Sender            string     `gorm:"column:sender;not null" json:"sender" form:"sender"`
	Receiver          string     `gorm:"column:receiver;not null" json:"receiver" form:"receiver"`
	Amount            string     `gorm:"column:amount;not null" json:"amount" form:"amount"`
	Published         bool       `gorm:"column:published;default:true" json:"published" form:"published"`
	CreatedAt         timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	ChangedAt         timex.Time `gorm:"column:changed_at;type:datetime;default:NULL;autoUpdateTime:false" json:"changedAt" form:"changedAt"`
}

// TableName Transaction's table name
func (*Transaction) TableName() string {
	return TableNameTransaction
}

const TableNameTransactionRevision = "transaction_revision"

// TransactionRevision mapped from table <transaction_revision>
// Each row is an immutable snapshot of the record at save time.
// 每一行都是保存时记录的不可变快照
type TransactionRevision struct {
	RevisionID        int64      `gorm:"column:revision_id;primaryKey;autoIncrement" json:"revisionId" form:"revisionId"`
	TransactionID     int64      `gorm:"column:transaction_id;not null;index:idx_transaction_id,priority:1" json:"transactionId" form:"transactionId"`
	AuthorUID         int64      `gorm:"column:author_uid;not null;index:idx_author_uid" json:"authorUid" form:"authorUid"`
	LogMessage        string     `gorm:"column:log_message" json:"logMessage" form:"logMessage"`
	Name              string     `gorm:"column:name;not null" json:"name" form:"name"`
	Sender            string     `gorm:"column:sender;not null" json:"sender" form:"sender"`
	Receiver          string     `gorm:"column:receiver;not null" json:"receiver" form:"receiver"`
	Amount            string     `gorm:"column:amount;not null" json:"amount" form:"amount"`
	Published         bool       `gorm:"column:published;default:true" json:"published" form:"published"`
	RevisionCreatedAt timex.Time `gorm:"column:revision_created_at;type:datetime;default:NULL;autoCreateTime:false;index:idx_transaction_id,priority:2" json:"revisionCreatedAt" form:"revisionCreatedAt"`
}

// TableName TransactionRevision's table name
func (*TransactionRevision) TableName() string {
	return TableNameTransactionRevision
}
