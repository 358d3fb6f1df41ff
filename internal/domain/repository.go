package domain

import "context"

// TransactionRepository 交易记录仓储接口
//
// SaveRevision with makeCurrent=true must insert the revision and move the
// record's current pointer in one storage transaction: there is never an
// observable state with zero or two current revisions.
// makeCurrent=true 的 SaveRevision 必须在同一个存储事务中插入修订版本并移动
// 记录的当前指针：绝不存在零个或两个当前修订版本的可观察状态。
type TransactionRepository interface {
	// Create 创建记录及其首个修订版本（原子）
	Create(ctx context.Context, t *Transaction) (*Transaction, error)

	// Get 获取记录的当前修订版本视图
	Get(ctx context.Context, id int64) (*Transaction, error)

	// GetRevision 获取指定修订版本快照
	GetRevision(ctx context.Context, revisionID int64) (*TransactionRevision, error)

	// RevisionIDs 返回记录的全部修订版本 ID，按升序
	RevisionIDs(ctx context.Context, transactionID int64) ([]int64, error)

	// UserRevisionIDs 返回指定作者的全部修订版本 ID，按升序
	UserRevisionIDs(ctx context.Context, authorUID int64) ([]int64, error)

	// ListRevisions 分页返回记录的修订版本，按修订版本 ID 降序（最新在前）
	ListRevisions(ctx context.Context, transactionID int64, page, pageSize int) ([]*TransactionRevision, int64, error)

	// CountRevisions 返回记录的修订版本数量
	CountRevisions(ctx context.Context, transactionID int64) (int64, error)

	// SaveRevision 追加修订版本；makeCurrent 时在同一事务中更新当前指针
	SaveRevision(ctx context.Context, rev *TransactionRevision, makeCurrent bool) (*TransactionRevision, error)

	// DeleteRevision 删除修订版本；当前或仅剩的修订版本会被拒绝
	DeleteRevision(ctx context.Context, revisionID int64) error

	// Delete 删除记录并级联删除其全部修订版本
	Delete(ctx context.Context, id int64) error

	// List 分页返回记录列表（当前修订版本视图）
	List(ctx context.Context, page, pageSize int) ([]*Transaction, int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据 UID 获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// Update 更新用户
	Update(ctx context.Context, user *User) error
}

// Sentinel errors surfaced by repositories when the storage engine reports
// a structurally disallowed operation.
// 存储引擎报告结构上不允许的操作时，仓储层抛出的哨兵错误。
var (
	ErrRevisionIsCurrent = constError("revision is the current revision")
	ErrRevisionIsLast    = constError("revision is the only remaining revision")
)

type constError string

func (e constError) Error() string { return string(e) }
