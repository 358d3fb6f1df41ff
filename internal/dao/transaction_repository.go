package dao

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/model"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionRepository 实现 domain.TransactionRepository 接口
type transactionRepository struct {
	dao *Dao

	// getGroup coalesces concurrent reads of the same record
	// getGroup 合并对同一记录的并发读取
	getGroup singleflight.Group
}

// NewTransactionRepository 创建 TransactionRepository 实例
func NewTransactionRepository(dao *Dao) domain.TransactionRepository {
	return &transactionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *transactionRepository) toDomain(m *model.Transaction) (*domain.Transaction, error) {
	if m == nil {
		return nil, nil
	}
	t := new(domain.Transaction)
	if err := copier.Copy(t, m); err != nil {
		return nil, err
	}
	t.CreatedAt = m.CreatedAt.Time()
	t.ChangedAt = m.ChangedAt.Time()
	return t, nil
}

// toModel 将领域模型转换为数据库模型
func (r *transactionRepository) toModel(t *domain.Transaction) (*model.Transaction, error) {
	m := new(model.Transaction)
	if err := copier.Copy(m, t); err != nil {
		return nil, err
	}
	m.CreatedAt = timex.Time(t.CreatedAt)
	m.ChangedAt = timex.Time(t.ChangedAt)
	return m, nil
}

func (r *transactionRepository) revisionToDomain(m *model.TransactionRevision) (*domain.TransactionRevision, error) {
	if m == nil {
		return nil, nil
	}
	rev := new(domain.TransactionRevision)
	if err := copier.Copy(rev, m); err != nil {
		return nil, err
	}
	rev.RevisionCreatedAt = m.RevisionCreatedAt.Time()
	rev.ChangedAt = m.RevisionCreatedAt.Time()
	return rev, nil
}

func (r *transactionRepository) revisionToModel(rev *domain.TransactionRevision) (*model.TransactionRevision, error) {
	m := new(model.TransactionRevision)
	if err := copier.Copy(m, rev); err != nil {
		return nil, err
	}
	m.RevisionCreatedAt = timex.Time(rev.RevisionCreatedAt)
	return m, nil
}

// lockForUpdate adds a row lock on engines that support it; sqlite
// serializes writers on its own.
// lockForUpdate 在支持的引擎上加行锁；sqlite 自行串行化写入。
func (r *transactionRepository) lockForUpdate(tx *gorm.DB) *gorm.DB {
	switch r.dao.dialect() {
	case "mysql", "postgres":
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create 创建记录及其首个修订版本（原子）
func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.ChangedAt.IsZero() {
		t.ChangedAt = now
	}

	m, err := r.toModel(t)
	if err != nil {
		return nil, err
	}

	err = r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		rev := &domain.TransactionRevision{
			TransactionID:     m.ID,
			AuthorUID:         t.OwnerUID,
			LogMessage:        "",
			RevisionCreatedAt: now,
		}
		rev.SnapshotFrom(t)
		revModel, err := r.revisionToModel(rev)
		if err != nil {
			return err
		}
		if err := tx.Create(revModel).Error; err != nil {
			return err
		}

		m.CurrentRevisionID = revModel.RevisionID
		return tx.Model(&model.Transaction{}).
			Where("id = ?", m.ID).
			Update("current_revision_id", revModel.RevisionID).Error
	})
	if err != nil {
		return nil, err
	}

	return r.toDomain(m)
}

// Get 获取记录的当前修订版本视图
func (r *transactionRepository) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	v, err, _ := r.getGroup.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		var m model.Transaction
		if err := r.dao.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return r.toDomain(&m)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*domain.Transaction), nil
}

// GetRevision 获取指定修订版本快照
func (r *transactionRepository) GetRevision(ctx context.Context, revisionID int64) (*domain.TransactionRevision, error) {
	var m model.TransactionRevision
	if err := r.dao.Db.WithContext(ctx).Where("revision_id = ?", revisionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.revisionToDomain(&m)
}

// RevisionIDs 返回记录的全部修订版本 ID，按升序
func (r *transactionRepository) RevisionIDs(ctx context.Context, transactionID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.Db.WithContext(ctx).
		Model(&model.TransactionRevision{}).
		Where("transaction_id = ?", transactionID).
		Order("revision_id ASC").
		Pluck("revision_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UserRevisionIDs 返回指定作者的全部修订版本 ID，按升序
func (r *transactionRepository) UserRevisionIDs(ctx context.Context, authorUID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.Db.WithContext(ctx).
		Model(&model.TransactionRevision{}).
		Where("author_uid = ?", authorUID).
		Order("revision_id ASC").
		Pluck("revision_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListRevisions 分页返回记录的修订版本，最新在前
func (r *transactionRepository) ListRevisions(ctx context.Context, transactionID int64, page, pageSize int) ([]*domain.TransactionRevision, int64, error) {
	db := r.dao.Db.WithContext(ctx).
		Model(&model.TransactionRevision{}).
		Where("transaction_id = ?", transactionID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*model.TransactionRevision
	query := db.Order("revision_id DESC")
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(pageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	revisions := make([]*domain.TransactionRevision, 0, len(rows))
	for _, row := range rows {
		rev, err := r.revisionToDomain(row)
		if err != nil {
			return nil, 0, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, total, nil
}

// CountRevisions 返回记录的修订版本数量
func (r *transactionRepository) CountRevisions(ctx context.Context, transactionID int64) (int64, error) {
	var total int64
	err := r.dao.Db.WithContext(ctx).
		Model(&model.TransactionRevision{}).
		Where("transaction_id = ?", transactionID).
		Count(&total).Error
	return total, err
}

// SaveRevision 追加修订版本；makeCurrent 时在同一事务中更新当前指针
func (r *transactionRepository) SaveRevision(ctx context.Context, rev *domain.TransactionRevision, makeCurrent bool) (*domain.TransactionRevision, error) {
	if rev.RevisionCreatedAt.IsZero() {
		rev.RevisionCreatedAt = time.Now()
	}

	revModel, err := r.revisionToModel(rev)
	if err != nil {
		return nil, err
	}
	revModel.RevisionID = 0

	err = r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.Transaction
		if err := r.lockForUpdate(tx).Where("id = ?", rev.TransactionID).First(&record).Error; err != nil {
			return err
		}

		if err := tx.Create(revModel).Error; err != nil {
			return err
		}

		if !makeCurrent {
			return nil
		}

		// Move the current pointer and the record view in the same
		// storage transaction as the insert.
		// 在与插入相同的存储事务中移动当前指针和记录视图。
		return tx.Model(&model.Transaction{}).
			Where("id = ?", rev.TransactionID).
			Updates(map[string]interface{}{
				"current_revision_id": revModel.RevisionID,
				"name":                revModel.Name,
				"sender":              revModel.Sender,
				"receiver":            revModel.Receiver,
				"amount":              revModel.Amount,
				"published":           revModel.Published,
				"changed_at":          revModel.RevisionCreatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	r.getGroup.Forget(strconv.FormatInt(rev.TransactionID, 10))
	return r.revisionToDomain(revModel)
}

// DeleteRevision 删除修订版本；当前或仅剩的修订版本会被拒绝
func (r *transactionRepository) DeleteRevision(ctx context.Context, revisionID int64) error {
	return r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rev model.TransactionRevision
		if err := tx.Where("revision_id = ?", revisionID).First(&rev).Error; err != nil {
			return err
		}

		var record model.Transaction
		if err := r.lockForUpdate(tx).Where("id = ?", rev.TransactionID).First(&record).Error; err != nil {
			return err
		}

		if record.CurrentRevisionID == revisionID {
			return domain.ErrRevisionIsCurrent
		}

		var total int64
		if err := tx.Model(&model.TransactionRevision{}).
			Where("transaction_id = ?", rev.TransactionID).
			Count(&total).Error; err != nil {
			return err
		}
		if total <= 1 {
			return domain.ErrRevisionIsLast
		}

		return tx.Where("revision_id = ?", revisionID).Delete(&model.TransactionRevision{}).Error
	})
}

// Delete 删除记录并级联删除其全部修订版本
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	err := r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionRevision{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Transaction{}).Error
	})
	if err != nil {
		return err
	}
	r.getGroup.Forget(strconv.FormatInt(id, 10))
	return nil
}

// List 分页返回记录列表（当前修订版本视图）
func (r *transactionRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Transaction, int64, error) {
	db := r.dao.Db.WithContext(ctx).Model(&model.Transaction{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*model.Transaction
	query := db.Order("id ASC")
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(pageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	list := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := r.toDomain(row)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, t)
	}
	return list, total, nil
}
