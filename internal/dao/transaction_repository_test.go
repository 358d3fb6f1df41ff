package dao

import (
	"context"
	"strings"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	// 保持空闲连接，避免共享内存库在连接关闭时被销毁
	cfg := DatabaseConfig{
		Type:         "sqlite",
		Path:         "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared",
		AutoMigrate:  true,
		RunMode:      "release",
		MaxIdleConns: 4,
		MaxOpenConns: 4,
	}

	db, err := NewDBEngineWithConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return New(db, context.Background(), WithConfig(&cfg), WithLogger(zap.NewNop()))
}

func seedRecord(t *testing.T, repo domain.TransactionRepository, ownerUID int64) *domain.Transaction {
	t.Helper()

	record, err := repo.Create(context.Background(), &domain.Transaction{
		OwnerUID: ownerUID,
		Name:     "office rent",
		Sender:   "ACME Ltd",
		Receiver: "Prime Estates",
		Amount:   "1200.50",
	})
	require.NoError(t, err)
	require.NotZero(t, record.ID)
	return record
}

func TestTransactionRepositoryCreate(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)

	record := seedRecord(t, repo, 1)

	// 创建时即有首个修订版本，且为当前版本
	assert.NotZero(t, record.CurrentRevisionID)

	ids, err := repo.RevisionIDs(context.Background(), record.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, record.CurrentRevisionID, ids[0])

	rev, err := repo.GetRevision(context.Background(), record.CurrentRevisionID)
	require.NoError(t, err)
	require.NotNil(t, rev)
	assert.Equal(t, "office rent", rev.Name)
	assert.Equal(t, "1200.50", rev.Amount)
	assert.Equal(t, int64(1), rev.AuthorUID)
}

func TestTransactionRepositorySaveRevisionMakeCurrent(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)
	firstRevID := record.CurrentRevisionID

	rev := &domain.TransactionRevision{
		TransactionID: record.ID,
		AuthorUID:     2,
		LogMessage:    "rent increased",
	}
	rev.SnapshotFrom(record)
	rev.Amount = "1300.00"

	saved, err := repo.SaveRevision(ctx, rev, true)
	require.NoError(t, err)
	assert.Greater(t, saved.RevisionID, firstRevID)

	// 当前指针与记录视图一起移动
	got, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.RevisionID, got.CurrentRevisionID)
	assert.Equal(t, "1300.00", got.Amount)

	// 旧修订版本保持不变
	old, err := repo.GetRevision(ctx, firstRevID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, "1200.50", old.Amount)

	ids, err := repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{firstRevID, saved.RevisionID}, ids)
}

func TestTransactionRepositorySaveRevisionKeepCurrent(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)
	firstRevID := record.CurrentRevisionID

	rev := &domain.TransactionRevision{
		TransactionID: record.ID,
		AuthorUID:     3,
		LogMessage:    "draft correction",
	}
	rev.SnapshotFrom(record)
	rev.Sender = "ACME Holdings"

	saved, err := repo.SaveRevision(ctx, rev, false)
	require.NoError(t, err)
	assert.NotZero(t, saved.RevisionID)

	// makeCurrent=false 不移动当前指针
	got, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, firstRevID, got.CurrentRevisionID)
	assert.Equal(t, "ACME Ltd", got.Sender)
}

func TestTransactionRepositoryDeleteRevisionGuards(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)
	firstRevID := record.CurrentRevisionID

	// 仅剩一个修订版本时拒绝删除
	err := repo.DeleteRevision(ctx, firstRevID)
	assert.ErrorIs(t, err, domain.ErrRevisionIsCurrent)

	rev := &domain.TransactionRevision{TransactionID: record.ID, AuthorUID: 1}
	rev.SnapshotFrom(record)
	saved, err := repo.SaveRevision(ctx, rev, true)
	require.NoError(t, err)

	// 当前修订版本拒绝删除
	err = repo.DeleteRevision(ctx, saved.RevisionID)
	assert.ErrorIs(t, err, domain.ErrRevisionIsCurrent)

	// 非当前的历史修订版本可以删除
	err = repo.DeleteRevision(ctx, firstRevID)
	require.NoError(t, err)

	ids, err := repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{saved.RevisionID}, ids)

	// 删除后仅剩的修订版本同样拒绝删除
	err = repo.DeleteRevision(ctx, saved.RevisionID)
	assert.ErrorIs(t, err, domain.ErrRevisionIsCurrent)
}

func TestTransactionRepositoryDeleteRevisionLastGuard(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)
	firstRevID := record.CurrentRevisionID

	// 两个修订版本，指针在第二个上
	rev := &domain.TransactionRevision{TransactionID: record.ID, AuthorUID: 1}
	rev.SnapshotFrom(record)
	_, err := repo.SaveRevision(ctx, rev, true)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRevision(ctx, firstRevID))

	count, err := repo.CountRevisions(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactionRepositoryDeleteCascades(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)

	rev := &domain.TransactionRevision{TransactionID: record.ID, AuthorUID: 1}
	rev.SnapshotFrom(record)
	_, err := repo.SaveRevision(ctx, rev, true)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, record.ID))

	got, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ids, err := repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTransactionRepositoryUserRevisionIDs(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	recordA := seedRecord(t, repo, 7)
	recordB := seedRecord(t, repo, 7)

	rev := &domain.TransactionRevision{TransactionID: recordA.ID, AuthorUID: 9}
	rev.SnapshotFrom(recordA)
	saved, err := repo.SaveRevision(ctx, rev, true)
	require.NoError(t, err)

	ids, err := repo.UserRevisionIDs(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{recordA.CurrentRevisionID, recordB.CurrentRevisionID}, ids)

	ids, err = repo.UserRevisionIDs(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{saved.RevisionID}, ids)
}

func TestTransactionRepositoryListRevisionsOrder(t *testing.T) {
	d := newTestDao(t)
	repo := NewTransactionRepository(d)
	ctx := context.Background()

	record := seedRecord(t, repo, 1)
	for i := 0; i < 3; i++ {
		rev := &domain.TransactionRevision{TransactionID: record.ID, AuthorUID: 1}
		rev.SnapshotFrom(record)
		_, err := repo.SaveRevision(ctx, rev, true)
		require.NoError(t, err)
	}

	revisions, total, err := repo.ListRevisions(ctx, record.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, revisions, 4)

	// 最新在前
	for i := 1; i < len(revisions); i++ {
		assert.Greater(t, revisions[i-1].RevisionID, revisions[i].RevisionID)
	}

	// 分页
	pageTwo, total, err := repo.ListRevisions(ctx, record.ID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, pageTwo, 1)
}

func TestUserRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "$2a$10$hash",
		Role:     domain.RoleEditor,
	})
	require.NoError(t, err)
	require.NotZero(t, created.UID)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleEditor, got.Role)

	got.Role = domain.RoleAdmin
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByUID(ctx, created.UID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
