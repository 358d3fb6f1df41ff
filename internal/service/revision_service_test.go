package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// updateRecord 追加一个新修订版本并返回更新后的记录视图
func updateRecord(t *testing.T, env *testEnv, id int64, amount, logMessage string) *dto.TransactionDTO {
	t.Helper()

	updated, err := env.txService.Update(context.Background(), editorActor, &dto.TransactionUpdateRequest{
		ID:         id,
		Name:       "office rent",
		Sender:     "ACME Ltd",
		Receiver:   "Prime Estates",
		Amount:     amount,
		LogMessage: logMessage,
	})
	require.NoError(t, err)
	return updated
}

func TestRevisionServiceHistoryOrderAndActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	updateRecord(t, env, record.ID, "1300.00", "first bump")
	updated := updateRecord(t, env, record.ID, "1400.00", "second bump")

	history, total, err := env.revService.History(ctx, adminActor, record.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, history.Rows, 3)

	// 最新在前，首行为当前版本
	assert.True(t, history.Rows[0].IsCurrent)
	assert.Equal(t, updated.CurrentRevisionID, history.Rows[0].RevisionID)
	for i := 1; i < len(history.Rows); i++ {
		assert.False(t, history.Rows[i].IsCurrent)
		assert.Greater(t, history.Rows[i-1].RevisionID, history.Rows[i].RevisionID)
	}

	// 当前行只能查看；历史行对管理员可回滚可删除
	assert.Equal(t, []string{dto.HistoryActionView}, history.Rows[0].Actions)
	assert.Equal(t, []string{dto.HistoryActionView, dto.HistoryActionRevert, dto.HistoryActionDelete}, history.Rows[1].Actions)
}

func TestRevisionServiceHistoryActionsPerRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	updateRecord(t, env, record.ID, "1300.00", "bump")

	// editor 可回滚但不能删除修订版本
	history, _, err := env.revService.History(ctx, editorActor, record.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{dto.HistoryActionView, dto.HistoryActionRevert}, history.Rows[1].Actions)

	// viewer 只能查看
	history, _, err = env.revService.History(ctx, viewerActor, record.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{dto.HistoryActionView}, history.Rows[1].Actions)
}

func TestRevisionServiceHistorySanitizesLogMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	updateRecord(t, env, record.ID, "1300.00", `<script>alert(1)</script><em>adjusted</em>`)

	history, _, err := env.revService.History(ctx, adminActor, record.ID, nil)
	require.NoError(t, err)

	logMessage := history.Rows[0].LogMessage
	assert.NotContains(t, logMessage, "<script>")
	assert.Contains(t, logMessage, "<em>adjusted</em>")
}

func TestRevisionServiceGetRevisionLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)

	rev, err := env.revService.GetRevision(ctx, viewerActor, &dto.RevisionGetRequest{
		TransactionID: record.ID,
		RevisionID:    record.CurrentRevisionID,
	})
	require.NoError(t, err)

	expected := fmt.Sprintf("Revision of office rent from %s", rev.RevisionCreatedAt.String())
	assert.Equal(t, expected, rev.Label)

	// 修订版本必须属于给定记录
	other := createRecord(t, env, adminActor)
	_, err = env.revService.GetRevision(ctx, viewerActor, &dto.RevisionGetRequest{
		TransactionID: record.ID,
		RevisionID:    other.CurrentRevisionID,
	})
	assert.ErrorIs(t, err, code.ErrorRevisionNotFound)
}

func TestRevisionServiceRevert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	firstRevID := record.CurrentRevisionID
	updateRecord(t, env, record.ID, "1300.00", "bump")

	source, err := env.repo.GetRevision(ctx, firstRevID)
	require.NoError(t, err)

	reverted, err := env.revService.Revert(ctx, editorActor, &dto.RevisionRevertRequest{
		TransactionID: record.ID,
		RevisionID:    firstRevID,
	})
	require.NoError(t, err)

	// 回滚创建新版本而不是移动指针
	assert.Greater(t, reverted.CurrentRevisionID, firstRevID)
	assert.Equal(t, "1200.50", reverted.Amount)

	// 新版本的日志引用被复制版本的时间戳
	current, err := env.repo.GetRevision(ctx, reverted.CurrentRevisionID)
	require.NoError(t, err)
	expected := fmt.Sprintf("Copy of the revision from %s.", timex.Time(source.RevisionCreatedAt).String())
	assert.Equal(t, expected, current.LogMessage)
	assert.Equal(t, editorActor.UID, current.AuthorUID)

	// 原修订版本保持不变
	unchanged, err := env.repo.GetRevision(ctx, firstRevID)
	require.NoError(t, err)
	assert.Equal(t, source.LogMessage, unchanged.LogMessage)
	assert.Equal(t, source.Amount, unchanged.Amount)

	// 历史共三个版本
	count, err := env.repo.CountRevisions(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRevisionServiceRevertRequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	updateRecord(t, env, record.ID, "1300.00", "bump")

	ids, err := env.repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)

	_, err = env.revService.Revert(ctx, viewerActor, &dto.RevisionRevertRequest{
		TransactionID: record.ID,
		RevisionID:    ids[0],
	})
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)
}

func TestRevisionServiceDeleteRevision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	firstRevID := record.CurrentRevisionID
	updateRecord(t, env, record.ID, "1300.00", "bump")
	updateRecord(t, env, record.ID, "1400.00", "bump again")

	// 删除后仍有多个版本：跳转回历史页
	result, err := env.revService.DeleteRevision(ctx, adminActor, &dto.RevisionDeleteRequest{
		TransactionID: record.ID,
		RevisionID:    firstRevID,
	})
	require.NoError(t, err)
	assert.Equal(t, dto.RedirectHistory, result.Redirect)

	// 再删一个，只剩当前版本：跳转到记录本身
	ids, err := env.repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	result, err = env.revService.DeleteRevision(ctx, adminActor, &dto.RevisionDeleteRequest{
		TransactionID: record.ID,
		RevisionID:    ids[0],
	})
	require.NoError(t, err)
	assert.Equal(t, dto.RedirectCanonical, result.Redirect)
}

func TestRevisionServiceDeleteRevisionGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)

	// 当前修订版本不可删除
	_, err := env.revService.DeleteRevision(ctx, adminActor, &dto.RevisionDeleteRequest{
		TransactionID: record.ID,
		RevisionID:    record.CurrentRevisionID,
	})
	assert.ErrorIs(t, err, code.ErrorRevisionIsCurrent)

	// editor 没有 delete-all-revisions 权限
	updateRecord(t, env, record.ID, "1300.00", "bump")
	ids, err := env.repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)

	_, err = env.revService.DeleteRevision(ctx, editorActor, &dto.RevisionDeleteRequest{
		TransactionID: record.ID,
		RevisionID:    ids[0],
	})
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)
}

func TestRevisionServiceDiff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	firstRevID := record.CurrentRevisionID
	updated := updateRecord(t, env, record.ID, "1300.00", "bump")

	diff, err := env.revService.Diff(ctx, viewerActor, &dto.RevisionDiffRequest{
		TransactionID:  record.ID,
		FromRevisionID: firstRevID,
		ToRevisionID:   updated.CurrentRevisionID,
	})
	require.NoError(t, err)

	// 只有 amount 发生变化
	require.Len(t, diff.Fields, 1)
	assert.Equal(t, "amount", diff.Fields[0].Field)
	assert.Equal(t, "1200.50", diff.Fields[0].From)
	assert.Equal(t, "1300.00", diff.Fields[0].To)
	assert.NotEmpty(t, diff.Fields[0].Pretty)
}

func TestRevisionServiceUserRevisionIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// admin 创建两条记录，editor 在两条记录上各追加一个修订版本
	first := createRecord(t, env, adminActor)
	second := createRecord(t, env, adminActor)
	updatedFirst := updateRecord(t, env, first.ID, "1300.00", "bump")
	updatedSecond := updateRecord(t, env, second.ID, "1400.00", "bump")

	ids, err := env.revService.UserRevisionIDs(ctx, editorActor)
	require.NoError(t, err)
	assert.Equal(t, []int64{updatedFirst.CurrentRevisionID, updatedSecond.CurrentRevisionID}, ids)

	// admin 撰写了两条记录的初始修订版本
	ids, err = env.revService.UserRevisionIDs(ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, []int64{first.CurrentRevisionID, second.CurrentRevisionID}, ids)
}
