package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionServiceCreate(t *testing.T) {
	env := newTestEnv(t)

	record := createRecord(t, env, adminActor)

	assert.NotZero(t, record.ID)
	assert.NotZero(t, record.CurrentRevisionID)
	assert.Equal(t, adminActor.UID, record.OwnerUID)
	assert.Equal(t, "1200.50", record.Amount)
	assert.True(t, record.Published)
}

func TestTransactionServiceCreateRequiresAdminister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	params := &dto.TransactionCreateRequest{
		Name: "n", Sender: "s", Receiver: "r", Amount: "1",
	}

	_, err := env.txService.Create(ctx, editorActor, params)
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)

	_, err = env.txService.Create(ctx, viewerActor, params)
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)
}

func TestTransactionServiceFieldValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params dto.TransactionCreateRequest
	}{
		{
			name:   "empty name",
			params: dto.TransactionCreateRequest{Name: "", Sender: "s", Receiver: "r", Amount: "1"},
		},
		{
			name:   "name too long",
			params: dto.TransactionCreateRequest{Name: strings.Repeat("x", 51), Sender: "s", Receiver: "r", Amount: "1"},
		},
		{
			name:   "sender too long",
			params: dto.TransactionCreateRequest{Name: "n", Sender: strings.Repeat("x", 51), Receiver: "r", Amount: "1"},
		},
		{
			name:   "amount too long",
			params: dto.TransactionCreateRequest{Name: "n", Sender: "s", Receiver: "r", Amount: strings.Repeat("9", 21)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.txService.Create(ctx, adminActor, &tt.params)
			assert.ErrorContains(t, err, "Field validation failed")
		})
	}

	// 金额为不透明文本，非数字默认放行
	_, err := env.txService.Create(ctx, adminActor, &dto.TransactionCreateRequest{
		Name: "n", Sender: "s", Receiver: "r", Amount: "about twelve",
	})
	assert.NoError(t, err)
}

func TestTransactionServiceStrictAmountCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	strictSvc := NewTransactionService(env.repo, nil, &ServiceConfig{
		App: AppServiceConfig{StrictAmountCheck: true},
	})

	_, err := strictSvc.Create(ctx, adminActor, &dto.TransactionCreateRequest{
		Name: "n", Sender: "s", Receiver: "r", Amount: "about twelve",
	})
	assert.ErrorIs(t, err, code.ErrorAmountNotNumeric)

	_, err = strictSvc.Create(ctx, adminActor, &dto.TransactionCreateRequest{
		Name: "n", Sender: "s", Receiver: "r", Amount: "-42.17",
	})
	assert.NoError(t, err)
}

func TestTransactionServiceUpdateCreatesRevision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)
	firstRevID := record.CurrentRevisionID

	updated, err := env.txService.Update(ctx, editorActor, &dto.TransactionUpdateRequest{
		ID:         record.ID,
		Name:       record.Name,
		Sender:     record.Sender,
		Receiver:   record.Receiver,
		Amount:     "1300.00",
		LogMessage: "rent increased",
	})
	require.NoError(t, err)

	assert.Greater(t, updated.CurrentRevisionID, firstRevID)
	assert.Equal(t, "1300.00", updated.Amount)

	// 旧修订版本保持原值
	ids, err := env.repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	old, err := env.repo.GetRevision(ctx, firstRevID)
	require.NoError(t, err)
	assert.Equal(t, "1200.50", old.Amount)

	// 新修订版本记录了更新者和日志
	current, err := env.repo.GetRevision(ctx, updated.CurrentRevisionID)
	require.NoError(t, err)
	assert.Equal(t, editorActor.UID, current.AuthorUID)
	assert.Equal(t, "rent increased", current.LogMessage)
}

func TestTransactionServiceUpdateRequiresEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)

	_, err := env.txService.Update(ctx, viewerActor, &dto.TransactionUpdateRequest{
		ID: record.ID, Name: "n", Sender: "s", Receiver: "r", Amount: "1",
	})
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)
}

func TestTransactionServiceGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)

	// viewer 拥有 view-all 权限可以查看
	got, err := env.txService.Get(ctx, viewerActor, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)

	_, err = env.txService.Get(ctx, viewerActor, record.ID+100)
	assert.ErrorIs(t, err, code.ErrorTransactionNotFound)
}

func TestTransactionServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := createRecord(t, env, adminActor)

	// delete 需要 administer 权限
	err := env.txService.Delete(ctx, editorActor, record.ID)
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)

	require.NoError(t, env.txService.Delete(ctx, adminActor, record.ID))

	_, err = env.txService.Get(ctx, adminActor, record.ID)
	assert.ErrorIs(t, err, code.ErrorTransactionNotFound)

	// 修订版本级联删除
	ids, err := env.repo.RevisionIDs(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTransactionServiceList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createRecord(t, env, adminActor)
	createRecord(t, env, adminActor)

	list, total, err := env.txService.List(ctx, viewerActor, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}
