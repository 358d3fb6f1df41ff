package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/dao"
	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/app"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv 测试环境：真实 dao + 内存 sqlite
type testEnv struct {
	txService   TransactionService
	revService  RevisionService
	userService UserService
	repo        domain.TransactionRepository
	userRepo    domain.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         "file:svc_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared",
		AutoMigrate:  true,
		RunMode:      "release",
		MaxIdleConns: 4,
		MaxOpenConns: 4,
	}

	db, err := dao.NewDBEngineWithConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	d := dao.New(db, context.Background(), dao.WithConfig(&cfg))
	repo := dao.NewTransactionRepository(d)
	userRepo := dao.NewUserRepository(d)

	svcConfig := &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: true, DefaultRole: "viewer"},
		App:  AppServiceConfig{DefaultPageSize: 10, MaxPageSize: 100},
	}

	tokenManager := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})

	return &testEnv{
		txService:   NewTransactionService(repo, zap.NewNop(), svcConfig),
		revService:  NewRevisionService(repo, userRepo, zap.NewNop()),
		userService: NewUserService(userRepo, tokenManager, zap.NewNop(), svcConfig),
		repo:        repo,
		userRepo:    userRepo,
	}
}

// 常用角色操作者
var (
	adminActor  = domain.ActorForRole(1, domain.RoleAdmin)
	editorActor = domain.ActorForRole(2, domain.RoleEditor)
	viewerActor = domain.ActorForRole(3, domain.RoleViewer)
)

func createRecord(t *testing.T, env *testEnv, actor domain.Actor) *dto.TransactionDTO {
	t.Helper()

	record, err := env.txService.Create(context.Background(), actor, &dto.TransactionCreateRequest{
		Name:     "office rent",
		Sender:   "ACME Ltd",
		Receiver: "Prime Estates",
		Amount:   "1200.50",
	})
	require.NoError(t, err)
	return record
}
