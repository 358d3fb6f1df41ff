package service

import (
	"context"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, env *testEnv, username, role string) *dto.UserDTO {
	t.Helper()

	user, err := env.userService.Register(context.Background(), &dto.UserCreateRequest{
		Email:           username + "@example.com",
		Username:        username,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            role,
	})
	require.NoError(t, err)
	return user
}

func TestUserServiceRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := registerUser(t, env, "alice", "editor")
	assert.Equal(t, "editor", user.Role)

	// 邮箱或用户名登录均可
	logged, err := env.userService.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice@example.com",
		Password:    "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	logged, err = env.userService.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice",
		Password:    "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	// 错误密码与不存在的用户返回同一错误
	_, err = env.userService.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice",
		Password:    "wrong",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	_, err = env.userService.Login(ctx, &dto.UserLoginRequest{
		Credentials: "nobody",
		Password:    "secret123",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 未知角色被拒绝
	_, err := env.userService.Register(ctx, &dto.UserCreateRequest{
		Email: "bob@example.com", Username: "bob",
		Password: "secret123", ConfirmPassword: "secret123",
		Role: "manager",
	})
	assert.ErrorIs(t, err, code.ErrorUserRoleUnknown)

	// 密码不一致
	_, err = env.userService.Register(ctx, &dto.UserCreateRequest{
		Email: "bob@example.com", Username: "bob",
		Password: "secret123", ConfirmPassword: "other",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordNotMatch)

	// 重复注册
	registerUser(t, env, "bob", "")
	_, err = env.userService.Register(ctx, &dto.UserCreateRequest{
		Email: "bob@example.com", Username: "bob2",
		Password: "secret123", ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, code.ErrorUserAlreadyExists)
}

func TestUserServiceDefaultRole(t *testing.T) {
	env := newTestEnv(t)

	user := registerUser(t, env, "carol", "")
	assert.Equal(t, "viewer", user.Role)
}

func TestUserServiceActorFor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := registerUser(t, env, "dave", "admin")

	actor, err := env.userService.ActorFor(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, user.UID, actor.UID)
	assert.True(t, actor.HasPermission(domain.PermissionAdministerEntities))

	_, err = env.userService.ActorFor(ctx, user.UID+99)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)
}

func TestUserServiceChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := registerUser(t, env, "erin", "")

	err := env.userService.ChangePassword(ctx, user.UID, &dto.UserChangePasswordRequest{
		OldPassword: "wrong", Password: "next456", ConfirmPassword: "next456",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordWrong)

	err = env.userService.ChangePassword(ctx, user.UID, &dto.UserChangePasswordRequest{
		OldPassword: "secret123", Password: "next456", ConfirmPassword: "next456",
	})
	require.NoError(t, err)

	_, err = env.userService.Login(ctx, &dto.UserLoginRequest{
		Credentials: "erin", Password: "next456",
	}, "127.0.0.1")
	assert.NoError(t, err)
}
