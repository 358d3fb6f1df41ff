// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/jollymugivara/transaction-revision-service/internal/app"
	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/middleware"
	pkgapp "github.com/jollymugivara/transaction-revision-service/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// actor resolves the requesting actor from the verified token claims.
// Returns ok=false when the request carries no usable identity.
// actor 从已验证的 Token 声明中解析请求者身份。
// 请求不携带可用身份时返回 ok=false。
func (h *Handler) actor(c *gin.Context) (domain.Actor, bool) {
	user := pkgapp.GetUserEntity(c)
	if user == nil || user.UID == 0 {
		return domain.Actor{}, false
	}
	role, ok := domain.RoleFromString(user.Role)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.ActorForRole(user.UID, role), true
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
