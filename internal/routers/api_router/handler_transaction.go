package api_router

import (
	"github.com/jollymugivara/transaction-revision-service/internal/app"
	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	pkgapp "github.com/jollymugivara/transaction-revision-service/pkg/app"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"
	apperrors "github.com/jollymugivara/transaction-revision-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler transaction record API router handler
// TransactionHandler 交易记录 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type TransactionHandler struct {
	*Handler
}

// NewTransactionHandler creates TransactionHandler instance
// NewTransactionHandler 创建 TransactionHandler 实例
func NewTransactionHandler(a *app.App) *TransactionHandler {
	return &TransactionHandler{
		Handler: NewHandler(a),
	}
}

// Create creates a record with its first revision
// @Summary Create transaction record
// @Description Create a new record; the submitted fields become its first revision and the current view.
// @Description 创建新记录；提交的字段成为其首个修订版本和当前视图。
// @Tags Transaction
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.TransactionCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TransactionDTO} "Success"
// @Router /api/transaction [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TransactionCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TransactionHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("TransactionHandler.Create err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	record, err := h.App.TransactionService.Create(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "TransactionHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(record))
}

// Get returns a record in its current revision view
// @Summary Get transaction record
// @Description 获取记录的当前修订版本视图
// @Tags Transaction
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query int64 true "Record ID"
// @Success 200 {object} pkgapp.Res{data=dto.TransactionDTO} "Success"
// @Router /api/transaction [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TransactionGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TransactionHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("TransactionHandler.Get err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	record, err := h.App.TransactionService.Get(ctx, actor, params.ID)
	if err != nil {
		h.logError(ctx, "TransactionHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(record))
}

// Update appends a new revision and makes it the current view
// @Summary Update transaction record
// @Description 追加新修订版本并使其成为当前视图，历史版本保持不变
// @Tags Transaction
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.TransactionUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TransactionDTO} "Success"
// @Router /api/transaction [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TransactionUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TransactionHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("TransactionHandler.Update err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	record, err := h.App.TransactionService.Update(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "TransactionHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(record))
}

// Delete removes a record together with its whole revision history
// @Summary Delete transaction record
// @Description 删除记录及其全部修订历史
// @Tags Transaction
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query int64 true "Record ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/transaction [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TransactionDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TransactionHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("TransactionHandler.Delete err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.TransactionService.Delete(ctx, actor, params.ID); err != nil {
		h.logError(ctx, "TransactionHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List returns the records visible to the requesting actor, paginated
// @Summary List transaction records
// @Description 分页获取请求者可见的记录列表
// @Tags Transaction
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page Size"
// @Success 200 {object} pkgapp.Res{data=[]dto.TransactionDTO} "Success"
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("TransactionHandler.List err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	pager := &pkgapp.Pager{Page: pkgapp.GetPage(c), PageSize: pkgapp.GetPageSize(c)}

	list, count, err := h.App.TransactionService.List(ctx, actor, pager)
	if err != nil {
		h.logError(ctx, "TransactionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}
