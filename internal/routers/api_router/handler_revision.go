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

// RevisionHandler revision history API router handler
// RevisionHandler 修订历史 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type RevisionHandler struct {
	*Handler
}

// NewRevisionHandler 创建 RevisionHandler 实例
func NewRevisionHandler(a *app.App) *RevisionHandler {
	return &RevisionHandler{
		Handler: NewHandler(a),
	}
}

// History returns the revision history table of a record
// @Summary Get revision history
// @Description Paginated revision history of a record, most recent first. Each row carries the actions the requester may perform on it.
// @Description 分页获取记录的修订历史，最新在前。每行携带请求者可对其执行的操作。
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.RevisionListRequest true "Query Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDTO} "Success"
// @Router /api/transaction/revisions [get]
func (h *RevisionHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionListRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.History.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.History err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	pager := &pkgapp.Pager{Page: pkgapp.GetPage(c), PageSize: pkgapp.GetPageSize(c)}

	history, count, err := h.App.RevisionService.History(ctx, actor, params.TransactionID, pager)
	if err != nil {
		h.logError(ctx, "RevisionHandler.History", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, history, int(count))
}

// Get returns a single revision snapshot with its display label
// @Summary Get revision snapshot
// @Description 获取单个修订版本的只读快照及其展示标题
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.RevisionGetRequest true "Query Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.RevisionDTO} "Success"
// @Router /api/transaction/revision [get]
func (h *RevisionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.Get err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	revision, err := h.App.RevisionService.GetRevision(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "RevisionHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(revision))
}

// Revert makes a past revision's content the new current revision
// @Summary Revert to a past revision
// @Description Copy the selected past revision into a brand new current revision. The history is append-only: nothing is overwritten.
// @Description 将选定的历史修订版本复制为全新的当前修订版本。历史只追加，不覆盖任何内容。
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.RevisionRevertRequest true "Revert Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TransactionDTO} "Success"
// @Router /api/transaction/revision/revert [post]
func (h *RevisionHandler) Revert(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionRevertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.Revert.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.Revert err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	record, err := h.App.RevisionService.Revert(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "RevisionHandler.Revert", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(record))
}

// Delete removes a single non-current revision
// @Summary Delete a revision
// @Description Delete one past revision. The current revision and the sole remaining revision are protected. The result carries a redirect hint for the client.
// @Description 删除一个历史修订版本。当前版本和仅存版本受保护。结果携带客户端的跳转提示。
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.RevisionDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.RevisionDeleteResultDTO} "Success"
// @Router /api/transaction/revision [delete]
func (h *RevisionHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.Delete err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.RevisionService.DeleteRevision(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "RevisionHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// UserRevisions lists the IDs of all revisions the requester authored
// @Summary List own revision IDs
// @Description 按升序返回请求者撰写的全部修订版本 ID
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]int64} "Success"
// @Router /api/user/revisions [get]
func (h *RevisionHandler) UserRevisions(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.UserRevisions err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	ids, err := h.App.RevisionService.UserRevisionIDs(ctx, actor)
	if err != nil {
		h.logError(ctx, "RevisionHandler.UserRevisions", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(ids))
}

// Diff compares the business fields of two revisions
// @Summary Compare two revisions
// @Description 逐字段比较两个修订版本的业务字段，返回行内差异
// @Tags Revision
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.RevisionDiffRequest true "Diff Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.RevisionDiffDTO} "Success"
// @Router /api/transaction/revisions/diff [get]
func (h *RevisionHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RevisionDiffRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("RevisionHandler.Diff.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		h.App.Logger().Error("RevisionHandler.Diff err no actor")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	diff, err := h.App.RevisionService.Diff(ctx, actor, params)
	if err != nil {
		h.logError(ctx, "RevisionHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diff))
}
