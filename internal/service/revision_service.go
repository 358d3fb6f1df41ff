// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/app"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"
	"github.com/jollymugivara/transaction-revision-service/pkg/util"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// RevisionService defines the revision history business service interface
// RevisionService 定义修订历史业务服务接口
type RevisionService interface {
	// History returns the revision history of a record, most recent first
	// History 返回记录的修订历史，最新在前
	History(ctx context.Context, actor domain.Actor, transactionID int64, pager *app.Pager) (*dto.HistoryDTO, int64, error)

	// GetRevision returns a single revision snapshot with its display label
	// GetRevision 返回单个修订版本快照及其展示标题
	GetRevision(ctx context.Context, actor domain.Actor, params *dto.RevisionGetRequest) (*dto.RevisionDTO, error)

	// Revert creates a new current revision copied from a past one
	// Revert 以历史修订版本为蓝本创建新的当前修订版本
	Revert(ctx context.Context, actor domain.Actor, params *dto.RevisionRevertRequest) (*dto.TransactionDTO, error)

	// DeleteRevision removes one historical revision
	// DeleteRevision 删除一个历史修订版本
	DeleteRevision(ctx context.Context, actor domain.Actor, params *dto.RevisionDeleteRequest) (*dto.RevisionDeleteResultDTO, error)

	// Diff compares the business fields of two revisions
	// Diff 比较两个修订版本的业务字段
	Diff(ctx context.Context, actor domain.Actor, params *dto.RevisionDiffRequest) (*dto.RevisionDiffDTO, error)

	// UserRevisionIDs returns the IDs of all revisions the actor authored, ascending
	// UserRevisionIDs 返回请求者撰写的全部修订版本 ID，按升序
	UserRevisionIDs(ctx context.Context, actor domain.Actor) ([]int64, error)
}

// revisionService 实现 RevisionService 接口
type revisionService struct {
	repo     domain.TransactionRepository
	userRepo domain.UserRepository
	audit    *auditor
	logger   *zap.Logger
}

// NewRevisionService 创建 RevisionService 实例
func NewRevisionService(repo domain.TransactionRepository, userRepo domain.UserRepository, logger *zap.Logger) RevisionService {
	return &revisionService{
		repo:     repo,
		userRepo: userRepo,
		audit:    newAuditor(logger),
		logger:   logger,
	}
}

// revisionLabel 构建形如 "Revision of <name> from <date>" 的展示标题
func revisionLabel(rev *domain.TransactionRevision) string {
	return fmt.Sprintf("Revision of %s from %s", rev.Name, timex.Time(rev.RevisionCreatedAt).String())
}

// revertLogMessage 构建回滚产生的修订日志，引用被复制版本的时间戳
func revertLogMessage(source *domain.TransactionRevision) string {
	return fmt.Sprintf("Copy of the revision from %s.", timex.Time(source.RevisionCreatedAt).String())
}

// loadRecord fetches the record and checks the view permission shared by
// all read paths.
// loadRecord 获取记录并执行所有读路径共用的查看权限检查。
func (s *revisionService) loadRecord(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.Transaction, error) {
	record, err := s.repo.Get(ctx, transactionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if record == nil {
		return nil, code.ErrorTransactionNotFound
	}
	if !domain.Authorize(actor, domain.OperationView, record).Allowed() {
		s.audit.denied(domain.OperationView, actor, transactionID)
		return nil, code.ErrorPermissionDenied
	}
	return record, nil
}

// loadRevision fetches a revision and verifies it belongs to the record
// loadRevision 获取修订版本并校验其归属于该记录
func (s *revisionService) loadRevision(ctx context.Context, transactionID, revisionID int64) (*domain.TransactionRevision, error) {
	rev, err := s.repo.GetRevision(ctx, revisionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if rev == nil || rev.TransactionID != transactionID {
		return nil, code.ErrorRevisionNotFound
	}
	return rev, nil
}

// History 返回记录的修订历史，最新在前
func (s *revisionService) History(ctx context.Context, actor domain.Actor, transactionID int64, pager *app.Pager) (*dto.HistoryDTO, int64, error) {
	record, err := s.loadRecord(ctx, actor, transactionID)
	if err != nil {
		return nil, 0, err
	}

	page, pageSize := 1, 0
	if pager != nil {
		page, pageSize = pager.Page, pager.PageSize
	}

	revisions, total, err := s.repo.ListRevisions(ctx, transactionID, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	canRevert := domain.Authorize(actor, domain.OperationRevertRevision, record).Allowed()
	canDelete := domain.Authorize(actor, domain.OperationDeleteRevision, record).Allowed()

	// 作者名按 UID 缓存，避免每行一次查询
	usernames := make(map[int64]string)

	rows := make([]*dto.HistoryRowDTO, 0, len(revisions))
	for _, rev := range revisions {
		isCurrent := rev.RevisionID == record.CurrentRevisionID

		actions := []string{dto.HistoryActionView}
		// 当前修订版本既不能回滚也不能删除
		if !isCurrent {
			if canRevert {
				actions = append(actions, dto.HistoryActionRevert)
			}
			if canDelete && total > 1 {
				actions = append(actions, dto.HistoryActionDelete)
			}
		}

		username, ok := usernames[rev.AuthorUID]
		if !ok {
			if author, err := s.userRepo.GetByUID(ctx, rev.AuthorUID); err == nil && author != nil {
				username = author.Username
			}
			usernames[rev.AuthorUID] = username
		}

		rows = append(rows, &dto.HistoryRowDTO{
			RevisionID:        rev.RevisionID,
			AuthorUID:         rev.AuthorUID,
			AuthorUsername:    username,
			LogMessage:        util.SanitizeLogMessage(rev.LogMessage),
			RevisionCreatedAt: timex.Time(rev.RevisionCreatedAt),
			IsCurrent:         isCurrent,
			Actions:           actions,
		})
	}

	return &dto.HistoryDTO{
		TransactionID: transactionID,
		Name:          record.Name,
		Rows:          rows,
	}, total, nil
}

// GetRevision 返回单个修订版本快照及其展示标题
func (s *revisionService) GetRevision(ctx context.Context, actor domain.Actor, params *dto.RevisionGetRequest) (*dto.RevisionDTO, error) {
	if _, err := s.loadRecord(ctx, actor, params.TransactionID); err != nil {
		return nil, err
	}

	rev, err := s.loadRevision(ctx, params.TransactionID, params.RevisionID)
	if err != nil {
		return nil, err
	}

	result := dto.RevisionDTOFromDomain(rev)
	result.LogMessage = util.SanitizeLogMessage(rev.LogMessage)
	result.Label = revisionLabel(rev)
	return result, nil
}

// Revert 以历史修订版本为蓝本创建新的当前修订版本
// 原修订版本保持不变；回滚通过追加新版本完成。
func (s *revisionService) Revert(ctx context.Context, actor domain.Actor, params *dto.RevisionRevertRequest) (*dto.TransactionDTO, error) {
	record, err := s.loadRecord(ctx, actor, params.TransactionID)
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, domain.OperationRevertRevision, record).Allowed() {
		s.audit.denied(domain.OperationRevertRevision, actor, params.TransactionID)
		return nil, code.ErrorPermissionDenied
	}

	source, err := s.loadRevision(ctx, params.TransactionID, params.RevisionID)
	if err != nil {
		return nil, err
	}

	rev := &domain.TransactionRevision{
		TransactionID:     record.ID,
		AuthorUID:         actor.UID,
		LogMessage:        revertLogMessage(source),
		RevisionCreatedAt: time.Now(),
		Name:              source.Name,
		Sender:            source.Sender,
		Receiver:          source.Receiver,
		Amount:            source.Amount,
		Published:         source.Published,
	}

	saved, err := s.repo.SaveRevision(ctx, rev, true)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	saved.ApplyTo(record)
	s.audit.record(domain.OperationRevertRevision, actor, record.ID, saved.RevisionID,
		zap.Int64("sourceRevisionId", source.RevisionID))
	return dto.TransactionDTOFromDomain(record), nil
}

// DeleteRevision 删除一个历史修订版本
func (s *revisionService) DeleteRevision(ctx context.Context, actor domain.Actor, params *dto.RevisionDeleteRequest) (*dto.RevisionDeleteResultDTO, error) {
	record, err := s.loadRecord(ctx, actor, params.TransactionID)
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, domain.OperationDeleteRevision, record).Allowed() {
		s.audit.denied(domain.OperationDeleteRevision, actor, params.TransactionID)
		return nil, code.ErrorPermissionDenied
	}

	if _, err := s.loadRevision(ctx, params.TransactionID, params.RevisionID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteRevision(ctx, params.RevisionID); err != nil {
		switch err {
		case domain.ErrRevisionIsCurrent:
			return nil, code.ErrorRevisionIsCurrent
		case domain.ErrRevisionIsLast:
			return nil, code.ErrorRevisionIsLast
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	remaining, err := s.repo.CountRevisions(ctx, params.TransactionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 仍有其他历史版本时回到历史页，否则回到记录本身
	redirect := dto.RedirectCanonical
	if remaining > 1 {
		redirect = dto.RedirectHistory
	}

	s.audit.record(domain.OperationDeleteRevision, actor, params.TransactionID, params.RevisionID)
	return &dto.RevisionDeleteResultDTO{
		TransactionID: params.TransactionID,
		RevisionID:    params.RevisionID,
		Redirect:      redirect,
	}, nil
}

// Diff 比较两个修订版本的业务字段
func (s *revisionService) Diff(ctx context.Context, actor domain.Actor, params *dto.RevisionDiffRequest) (*dto.RevisionDiffDTO, error) {
	if _, err := s.loadRecord(ctx, actor, params.TransactionID); err != nil {
		return nil, err
	}

	from, err := s.loadRevision(ctx, params.TransactionID, params.FromRevisionID)
	if err != nil {
		return nil, err
	}
	to, err := s.loadRevision(ctx, params.TransactionID, params.ToRevisionID)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	fields := make([]*dto.FieldDiffDTO, 0, 4)
	for _, pair := range []struct {
		field    string
		from, to string
	}{
		{"name", from.Name, to.Name},
		{"sender", from.Sender, to.Sender},
		{"receiver", from.Receiver, to.Receiver},
		{"amount", from.Amount, to.Amount},
	} {
		if pair.from == pair.to {
			continue
		}
		diffs := dmp.DiffMain(pair.from, pair.to, false)
		fields = append(fields, &dto.FieldDiffDTO{
			Field:  pair.field,
			From:   pair.from,
			To:     pair.to,
			Pretty: dmp.DiffPrettyText(diffs),
		})
	}

	return &dto.RevisionDiffDTO{
		TransactionID:  params.TransactionID,
		FromRevisionID: params.FromRevisionID,
		ToRevisionID:   params.ToRevisionID,
		Fields:         fields,
	}, nil
}

// UserRevisionIDs 返回请求者撰写的全部修订版本 ID，按升序
func (s *revisionService) UserRevisionIDs(ctx context.Context, actor domain.Actor) ([]int64, error) {
	if !domain.Authorize(actor, domain.OperationView, nil).Allowed() {
		s.audit.denied(domain.OperationView, actor, 0)
		return nil, code.ErrorPermissionDenied
	}

	ids, err := s.repo.UserRevisionIDs(ctx, actor.UID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return ids, nil
}
