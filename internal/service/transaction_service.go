// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/dto"
	"github.com/jollymugivara/transaction-revision-service/pkg/app"
	"github.com/jollymugivara/transaction-revision-service/pkg/code"
	"github.com/jollymugivara/transaction-revision-service/pkg/util"

	"go.uber.org/zap"
)

// TransactionService defines the transaction record business service interface
// TransactionService 定义交易记录业务服务接口
type TransactionService interface {
	// Create creates a record with its first revision
	// Create 创建记录及其首个修订版本
	Create(ctx context.Context, actor domain.Actor, params *dto.TransactionCreateRequest) (*dto.TransactionDTO, error)

	// Get retrieves a record in its current revision view
	// Get 获取记录的当前修订版本视图
	Get(ctx context.Context, actor domain.Actor, id int64) (*dto.TransactionDTO, error)

	// Update appends a new revision and makes it current
	// Update 追加新修订版本并使其成为当前版本
	Update(ctx context.Context, actor domain.Actor, params *dto.TransactionUpdateRequest) (*dto.TransactionDTO, error)

	// Delete removes a record together with all of its revisions
	// Delete 删除记录及其全部修订版本
	Delete(ctx context.Context, actor domain.Actor, id int64) error

	// List returns records in their current revision view
	// List 分页返回记录列表（当前修订版本视图）
	List(ctx context.Context, actor domain.Actor, pager *app.Pager) ([]*dto.TransactionDTO, int64, error)
}

// transactionService 实现 TransactionService 接口
type transactionService struct {
	repo   domain.TransactionRepository
	audit  *auditor
	logger *zap.Logger
	config *ServiceConfig
}

// NewTransactionService 创建 TransactionService 实例
func NewTransactionService(repo domain.TransactionRepository, logger *zap.Logger, config *ServiceConfig) TransactionService {
	if config == nil {
		config = &ServiceConfig{}
	}
	return &transactionService{
		repo:   repo,
		audit:  newAuditor(logger),
		logger: logger,
		config: config,
	}
}

// validateFields checks the business field constraints shared by create
// and update. Lengths are counted in runes.
// validateFields 校验创建和更新共用的业务字段约束。长度按字符计。
func (s *transactionService) validateFields(name, sender, receiver, amount string) error {
	if name == "" || utf8.RuneCountInString(name) > domain.MaxNameLength {
		return code.ErrorValidationFailed.WithDetails("name must be 1-50 characters")
	}
	if sender == "" || utf8.RuneCountInString(sender) > domain.MaxSenderLength {
		return code.ErrorValidationFailed.WithDetails("sender must be 1-50 characters")
	}
	if receiver == "" || utf8.RuneCountInString(receiver) > domain.MaxReceiverLen {
		return code.ErrorValidationFailed.WithDetails("receiver must be 1-50 characters")
	}
	if amount == "" || utf8.RuneCountInString(amount) > domain.MaxAmountLength {
		return code.ErrorValidationFailed.WithDetails("amount must be 1-20 characters")
	}
	if s.config.App.StrictAmountCheck && !util.IsNumericAmount(amount) {
		return code.ErrorAmountNotNumeric
	}
	return nil
}

// Create 创建记录及其首个修订版本
func (s *transactionService) Create(ctx context.Context, actor domain.Actor, params *dto.TransactionCreateRequest) (*dto.TransactionDTO, error) {
	if !domain.Authorize(actor, domain.OperationCreate, nil).Allowed() {
		s.audit.denied(domain.OperationCreate, actor, 0)
		return nil, code.ErrorPermissionDenied
	}

	if err := s.validateFields(params.Name, params.Sender, params.Receiver, params.Amount); err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, &domain.Transaction{
		OwnerUID:  actor.UID,
		Name:      params.Name,
		Sender:    params.Sender,
		Receiver:  params.Receiver,
		Amount:    params.Amount,
		Published: true,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.audit.record(domain.OperationCreate, actor, record.ID, record.CurrentRevisionID)
	return dto.TransactionDTOFromDomain(record), nil
}

// Get 获取记录的当前修订版本视图
func (s *transactionService) Get(ctx context.Context, actor domain.Actor, id int64) (*dto.TransactionDTO, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if record == nil {
		return nil, code.ErrorTransactionNotFound
	}

	if !domain.Authorize(actor, domain.OperationView, record).Allowed() {
		s.audit.denied(domain.OperationView, actor, id)
		return nil, code.ErrorPermissionDenied
	}

	return dto.TransactionDTOFromDomain(record), nil
}

// Update 追加新修订版本并使其成为当前版本
func (s *transactionService) Update(ctx context.Context, actor domain.Actor, params *dto.TransactionUpdateRequest) (*dto.TransactionDTO, error) {
	record, err := s.repo.Get(ctx, params.ID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if record == nil {
		return nil, code.ErrorTransactionNotFound
	}

	if !domain.Authorize(actor, domain.OperationUpdate, record).Allowed() {
		s.audit.denied(domain.OperationUpdate, actor, params.ID)
		return nil, code.ErrorPermissionDenied
	}

	if err := s.validateFields(params.Name, params.Sender, params.Receiver, params.Amount); err != nil {
		return nil, err
	}

	rev := &domain.TransactionRevision{
		TransactionID:     record.ID,
		AuthorUID:         actor.UID,
		LogMessage:        params.LogMessage,
		RevisionCreatedAt: time.Now(),
		Name:              params.Name,
		Sender:            params.Sender,
		Receiver:          params.Receiver,
		Amount:            params.Amount,
		Published:         record.Published,
	}

	saved, err := s.repo.SaveRevision(ctx, rev, true)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	saved.ApplyTo(record)
	s.audit.record(domain.OperationUpdate, actor, record.ID, saved.RevisionID)
	return dto.TransactionDTOFromDomain(record), nil
}

// Delete 删除记录及其全部修订版本
func (s *transactionService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if record == nil {
		return code.ErrorTransactionNotFound
	}

	if !domain.Authorize(actor, domain.OperationDelete, record).Allowed() {
		s.audit.denied(domain.OperationDelete, actor, id)
		return code.ErrorPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.audit.record(domain.OperationDelete, actor, id, 0)
	return nil
}

// List 分页返回记录列表（当前修订版本视图）
func (s *transactionService) List(ctx context.Context, actor domain.Actor, pager *app.Pager) ([]*dto.TransactionDTO, int64, error) {
	page, pageSize := 1, 0
	if pager != nil {
		page, pageSize = pager.Page, pager.PageSize
	}

	records, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.TransactionDTO, 0, len(records))
	for _, record := range records {
		// 列表只包含请求者可查看的记录
		if !domain.Authorize(actor, domain.OperationView, record).Allowed() {
			continue
		}
		list = append(list, dto.TransactionDTOFromDomain(record))
	}
	return list, total, nil
}
