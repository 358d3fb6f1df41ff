package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jollymugivara/transaction-revision-service/internal/domain"
	"github.com/jollymugivara/transaction-revision-service/internal/model"
	"github.com/jollymugivara/transaction-revision-service/pkg/timex"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) (*domain.User, error) {
	if m == nil {
		return nil, nil
	}
	u := new(domain.User)
	if err := copier.Copy(u, m); err != nil {
		return nil, err
	}
	u.Role = domain.Role(m.Role)
	u.CreatedAt = m.CreatedAt.Time()
	u.UpdatedAt = m.UpdatedAt.Time()
	return u, nil
}

func (r *userRepository) toModel(u *domain.User) (*model.User, error) {
	m := new(model.User)
	if err := copier.Copy(m, u); err != nil {
		return nil, err
	}
	m.Role = string(u.Role)
	m.CreatedAt = timex.Time(u.CreatedAt)
	m.UpdatedAt = timex.Time(u.UpdatedAt)
	return m, nil
}

func (r *userRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m model.User
	if err := r.dao.Db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m)
}

// GetByUID 根据 UID 获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	return r.getBy(ctx, "uid = ?", uid)
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m, err := r.toModel(user)
	if err != nil {
		return nil, err
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// Update 更新用户
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m, err := r.toModel(user)
	if err != nil {
		return err
	}
	return r.dao.Db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", m.UID).
		Updates(map[string]interface{}{
			"email":      m.Email,
			"username":   m.Username,
			"password":   m.Password,
			"role":       m.Role,
			"updated_at": m.UpdatedAt,
		}).Error
}
