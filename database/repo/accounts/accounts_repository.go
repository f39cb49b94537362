package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anoixa/photo-frame/database/models"
	"gorm.io/gorm"
)

// Repository 账户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的账户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB 返回底层数据库连接
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// FindByGoogleID 按 Google 标识查找账号
func (r *Repository) FindByGoogleID(ctx context.Context, googleID string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

// Upsert 登录时创建或更新账号资料
// refreshToken 为空时保留已有值（Google 只在首次授权时下发）
func (r *Repository) Upsert(ctx context.Context, googleID, name, avatarURL, refreshToken string) (*models.Account, error) {
	account, err := r.FindByGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()

	if account == nil {
		account = &models.Account{
			GoogleID:     googleID,
			Name:         name,
			AvatarURL:    avatarURL,
			RefreshToken: refreshToken,
			LastLoginAt:  now,
		}
		if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		return account, nil
	}

	account.Name = name
	account.AvatarURL = avatarURL
	account.LastLoginAt = now
	if refreshToken != "" {
		account.RefreshToken = refreshToken
	}

	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}
