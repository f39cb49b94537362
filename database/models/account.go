package models

import "gorm.io/gorm"

// Account 通过 Google 登录的账号
// RefreshToken 用于访问令牌过期后的静默续期
type Account struct {
	gorm.Model
	GoogleID     string `gorm:"uniqueIndex;size:64"`
	Name         string
	AvatarURL    string
	RefreshToken string
	LastLoginAt  int64
}
