package auth

import (
	"context"
	"time"

	"github.com/anoixa/photo-frame/cache"
)

// Session 登录会话
// Google 访问令牌只保存在服务端，不下发给前端
type Session struct {
	GoogleID     string    `json:"google_id"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
}

// SessionStore 基于缓存提供者的会话存储，按用户分区、不过期
type SessionStore struct {
	cache cache.Provider
}

// NewSessionStore 创建会话存储
func NewSessionStore(provider cache.Provider) *SessionStore {
	return &SessionStore{cache: provider}
}

// Save 保存会话，覆盖同一用户的旧会话
func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	return s.cache.Set(ctx, cache.Session.BuildID(session.GoogleID), session, cache.NoExpiration)
}

// Load 加载会话，未登录时返回 cache.ErrCacheMiss 语义的错误
func (s *SessionStore) Load(ctx context.Context, googleID string) (*Session, error) {
	var session Session
	if err := s.cache.Get(ctx, cache.Session.BuildID(googleID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete 删除会话（登出）
func (s *SessionStore) Delete(ctx context.Context, googleID string) error {
	return s.cache.Delete(ctx, cache.Session.BuildID(googleID))
}
