package cache

import (
	"fmt"
	"strings"
)

// KeyBuilder 缓存键构建器
type KeyBuilder struct {
	prefix string
	sep    string
}

// NewKeyBuilder 创建新的键构建器
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
		sep:    ":",
	}
}

// WithSeparator 设置分隔符
func (kb *KeyBuilder) WithSeparator(sep string) *KeyBuilder {
	kb.sep = sep
	return kb
}

// Build 构建缓存键
func (kb *KeyBuilder) Build(parts ...string) string {
	if len(parts) == 0 {
		return kb.prefix
	}
	return kb.prefix + kb.sep + strings.Join(parts, kb.sep)
}

// BuildID 构建带 ID 的缓存键
func (kb *KeyBuilder) BuildID(id interface{}) string {
	return fmt.Sprintf("%s%s%v", kb.prefix, kb.sep, id)
}

// 预定义的 KeyBuilder 实例
var (
	// MediaQueue 用户已加载的媒体队列（短 TTL，baseUrl 有效期内）
	MediaQueue = NewKeyBuilder("media_queue")

	// StoredQuery 用户最近一次成功的查询参数（无 TTL，用于回放）
	StoredQuery = NewKeyBuilder("stored_query")

	// AlbumList 用户相册列表缓存
	AlbumList = NewKeyBuilder("album_list")

	// Session 登录会话（Google 访问令牌等）
	Session = NewKeyBuilder("session")

	// OAuthState OAuth 回调 state 校验
	OAuthState = NewKeyBuilder("oauth_state")
)
