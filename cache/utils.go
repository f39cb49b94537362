package cache

import "time"

const (
	// DefaultQueueCacheExpiration 媒体队列默认过期时间
	// Photos API 返回的 baseUrl 在 60 分钟后失效，这里留 5 分钟余量
	DefaultQueueCacheExpiration = 55 * time.Minute

	// DefaultAlbumListCacheExpiration 相册列表默认过期时间
	DefaultAlbumListCacheExpiration = 10 * time.Minute

	// DefaultOAuthStateExpiration OAuth state 过期时间
	DefaultOAuthStateExpiration = 10 * time.Minute

	// NoExpiration 不过期（存储的查询参数、会话）
	NoExpiration time.Duration = 0
)
