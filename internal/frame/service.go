package frame

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anoixa/photo-frame/cache"
	"github.com/anoixa/photo-frame/internal/photoslib"
	"github.com/anoixa/photo-frame/utils"
	"golang.org/x/sync/singleflight"
)

// PhotosAPI 远端媒体库客户端接口
type PhotosAPI interface {
	Search(ctx context.Context, authToken string, params photoslib.SearchParams, threshold int) ([]photoslib.MediaItem, error)
	BatchGet(ctx context.Context, authToken string, ids []string) ([]photoslib.MediaItem, error)
	ListAlbums(ctx context.Context, authToken string) ([]photoslib.Album, error)
}

// Queue 用户当前加载到相框中的媒体队列
type Queue struct {
	Photos     []photoslib.MediaItem   `json:"photos"`
	Parameters *photoslib.SearchParams `json:"parameters,omitempty"`
}

// Service 相框编排服务
// 独占两级缓存（短 TTL 媒体队列 + 无 TTL 查询参数）的生命周期；
// photoslib 客户端只负责聚合，从不触碰缓存
type Service struct {
	photos       PhotosAPI
	cache        cache.Provider
	photosToLoad int
	queueTTL     time.Duration
	albumTTL     time.Duration

	albumFlight singleflight.Group
}

// Config 编排服务配置
type Config struct {
	PhotosToLoad int
	QueueTTL     time.Duration
	AlbumTTL     time.Duration
}

// NewService 创建相框编排服务
func NewService(photos PhotosAPI, provider cache.Provider, cfg Config) *Service {
	if cfg.PhotosToLoad <= 0 {
		cfg.PhotosToLoad = 150
	}
	if cfg.QueueTTL <= 0 {
		cfg.QueueTTL = cache.DefaultQueueCacheExpiration
	}
	if cfg.AlbumTTL <= 0 {
		cfg.AlbumTTL = cache.DefaultAlbumListCacheExpiration
	}
	return &Service{
		photos:       photos,
		cache:        provider,
		photosToLoad: cfg.PhotosToLoad,
		queueTTL:     cfg.QueueTTL,
		albumTTL:     cfg.AlbumTTL,
	}
}

// LoadFromSearch 用新的过滤条件加载队列
// 成功时同时写入媒体队列缓存与查询参数存储；失败时不做任何缓存变更
func (s *Service) LoadFromSearch(ctx context.Context, userID, authToken string, filters *photoslib.Filters) (*Queue, error) {
	params := photoslib.SearchParams{Filters: filters}
	return s.loadQueue(ctx, userID, authToken, params)
}

// LoadFromAlbum 加载指定相册的全部内容作为队列
func (s *Service) LoadFromAlbum(ctx context.Context, userID, authToken, albumID string) (*Queue, error) {
	params := photoslib.SearchParams{AlbumID: albumID}
	return s.loadQueue(ctx, userID, authToken, params)
}

// loadQueue 提交新查询的公共路径
func (s *Service) loadQueue(ctx context.Context, userID, authToken string, params photoslib.SearchParams) (*Queue, error) {
	photos, err := s.photos.Search(ctx, authToken, params, s.photosToLoad)
	if err != nil {
		return nil, err
	}

	// 持久化之前清除翻页令牌与页大小，回放时重新从第一页开始
	stored := params.Stripped()

	if err := s.cache.Set(ctx, cache.MediaQueue.BuildID(userID), photos, s.queueTTL); err != nil {
		return nil, fmt.Errorf("failed to cache media queue: %w", err)
	}
	if err := s.cache.Set(ctx, cache.StoredQuery.BuildID(userID), stored, cache.NoExpiration); err != nil {
		return nil, fmt.Errorf("failed to store query parameters: %w", err)
	}

	return &Queue{Photos: photos, Parameters: &stored}, nil
}

// GetQueue 获取用户当前加载的队列
// 命中媒体队列缓存时直接返回；未命中但存有查询参数时重放该查询
// （刻意重新提交而非返回快照，保证新匹配的远端数据也能出现）；
// 两者皆无返回空队列，这是合法的初始状态而非错误
func (s *Service) GetQueue(ctx context.Context, userID, authToken string) (*Queue, error) {
	var cached []photoslib.MediaItem
	if err := s.cache.Get(ctx, cache.MediaQueue.BuildID(userID), &cached); err == nil {
		queue := &Queue{Photos: cached}
		var stored photoslib.SearchParams
		if err := s.cache.Get(ctx, cache.StoredQuery.BuildID(userID), &stored); err == nil {
			queue.Parameters = &stored
		}
		return queue, nil
	}

	var stored photoslib.SearchParams
	if err := s.cache.Get(ctx, cache.StoredQuery.BuildID(userID), &stored); err != nil {
		// 新用户，尚未加载过任何内容
		return &Queue{}, nil
	}

	log.Printf("[frame] Resubmitting stored query for user %s", utils.SanitizeLogUserID(userID))

	photos, err := s.photos.Search(ctx, authToken, stored, s.photosToLoad)
	if err != nil {
		// 查询参数来自上一次成功的加载，保持不动
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.MediaQueue.BuildID(userID), photos, s.queueTTL); err != nil {
		return nil, fmt.Errorf("failed to cache media queue: %w", err)
	}

	return &Queue{Photos: photos, Parameters: &stored}, nil
}

// GetSelected 获取队列中指定 ID 的媒体项
// 命中缓存时在内存中过滤，完全不访问远端；未命中时按 ID 批量拉取，
// 且不写入任何缓存层（避免局部查询污染完整队列）
func (s *Service) GetSelected(ctx context.Context, userID, authToken string, ids []string) ([]photoslib.MediaItem, error) {
	var cached []photoslib.MediaItem
	if err := s.cache.Get(ctx, cache.MediaQueue.BuildID(userID), &cached); err == nil {
		selected := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			selected[id] = struct{}{}
		}
		filtered := make([]photoslib.MediaItem, 0, len(ids))
		for _, photo := range cached {
			if _, ok := selected[photo.ID]; ok {
				filtered = append(filtered, photo)
			}
		}
		return filtered, nil
	}

	return s.photos.BatchGet(ctx, authToken, ids)
}

// GetAlbums 获取用户相册列表
// 结果缓存 10 分钟；拉取失败时清除可能存在的过期缓存。
// singleflight 合并同一用户并发的未命中加载
func (s *Service) GetAlbums(ctx context.Context, userID, authToken string) ([]photoslib.Album, error) {
	var cached []photoslib.Album
	if err := s.cache.Get(ctx, cache.AlbumList.BuildID(userID), &cached); err == nil {
		return cached, nil
	}

	result, err, _ := s.albumFlight.Do(userID, func() (interface{}, error) {
		albums, err := s.photos.ListAlbums(ctx, authToken)
		if err != nil {
			if delErr := s.cache.Delete(ctx, cache.AlbumList.BuildID(userID)); delErr != nil {
				log.Printf("[frame] Failed to clear album cache: %v", delErr)
			}
			return nil, err
		}

		if err := s.cache.Set(ctx, cache.AlbumList.BuildID(userID), albums, s.albumTTL); err != nil {
			return nil, fmt.Errorf("failed to cache album list: %w", err)
		}
		return albums, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]photoslib.Album), nil
}
