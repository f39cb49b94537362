package frame

import (
	"context"
	"testing"
	"time"

	"github.com/anoixa/photo-frame/cache"
	"github.com/anoixa/photo-frame/cache/memory"
	"github.com/anoixa/photo-frame/internal/photoslib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPhotosAPI 远端客户端打桩，记录调用并返回预置结果
type stubPhotosAPI struct {
	searchCalls  int
	searchParams photoslib.SearchParams
	searchResult []photoslib.MediaItem
	searchErr    error

	batchCalls  int
	batchIDs    []string
	batchResult []photoslib.MediaItem
	batchErr    error

	listCalls  int
	listResult []photoslib.Album
	listErr    error
}

func (s *stubPhotosAPI) Search(ctx context.Context, authToken string, params photoslib.SearchParams, threshold int) ([]photoslib.MediaItem, error) {
	s.searchCalls++
	s.searchParams = params
	return s.searchResult, s.searchErr
}

func (s *stubPhotosAPI) BatchGet(ctx context.Context, authToken string, ids []string) ([]photoslib.MediaItem, error) {
	s.batchCalls++
	s.batchIDs = ids
	return s.batchResult, s.batchErr
}

func (s *stubPhotosAPI) ListAlbums(ctx context.Context, authToken string) ([]photoslib.Album, error) {
	s.listCalls++
	return s.listResult, s.listErr
}

func newTestProvider(t *testing.T) cache.Provider {
	t.Helper()
	provider, err := memory.NewMemory(memory.Config{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

func newTestService(t *testing.T, stub *stubPhotosAPI) (*Service, cache.Provider) {
	provider := newTestProvider(t)
	svc := NewService(stub, provider, Config{
		PhotosToLoad: 150,
		QueueTTL:     55 * time.Minute,
		AlbumTTL:     10 * time.Minute,
	})
	return svc, provider
}

func photoItems(ids ...string) []photoslib.MediaItem {
	items := make([]photoslib.MediaItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, photoslib.MediaItem{ID: id, MimeType: "image/jpeg"})
	}
	return items
}

func TestLoadFromSearch_PopulatesBothTiers(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("a", "b", "c")}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	filters := &photoslib.Filters{
		MediaTypeFilter: &photoslib.MediaTypeFilter{MediaTypes: []string{"PHOTO"}},
	}
	queue, err := svc.LoadFromSearch(ctx, "user-1", "token", filters)

	require.NoError(t, err)
	assert.Equal(t, 1, stub.searchCalls)
	require.Len(t, queue.Photos, 3)
	require.NotNil(t, queue.Parameters)
	assert.NotNil(t, queue.Parameters.Filters)

	// 媒体队列与查询参数都已写入各自的缓存命名空间
	var cachedPhotos []photoslib.MediaItem
	require.NoError(t, provider.Get(ctx, cache.MediaQueue.BuildID("user-1"), &cachedPhotos))
	assert.Len(t, cachedPhotos, 3)

	var stored photoslib.SearchParams
	require.NoError(t, provider.Get(ctx, cache.StoredQuery.BuildID("user-1"), &stored))
	assert.NotNil(t, stored.Filters)
	// 持久化的查询不得包含分页瞬态字段
	assert.Empty(t, stored.PageToken)
	assert.Zero(t, stored.PageSize)
}

func TestLoadFromAlbum_StoresAlbumQuery(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("a")}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	_, err := svc.LoadFromAlbum(ctx, "user-1", "token", "album-42")

	require.NoError(t, err)
	assert.Equal(t, "album-42", stub.searchParams.AlbumID)

	var stored photoslib.SearchParams
	require.NoError(t, provider.Get(ctx, cache.StoredQuery.BuildID("user-1"), &stored))
	assert.Equal(t, "album-42", stored.AlbumID)
	assert.Nil(t, stored.Filters)
}

// 加载失败时两级缓存都保持原样
func TestLoadFromSearch_ErrorLeavesCacheUntouched(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("old-1", "old-2")}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	_, err := svc.LoadFromAlbum(ctx, "user-1", "token", "album-1")
	require.NoError(t, err)

	stub.searchErr = &photoslib.APIError{Name: "PERMISSION_DENIED", Code: 403, Message: "denied"}
	_, err = svc.LoadFromAlbum(ctx, "user-1", "token", "album-2")
	require.Error(t, err)

	var cachedPhotos []photoslib.MediaItem
	require.NoError(t, provider.Get(ctx, cache.MediaQueue.BuildID("user-1"), &cachedPhotos))
	require.Len(t, cachedPhotos, 2)
	assert.Equal(t, "old-1", cachedPhotos[0].ID)

	var stored photoslib.SearchParams
	require.NoError(t, provider.Get(ctx, cache.StoredQuery.BuildID("user-1"), &stored))
	assert.Equal(t, "album-1", stored.AlbumID)
}

// 新用户两级缓存皆空：返回空队列，不访问远端
func TestGetQueue_EmptyStateIsNotAnError(t *testing.T) {
	stub := &stubPhotosAPI{}
	svc, _ := newTestService(t, stub)

	queue, err := svc.GetQueue(context.Background(), "new-user", "token")

	require.NoError(t, err)
	require.NotNil(t, queue)
	assert.Empty(t, queue.Photos)
	assert.Nil(t, queue.Parameters)
	assert.Zero(t, stub.searchCalls)
}

func TestGetQueue_CacheHitSkipsRemote(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("a", "b")}
	svc, _ := newTestService(t, stub)
	ctx := context.Background()

	_, err := svc.LoadFromAlbum(ctx, "user-1", "token", "album-1")
	require.NoError(t, err)
	require.Equal(t, 1, stub.searchCalls)

	queue, err := svc.GetQueue(ctx, "user-1", "token")

	require.NoError(t, err)
	assert.Equal(t, 1, stub.searchCalls)
	assert.Len(t, queue.Photos, 2)
	require.NotNil(t, queue.Parameters)
	assert.Equal(t, "album-1", queue.Parameters.AlbumID)
}

// 队列缓存失效但查询参数仍在：重放查询并只回填队列缓存
func TestGetQueue_ReplaysStoredQuery(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("fresh-1", "fresh-2")}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	stored := photoslib.SearchParams{AlbumID: "album-1"}
	require.NoError(t, provider.Set(ctx, cache.StoredQuery.BuildID("user-1"), stored, cache.NoExpiration))

	queue, err := svc.GetQueue(ctx, "user-1", "token")

	require.NoError(t, err)
	assert.Equal(t, 1, stub.searchCalls)
	// 重放从第一页开始
	assert.Empty(t, stub.searchParams.PageToken)
	assert.Equal(t, "album-1", stub.searchParams.AlbumID)
	require.Len(t, queue.Photos, 2)
	assert.Equal(t, "fresh-1", queue.Photos[0].ID)

	var cachedPhotos []photoslib.MediaItem
	require.NoError(t, provider.Get(ctx, cache.MediaQueue.BuildID("user-1"), &cachedPhotos))
	assert.Len(t, cachedPhotos, 2)
}

// 重放失败：错误上抛，查询参数保持不动
func TestGetQueue_ReplayFailureKeepsStoredQuery(t *testing.T) {
	stub := &stubPhotosAPI{searchErr: &photoslib.APIError{Name: "UNAUTHENTICATED", Code: 401, Message: "expired"}}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	stored := photoslib.SearchParams{AlbumID: "album-1"}
	require.NoError(t, provider.Set(ctx, cache.StoredQuery.BuildID("user-1"), stored, cache.NoExpiration))

	_, err := svc.GetQueue(ctx, "user-1", "token")

	var apiErr *photoslib.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Code)

	var keep photoslib.SearchParams
	require.NoError(t, provider.Get(ctx, cache.StoredQuery.BuildID("user-1"), &keep))
	assert.Equal(t, "album-1", keep.AlbumID)

	var cachedPhotos []photoslib.MediaItem
	assert.Error(t, provider.Get(ctx, cache.MediaQueue.BuildID("user-1"), &cachedPhotos))
}

// 命中缓存按缓存序过滤，不访问远端
func TestGetSelected_FiltersFromCache(t *testing.T) {
	stub := &stubPhotosAPI{searchResult: photoItems("a", "b", "c", "d")}
	svc, _ := newTestService(t, stub)
	ctx := context.Background()

	_, err := svc.LoadFromAlbum(ctx, "user-1", "token", "album-1")
	require.NoError(t, err)

	selected, err := svc.GetSelected(ctx, "user-1", "token", []string{"d", "b", "missing"})

	require.NoError(t, err)
	assert.Zero(t, stub.batchCalls)
	// 结果保持队列顺序而非请求顺序
	require.Len(t, selected, 2)
	assert.Equal(t, "b", selected[0].ID)
	assert.Equal(t, "d", selected[1].ID)
}

// 未命中时按 ID 批量拉取，且不污染任何缓存层
func TestGetSelected_FallbackDoesNotCache(t *testing.T) {
	stub := &stubPhotosAPI{batchResult: photoItems("a", "b")}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	selected, err := svc.GetSelected(ctx, "user-1", "token", []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, 1, stub.batchCalls)
	assert.Equal(t, []string{"a", "b"}, stub.batchIDs)
	assert.Len(t, selected, 2)

	exists, err := provider.Exists(ctx, cache.MediaQueue.BuildID("user-1"))
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = provider.Exists(ctx, cache.StoredQuery.BuildID("user-1"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetAlbums_CachesResult(t *testing.T) {
	stub := &stubPhotosAPI{listResult: []photoslib.Album{{ID: "album-1", Title: "Holiday"}}}
	svc, _ := newTestService(t, stub)
	ctx := context.Background()

	albums, err := svc.GetAlbums(ctx, "user-1", "token")
	require.NoError(t, err)
	require.Len(t, albums, 1)

	albums, err = svc.GetAlbums(ctx, "user-1", "token")
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Holiday", albums[0].Title)
	// 第二次命中缓存
	assert.Equal(t, 1, stub.listCalls)
}

func TestGetAlbums_ErrorPropagatesWithoutCaching(t *testing.T) {
	stub := &stubPhotosAPI{listErr: &photoslib.APIError{Name: "INTERNAL", Code: 500, Message: "backend error"}}
	svc, provider := newTestService(t, stub)
	ctx := context.Background()

	_, err := svc.GetAlbums(ctx, "user-1", "token")

	require.Error(t, err)
	exists, existsErr := provider.Exists(ctx, cache.AlbumList.BuildID("user-1"))
	require.NoError(t, existsErr)
	assert.False(t, exists)
}
