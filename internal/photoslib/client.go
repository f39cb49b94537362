package photoslib

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config Photos Library API 客户端配置
type Config struct {
	Endpoint       string
	Timeout        time.Duration
	SearchPageSize int
	AlbumPageSize  int
}

// Client Photos Library API 客户端
// 负责分页聚合：循环拉取直到数量阈值或翻页令牌耗尽
type Client struct {
	http           *resty.Client
	searchPageSize int
	albumPageSize  int
}

// NewClient 创建新的 Photos Library API 客户端
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://photoslibrary.googleapis.com"
	}
	if cfg.SearchPageSize <= 0 {
		cfg.SearchPageSize = 100
	}
	if cfg.AlbumPageSize <= 0 {
		cfg.AlbumPageSize = 50
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:           httpClient,
		searchPageSize: cfg.SearchPageSize,
		albumPageSize:  cfg.AlbumPageSize,
	}
}

type searchResponse struct {
	MediaItems    []*MediaItem `json:"mediaItems"`
	NextPageToken string       `json:"nextPageToken"`
}

type batchGetResponse struct {
	MediaItemResults []*MediaItem `json:"mediaItemResults"`
	NextPageToken    string       `json:"nextPageToken"`
}

type listAlbumsResponse struct {
	Albums        []*Album `json:"albums"`
	NextPageToken string   `json:"nextPageToken"`
}

type errorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Search 向搜索端点聚合拉取媒体项
// threshold 为继续翻页的最小数量，达到阈值或令牌耗尽时停止；
// threshold <= 0 时纯令牌驱动。出错立即中止，已聚合的条目仅供参考，
// 调用方不得缓存。
func (c *Client) Search(ctx context.Context, authToken string, params SearchParams, threshold int) ([]MediaItem, error) {
	params.PageSize = c.searchPageSize
	var photos []MediaItem

	for {
		var page searchResponse
		var remoteErr errorBody
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(authToken).
			SetBody(&params).
			SetResult(&page).
			SetError(&remoteErr).
			Post("/v1/mediaItems:search")
		if err != nil {
			return photos, normalizeTransportError(err)
		}
		if resp.IsError() {
			return photos, normalizeRemoteError(resp, &remoteErr)
		}

		items := filterImages(page.MediaItems)
		photos = append(photos, items...)

		// 服务端翻页令牌写回请求参数，供下一页使用
		params.PageToken = page.NextPageToken

		log.Printf("[photoslib] Found %d images in this page, total %d", len(items), len(photos))

		if params.PageToken == "" {
			break
		}
		if threshold > 0 && len(photos) >= threshold {
			break
		}
	}

	log.Println("[photoslib] Search complete")
	return photos, nil
}

// BatchGet 按 ID 列表聚合拉取媒体项，纯令牌驱动
func (c *Client) BatchGet(ctx context.Context, authToken string, ids []string) ([]MediaItem, error) {
	params := SearchParams{MediaItemIDs: ids}
	var photos []MediaItem

	for {
		var page batchGetResponse
		var remoteErr errorBody
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(authToken).
			SetBody(&params).
			SetResult(&page).
			SetError(&remoteErr).
			Post("/v1/mediaItems:batchGet")
		if err != nil {
			return photos, normalizeTransportError(err)
		}
		if resp.IsError() {
			return photos, normalizeRemoteError(resp, &remoteErr)
		}

		photos = append(photos, filterImages(page.MediaItemResults)...)

		params.PageToken = page.NextPageToken
		if params.PageToken == "" {
			break
		}
	}

	return photos, nil
}

// ListAlbums 列出用户全部相册，直到令牌耗尽
// 相册没有 mimeType，不做图片过滤，仅丢弃空项
func (c *Client) ListAlbums(ctx context.Context, authToken string) ([]Album, error) {
	var albums []Album
	pageToken := ""

	for {
		var page listAlbumsResponse
		var remoteErr errorBody
		req := c.http.R().
			SetContext(ctx).
			SetAuthToken(authToken).
			SetQueryParam("pageSize", strconv.Itoa(c.albumPageSize)).
			SetResult(&page).
			SetError(&remoteErr)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		resp, err := req.Get("/v1/albums")
		if err != nil {
			return albums, normalizeTransportError(err)
		}
		if resp.IsError() {
			return albums, normalizeRemoteError(resp, &remoteErr)
		}

		for _, album := range page.Albums {
			if album == nil {
				continue
			}
			albums = append(albums, *album)
		}

		log.Printf("[photoslib] Loading albums, received so far: %d", len(albums))

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return albums, nil
}

// filterImages 去除空项与非图片项
// 远端返回的列表可能稀疏；mimeType 存在且不是 image/ 前缀的条目
// （视频等）一律剔除
func filterImages(items []*MediaItem) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, item := range items {
		if item == nil || item.ID == "" {
			continue
		}
		if item.MimeType != "" && !strings.HasPrefix(item.MimeType, "image/") {
			continue
		}
		out = append(out, *item)
	}
	return out
}

// normalizeRemoteError 将远端结构化错误统一为 APIError
func normalizeRemoteError(resp *resty.Response, body *errorBody) *APIError {
	if body != nil && body.Error != nil && body.Error.Message != "" {
		return &APIError{
			Name:    body.Error.Status,
			Code:    body.Error.Code,
			Message: body.Error.Message,
		}
	}
	return &APIError{
		Name:    http.StatusText(resp.StatusCode()),
		Code:    resp.StatusCode(),
		Message: strings.TrimSpace(string(resp.Body())),
	}
}

// normalizeTransportError 将传输层错误统一为 APIError
func normalizeTransportError(err error) *APIError {
	return &APIError{
		Name:    "TransportError",
		Message: err.Error(),
	}
}
