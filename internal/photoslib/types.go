package photoslib

import "fmt"

// MediaItem Photos Library API 媒体项
// baseUrl 在 60 分钟后失效，调用方不应长期保存
type MediaItem struct {
	ID            string         `json:"id"`
	Description   string         `json:"description,omitempty"`
	ProductURL    string         `json:"productUrl,omitempty"`
	BaseURL       string         `json:"baseUrl,omitempty"`
	MimeType      string         `json:"mimeType,omitempty"`
	Filename      string         `json:"filename,omitempty"`
	MediaMetadata *MediaMetadata `json:"mediaMetadata,omitempty"`
}

// MediaMetadata 媒体项元数据
type MediaMetadata struct {
	CreationTime string `json:"creationTime,omitempty"`
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
}

// Album 相册
type Album struct {
	ID                    string `json:"id"`
	Title                 string `json:"title,omitempty"`
	ProductURL            string `json:"productUrl,omitempty"`
	CoverPhotoBaseURL     string `json:"coverPhotoBaseUrl,omitempty"`
	CoverPhotoMediaItemID string `json:"coverPhotoMediaItemId,omitempty"`
	MediaItemsCount       string `json:"mediaItemsCount,omitempty"`
}

// SearchParams 一次远端请求的规范化描述
// Filters、AlbumID、MediaItemIDs 三者互斥；PageToken 与 PageSize
// 为分页瞬态字段，持久化之前必须通过 Stripped 清除
type SearchParams struct {
	Filters      *Filters `json:"filters,omitempty"`
	AlbumID      string   `json:"albumId,omitempty"`
	MediaItemIDs []string `json:"mediaItemIds,omitempty"`
	PageSize     int      `json:"pageSize,omitempty"`
	PageToken    string   `json:"pageToken,omitempty"`
}

// Stripped 返回清除分页瞬态字段后的副本，用于持久化与回放
func (p SearchParams) Stripped() SearchParams {
	p.PageToken = ""
	p.PageSize = 0
	return p
}

// Filters 搜索过滤条件
type Filters struct {
	ContentFilter   *ContentFilter   `json:"contentFilter,omitempty"`
	MediaTypeFilter *MediaTypeFilter `json:"mediaTypeFilter,omitempty"`
	DateFilter      *DateFilter      `json:"dateFilter,omitempty"`
}

// ContentFilter 内容类别过滤
type ContentFilter struct {
	IncludedContentCategories []string `json:"includedContentCategories,omitempty"`
	ExcludedContentCategories []string `json:"excludedContentCategories,omitempty"`
}

// MediaTypeFilter 媒体类型过滤
type MediaTypeFilter struct {
	MediaTypes []string `json:"mediaTypes,omitempty"`
}

// Date 日期，未设置的字段视为通配
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// IsZero 判断日期是否完全未设置
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// DateRange 日期范围
type DateRange struct {
	StartDate *Date `json:"startDate,omitempty"`
	EndDate   *Date `json:"endDate,omitempty"`
}

// DateFilter 日期过滤条件
type DateFilter struct {
	Dates  []Date      `json:"dates,omitempty"`
	Ranges []DateRange `json:"ranges,omitempty"`
}

// APIError 规范化后的远端错误
// 远端结构化错误与传输层错误统一为 {name, code, message} 一种形态
type APIError struct {
	Name    string `json:"name,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
	}
	return fmt.Sprintf("photos api error (%d): %s", e.Code, e.Message)
}

// StatusCode 返回用于 HTTP 响应的状态码，未知时回退 500
func (e *APIError) StatusCode() int {
	if e.Code >= 400 && e.Code < 600 {
		return e.Code
	}
	return 500
}
