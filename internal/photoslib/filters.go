package photoslib

import "errors"

// 日期过滤模式
const (
	DateFilterNone  = ""
	DateFilterExact = "exact"
	DateFilterRange = "range"
)

// SearchForm 搜索表单的原始输入
type SearchForm struct {
	IncludedCategories string `form:"includedCategories" json:"includedCategories"`
	ExcludedCategories string `form:"excludedCategories" json:"excludedCategories"`

	DateFilter string `form:"dateFilter" json:"dateFilter"`

	ExactYear  int `form:"exactYear" json:"exactYear"`
	ExactMonth int `form:"exactMonth" json:"exactMonth"`
	ExactDay   int `form:"exactDay" json:"exactDay"`

	StartYear  int `form:"startYear" json:"startYear"`
	StartMonth int `form:"startMonth" json:"startMonth"`
	StartDay   int `form:"startDay" json:"startDay"`
	EndYear    int `form:"endYear" json:"endYear"`
	EndMonth   int `form:"endMonth" json:"endMonth"`
	EndDay     int `form:"endDay" json:"endDay"`
}

var (
	ErrUnknownDateFilter = errors.New("unknown date filter mode")
	ErrEmptyRangeBound   = errors.New("date range requires both start and end")
)

// BuildSearchFilters 从表单输入构建搜索过滤条件
// 纯函数，仅做结构校验；媒体类型固定为 PHOTO
func BuildSearchFilters(form SearchForm) (*Filters, error) {
	filters := &Filters{
		ContentFilter:   &ContentFilter{},
		MediaTypeFilter: &MediaTypeFilter{MediaTypes: []string{"PHOTO"}},
	}

	if form.IncludedCategories != "" {
		filters.ContentFilter.IncludedContentCategories = []string{form.IncludedCategories}
	}
	if form.ExcludedCategories != "" {
		filters.ContentFilter.ExcludedContentCategories = []string{form.ExcludedCategories}
	}

	switch form.DateFilter {
	case DateFilterNone:
		// 不加日期条件
	case DateFilterExact:
		// 未填写的字段留空，远端视为通配
		filters.DateFilter = &DateFilter{
			Dates: []Date{constructDate(form.ExactYear, form.ExactMonth, form.ExactDay)},
		}
	case DateFilterRange:
		start := constructDate(form.StartYear, form.StartMonth, form.StartDay)
		end := constructDate(form.EndYear, form.EndMonth, form.EndDay)
		// 范围两端都为空没有意义，属于调用方契约错误
		if start.IsZero() || end.IsZero() {
			return nil, ErrEmptyRangeBound
		}
		filters.DateFilter = &DateFilter{
			Ranges: []DateRange{{StartDate: &start, EndDate: &end}},
		}
	default:
		return nil, ErrUnknownDateFilter
	}

	return filters, nil
}

// constructDate 构建日期，零值字段不参与远端匹配
func constructDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}
