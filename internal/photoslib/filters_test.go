package photoslib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchFilters_Defaults(t *testing.T) {
	filters, err := BuildSearchFilters(SearchForm{})

	require.NoError(t, err)
	// 媒体类型固定为 PHOTO
	require.NotNil(t, filters.MediaTypeFilter)
	assert.Equal(t, []string{"PHOTO"}, filters.MediaTypeFilter.MediaTypes)
	require.NotNil(t, filters.ContentFilter)
	assert.Empty(t, filters.ContentFilter.IncludedContentCategories)
	assert.Empty(t, filters.ContentFilter.ExcludedContentCategories)
	assert.Nil(t, filters.DateFilter)
}

func TestBuildSearchFilters_Categories(t *testing.T) {
	filters, err := BuildSearchFilters(SearchForm{
		IncludedCategories: "LANDSCAPES",
		ExcludedCategories: "SELFIES",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"LANDSCAPES"}, filters.ContentFilter.IncludedContentCategories)
	assert.Equal(t, []string{"SELFIES"}, filters.ContentFilter.ExcludedContentCategories)
}

func TestBuildSearchFilters_ExactDate(t *testing.T) {
	filters, err := BuildSearchFilters(SearchForm{
		DateFilter: DateFilterExact,
		ExactYear:  2019,
		ExactMonth: 6,
	})

	require.NoError(t, err)
	require.NotNil(t, filters.DateFilter)
	require.Len(t, filters.DateFilter.Dates, 1)
	// 未填写的字段保持零值，远端视为通配
	assert.Equal(t, Date{Year: 2019, Month: 6, Day: 0}, filters.DateFilter.Dates[0])
	assert.Empty(t, filters.DateFilter.Ranges)
}

func TestBuildSearchFilters_DateRange(t *testing.T) {
	filters, err := BuildSearchFilters(SearchForm{
		DateFilter: DateFilterRange,
		StartYear:  2018,
		StartMonth: 1,
		StartDay:   1,
		EndYear:    2019,
		EndMonth:   12,
		EndDay:     31,
	})

	require.NoError(t, err)
	require.NotNil(t, filters.DateFilter)
	require.Len(t, filters.DateFilter.Ranges, 1)
	r := filters.DateFilter.Ranges[0]
	assert.Equal(t, &Date{Year: 2018, Month: 1, Day: 1}, r.StartDate)
	assert.Equal(t, &Date{Year: 2019, Month: 12, Day: 31}, r.EndDate)
}

func TestBuildSearchFilters_RangeMissingBound(t *testing.T) {
	_, err := BuildSearchFilters(SearchForm{
		DateFilter: DateFilterRange,
		StartYear:  2018,
	})
	assert.ErrorIs(t, err, ErrEmptyRangeBound)

	_, err = BuildSearchFilters(SearchForm{
		DateFilter: DateFilterRange,
		EndYear:    2019,
	})
	assert.ErrorIs(t, err, ErrEmptyRangeBound)
}

func TestBuildSearchFilters_UnknownMode(t *testing.T) {
	_, err := BuildSearchFilters(SearchForm{DateFilter: "fuzzy"})
	assert.ErrorIs(t, err, ErrUnknownDateFilter)
}

func TestSearchParamsStripped(t *testing.T) {
	params := SearchParams{
		Filters:   &Filters{},
		PageSize:  100,
		PageToken: "stale-token",
	}

	stripped := params.Stripped()

	// 翻页状态不得进入持久化的查询参数
	assert.Zero(t, stripped.PageSize)
	assert.Empty(t, stripped.PageToken)
	assert.Same(t, params.Filters, stripped.Filters)
}
