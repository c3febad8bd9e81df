package eventbrite

import (
	"testing"
	"time"

	"EventsFinder/internal/config"
	"EventsFinder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-01-22 是周三
var fixedNow = time.Date(2025, 1, 22, 10, 30, 15, 500, time.UTC)

func testBuilder(strategy string) queryBuilder {
	cfg := &config.SourceConfig{DateStrategy: strategy}
	cfg.ApplyDefaults()
	return newQueryBuilder(cfg, func() time.Time { return fixedNow })
}

func floatPtr(v float64) *float64 { return &v }

func TestBuildParamOrder(t *testing.T) {
	f := model.SearchFilter{
		Latitude:  floatPtr(40.7128),
		Longitude: floatPtr(-74.006),
		RadiusKm:  25,
		Category:  "Music",
		Price:     model.PriceFree,
		Date:      model.DateToday,
		Query:     "jazz",
	}.Normalize(50)

	q := testBuilder(config.DateStrategyKeyword).build(f)

	assert.Equal(t, []string{
		"page", "page_size",
		"location.latitude", "location.longitude", "location.within",
		"categories", "price", "start_date.keyword", "q", "expand", "sort_by",
	}, q.Keys())
	assert.Equal(t,
		"page=1&page_size=50&location.latitude=40.7128&location.longitude=-74.006&location.within=25km"+
			"&categories=103&price=free&start_date.keyword=today&q=jazz"+
			"&expand=venue%2Ccategory%2Csubcategory%2Cformat%2Cticket_availability&sort_by=date",
		q.Encode())
}

func TestBuildMinimalFilter(t *testing.T) {
	q := testBuilder(config.DateStrategyKeyword).build(model.SearchFilter{}.Normalize(50))

	assert.Equal(t, []string{"page", "page_size", "expand", "sort_by"}, q.Keys())
}

func TestBuildLocationNeedsBothCoordinates(t *testing.T) {
	b := testBuilder(config.DateStrategyKeyword)

	q := b.build(model.SearchFilter{Latitude: floatPtr(40.7)}.Normalize(50))
	assert.False(t, q.Has(paramLatitude))
	assert.False(t, q.Has(paramWithin))

	q = b.build(model.SearchFilter{Longitude: floatPtr(-74)}.Normalize(50))
	assert.False(t, q.Has(paramLongitude))
}

func TestBuildDefaultRadius(t *testing.T) {
	q := testBuilder(config.DateStrategyKeyword).build(model.SearchFilter{
		Latitude:  floatPtr(1.5),
		Longitude: floatPtr(2.25),
	}.Normalize(50))

	within, ok := q.Get(paramWithin)
	require.True(t, ok)
	assert.Equal(t, "100km", within)
}

func TestBuildCategory(t *testing.T) {
	b := testBuilder(config.DateStrategyKeyword)

	for _, name := range []string{"", "all", "Underwater Basket Weaving"} {
		q := b.build(model.SearchFilter{Category: name}.Normalize(50))
		assert.False(t, q.Has(paramCategories), "category %q", name)
	}

	q := b.build(model.SearchFilter{Category: "Food & Drink"}.Normalize(50))
	id, _ := q.Get(paramCategories)
	assert.Equal(t, "110", id)
}

func TestBuildPrice(t *testing.T) {
	b := testBuilder(config.DateStrategyKeyword)

	q := b.build(model.SearchFilter{Price: model.PricePaid}.Normalize(50))
	v, _ := q.Get(paramPrice)
	assert.Equal(t, "paid", v)

	q = b.build(model.SearchFilter{Price: model.PriceAll}.Normalize(50))
	assert.False(t, q.Has(paramPrice))
}

func TestDateKeyword(t *testing.T) {
	cases := map[model.DateFilter]string{
		model.DateToday:     "today",
		model.DateTomorrow:  "tomorrow",
		model.DateWeek:      "this_week",
		model.DateThisWeek:  "this_week",
		model.DateWeekend:   "this_weekend",
		model.DateNextWeek:  "next_week",
		model.DateThisMonth: "this_month",
	}
	b := testBuilder(config.DateStrategyKeyword)
	for d, want := range cases {
		q := b.build(model.SearchFilter{Date: d}.Normalize(50))
		got, ok := q.Get(paramKeyword)
		require.True(t, ok, "date %s", d)
		assert.Equal(t, want, got, "date %s", d)
		assert.False(t, q.Has(paramRangeStart))
	}

	q := b.build(model.SearchFilter{Date: model.DateAll}.Normalize(50))
	assert.False(t, q.Has(paramKeyword))
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		date       model.DateFilter
		start, end string
	}{
		{model.DateToday, "2025-01-22T10:30:15Z", "2025-01-23T10:30:15Z"},
		{model.DateTomorrow, "2025-01-23T10:30:15Z", "2025-01-24T10:30:15Z"},
		{model.DateWeekend, "2025-01-25T10:30:15Z", "2025-01-27T10:30:15Z"},
		{model.DateWeek, "2025-01-22T10:30:15Z", "2025-01-29T10:30:15Z"},
		{model.DateNextWeek, "2025-01-29T10:30:15Z", "2025-02-05T10:30:15Z"},
		{model.DateThisMonth, "2025-01-22T10:30:15Z", "2025-02-01T00:00:00Z"},
	}
	b := testBuilder(config.DateStrategyRange)
	for _, tc := range cases {
		q := b.build(model.SearchFilter{Date: tc.date}.Normalize(50))
		start, _ := q.Get(paramRangeStart)
		end, _ := q.Get(paramRangeEnd)
		assert.Equal(t, tc.start, start, "date %s", tc.date)
		assert.Equal(t, tc.end, end, "date %s", tc.date)
		assert.False(t, q.Has(paramKeyword))
	}

	q := b.build(model.SearchFilter{Date: model.DateAll}.Normalize(50))
	assert.False(t, q.Has(paramRangeStart))
	assert.False(t, q.Has(paramRangeEnd))
}

func TestDateRangeWeekendOnSaturday(t *testing.T) {
	saturday := time.Date(2025, 1, 25, 9, 0, 0, 0, time.UTC)
	start, end, ok := dateRange(model.DateWeekend, saturday)
	require.True(t, ok)
	assert.Equal(t, saturday, start)
	assert.Equal(t, saturday.AddDate(0, 0, 2), end)
}

func TestBuildIsDeterministic(t *testing.T) {
	f := model.SearchFilter{
		Latitude:  floatPtr(34.05),
		Longitude: floatPtr(-118.24),
		Category:  "Technology",
		Date:      model.DateThisMonth,
		Query:     "ai & ml",
	}.Normalize(20)
	b := testBuilder(config.DateStrategyRange)

	assert.Equal(t, b.build(f).Encode(), b.build(f).Encode())
}

func TestQueryWithout(t *testing.T) {
	var q Query
	q.Add("a", "1")
	q.Add(paramLatitude, "1")
	q.Add(paramLongitude, "2")
	q.Add(paramWithin, "3km")
	q.Add("b", "2")

	stripped := q.Without(locationParams...)

	assert.Equal(t, []string{"a", "b"}, stripped.Keys())
	assert.Len(t, q, 5)
}

func TestQueryEncodeEscapes(t *testing.T) {
	var q Query
	q.Add(paramQuery, "rock & roll")
	assert.Equal(t, "q=rock+%26+roll", q.Encode())
}
