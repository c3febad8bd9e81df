package eventbrite

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"EventsFinder/internal/config"
	"EventsFinder/internal/model"
)

// Eventbrite 查询参数名
const (
	paramPage       = "page"
	paramPageSize   = "page_size"
	paramLatitude   = "location.latitude"
	paramLongitude  = "location.longitude"
	paramWithin     = "location.within"
	paramCategories = "categories"
	paramPrice      = "price"
	paramKeyword    = "start_date.keyword"
	paramRangeStart = "start_date.range_start"
	paramRangeEnd   = "start_date.range_end"
	paramQuery      = "q"
	paramExpand     = "expand"
	paramSortBy     = "sort_by"
	paramToken      = "token"

	expandValue = "venue,category,subcategory,format,ticket_availability"
	sortByValue = "date"

	// Eventbrite 只接受不带小数秒的 UTC 时间
	rangeTimeLayout = "2006-01-02T15:04:05Z"
)

var locationParams = []string{paramLatitude, paramLongitude, paramWithin}

// Param 单个查询参数
type Param struct {
	Key   string
	Value string
}

// Query 有序参数列表，Encode 结果与添加顺序一致
type Query []Param

// Add 追加参数
func (q *Query) Add(key, value string) {
	*q = append(*q, Param{Key: key, Value: value})
}

// Get 取第一个同名参数
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has 是否包含参数
func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Keys 参数名列表（按顺序）
func (q Query) Keys() []string {
	keys := make([]string, 0, len(q))
	for _, p := range q {
		keys = append(keys, p.Key)
	}
	return keys
}

// Without 返回去掉指定参数后的副本，原列表不变
func (q Query) Without(keys ...string) Query {
	out := make(Query, 0, len(q))
	for _, p := range q {
		drop := false
		for _, k := range keys {
			if p.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return out
}

// Encode 按顺序编码为 query string
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// queryBuilder 把 SearchFilter 转成 Eventbrite 查询参数
type queryBuilder struct {
	dateStrategy    string
	defaultRadiusKm float64
	now             func() time.Time
}

func newQueryBuilder(cfg *config.SourceConfig, now func() time.Time) queryBuilder {
	return queryBuilder{
		dateStrategy:    cfg.DateStrategy,
		defaultRadiusKm: cfg.DefaultRadiusKm,
		now:             now,
	}
}

// build 参数顺序固定：分页、位置、类别、价格、日期、关键词、expand、排序
func (b queryBuilder) build(f model.SearchFilter) Query {
	q := make(Query, 0, 12)
	q.Add(paramPage, strconv.Itoa(f.Page))
	q.Add(paramPageSize, strconv.Itoa(f.PageSize))

	if f.HasLocation() {
		radius := f.RadiusKm
		if radius <= 0 {
			radius = b.defaultRadiusKm
		}
		q.Add(paramLatitude, formatFloat(*f.Latitude))
		q.Add(paramLongitude, formatFloat(*f.Longitude))
		q.Add(paramWithin, formatFloat(radius)+"km")
	}

	if f.Category != "" && f.Category != model.CategoryAll {
		if id, ok := model.CategoryID(f.Category); ok {
			q.Add(paramCategories, id)
		}
	}

	switch f.Price {
	case model.PriceFree:
		q.Add(paramPrice, "free")
	case model.PricePaid:
		q.Add(paramPrice, "paid")
	}

	if b.dateStrategy == config.DateStrategyRange {
		if start, end, ok := dateRange(f.Date, b.now()); ok {
			q.Add(paramRangeStart, start.Format(rangeTimeLayout))
			q.Add(paramRangeEnd, end.Format(rangeTimeLayout))
		}
	} else if kw, ok := dateKeyword(f.Date); ok {
		q.Add(paramKeyword, kw)
	}

	if f.Query != "" {
		q.Add(paramQuery, f.Query)
	}
	q.Add(paramExpand, expandValue)
	q.Add(paramSortBy, sortByValue)
	return q
}

// dateKeyword keyword 策略：上游关键字透传
func dateKeyword(d model.DateFilter) (string, bool) {
	switch d {
	case model.DateToday, model.DateTomorrow, model.DateThisWeek, model.DateNextWeek, model.DateThisMonth:
		return string(d), true
	case model.DateWeek:
		return "this_week", true
	case model.DateWeekend:
		return "this_weekend", true
	default:
		return "", false
	}
}

// dateRange range 策略：按当前时间计算起止
func dateRange(d model.DateFilter, now time.Time) (time.Time, time.Time, bool) {
	now = now.UTC().Truncate(time.Second)
	day := 24 * time.Hour
	switch d {
	case model.DateToday:
		return now, now.Add(day), true
	case model.DateTomorrow:
		return now.Add(day), now.Add(2 * day), true
	case model.DateWeekend:
		daysUntilSaturday := (6 - int(now.Weekday())) % 7
		saturday := now.AddDate(0, 0, daysUntilSaturday)
		return saturday, saturday.AddDate(0, 0, 2), true
	case model.DateWeek, model.DateThisWeek:
		return now, now.AddDate(0, 0, 7), true
	case model.DateNextWeek:
		return now.AddDate(0, 0, 7), now.AddDate(0, 0, 14), true
	case model.DateThisMonth:
		firstOfNext := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return now, firstOfNext, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
