package model

import "strings"

// PriceFilter 价格筛选
type PriceFilter string

const (
	PriceAll  PriceFilter = "all"
	PriceFree PriceFilter = "free"
	PricePaid PriceFilter = "paid"
)

// DateFilter 日期窗口筛选
type DateFilter string

const (
	DateAll       DateFilter = "all"
	DateToday     DateFilter = "today"
	DateTomorrow  DateFilter = "tomorrow"
	DateWeekend   DateFilter = "weekend"
	DateWeek      DateFilter = "week"
	DateThisWeek  DateFilter = "this_week"
	DateNextWeek  DateFilter = "next_week"
	DateThisMonth DateFilter = "this_month"
)

// CategoryAll 类别哨兵值，表示不过滤
const CategoryAll = "all"

// ParsePriceFilter 未识别的值一律按 all 处理
func ParsePriceFilter(s string) PriceFilter {
	switch PriceFilter(strings.ToLower(strings.TrimSpace(s))) {
	case PriceFree:
		return PriceFree
	case PricePaid:
		return PricePaid
	default:
		return PriceAll
	}
}

// ParseDateFilter 未识别的值一律按 all 处理
func ParseDateFilter(s string) DateFilter {
	d := DateFilter(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DateToday, DateTomorrow, DateWeekend, DateWeek, DateThisWeek, DateNextWeek, DateThisMonth:
		return d
	default:
		return DateAll
	}
}

// SearchFilter 单次查询的筛选条件，每次调用构造，无持久身份
type SearchFilter struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64 // <=0 时使用活动源默认半径
	Category  string
	Price     PriceFilter
	Date      DateFilter
	Query     string
	Page      int
	PageSize  int
}

// HasLocation 经纬度同时存在才算带位置
func (f SearchFilter) HasLocation() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// WithoutLocation 去掉位置条件，其余条件保留
func (f SearchFilter) WithoutLocation() SearchFilter {
	f.Latitude = nil
	f.Longitude = nil
	f.RadiusKm = 0
	return f
}

// Normalize 补齐分页与枚举默认值
func (f SearchFilter) Normalize(defaultPageSize int) SearchFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.Price == "" {
		f.Price = PriceAll
	}
	if f.Date == "" {
		f.Date = DateAll
	}
	f.Query = strings.TrimSpace(f.Query)
	return f
}

// Credentials 单次调用携带的凭证，显式传入而非全局可变状态
type Credentials struct {
	PrimaryToken string // 私有 API key
	OAuthToken   string // OAuth token，两者都在时优先
}

// Empty 没有任何可用 token
func (c Credentials) Empty() bool {
	return c.PrimaryToken == "" && c.OAuthToken == ""
}
