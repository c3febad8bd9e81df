package model

// EventTime 本地时间 + 时区
type EventTime struct {
	Local    string `json:"local"`
	Timezone string `json:"timezone"`
}

// TicketPrice 最低票价
type TicketPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Venue 场地
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Category 活动类别
type Category struct {
	Name string `json:"name"`
}

// NormalizedEvent 各活动源统一后的活动结构，所有字段都有默认值
type NormalizedEvent struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Start          EventTime    `json:"start"`
	End            EventTime    `json:"end"`
	URL            string       `json:"url"`
	IsFree         bool         `json:"is_free"`
	MinTicketPrice *TicketPrice `json:"min_ticket_price,omitempty"`
	Venue          *Venue       `json:"venue,omitempty"`
	Category       Category     `json:"category"`
	LogoURL        string       `json:"logo_url,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	PageNumber   int  `json:"page_number"`
	PageSize     int  `json:"page_size"`
	PageCount    int  `json:"page_count"`
	ObjectCount  int  `json:"object_count"`
	HasMoreItems bool `json:"has_more_items"`
}

// PageResult 查询结果，Message 仅在降级/兜底时设置
type PageResult struct {
	Events     []NormalizedEvent `json:"events"`
	Pagination Pagination        `json:"pagination"`
	Message    string            `json:"message,omitempty"`
}

// SinglePage 上游未返回分页时的兜底：一页包含全部活动
func SinglePage(count int) Pagination {
	return Pagination{
		PageNumber:   1,
		PageSize:     count,
		PageCount:    1,
		ObjectCount:  count,
		HasMoreItems: false,
	}
}

// EmptyResult 降级结果：空活动列表 + 提示信息
func EmptyResult(message string) PageResult {
	return PageResult{
		Events:     []NormalizedEvent{},
		Pagination: SinglePage(0),
		Message:    message,
	}
}
