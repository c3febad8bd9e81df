package model

import (
	"bytes"
	"encoding/json"
)

// ========== Eventbrite 官方 API 响应结构（GET /events/search/?expand=...） ==========

// EventbriteSearchResponse /events/search/ 的根响应。events 逐条延迟解析，单条异常不影响整页
type EventbriteSearchResponse struct {
	Events     []json.RawMessage     `json:"events"`
	Pagination *EventbritePagination `json:"pagination"`
}

// EventbritePagination 分页信息
type EventbritePagination struct {
	PageNumber   int  `json:"page_number"`
	PageSize     int  `json:"page_size"`
	PageCount    int  `json:"page_count"`
	ObjectCount  int  `json:"object_count"`
	HasMoreItems bool `json:"has_more_items"`
}

// EventbriteEvent 单条活动，嵌套对象全部用指针，缺失即 nil
type EventbriteEvent struct {
	ID                 FlexString                    `json:"id"`
	Name               *EventbriteText               `json:"name"`
	Description        *EventbriteText               `json:"description"`
	Start              *EventbriteTime               `json:"start"`
	End                *EventbriteTime               `json:"end"`
	URL                string                        `json:"url"`
	IsFree             bool                          `json:"is_free"`
	TicketAvailability *EventbriteTicketAvailability `json:"ticket_availability"`
	Venue              *EventbriteVenue              `json:"venue"`
	Category           *EventbriteCategory           `json:"category"`
	Logo               *EventbriteLogo               `json:"logo"`
}

type EventbriteText struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type EventbriteTime struct {
	Local    string `json:"local"`
	Timezone string `json:"timezone"`
	UTC      string `json:"utc"`
}

type EventbriteTicketAvailability struct {
	MinimumTicketPrice *EventbritePrice `json:"minimum_ticket_price"`
}

type EventbritePrice struct {
	MajorValue FlexString `json:"major_value"`
	Currency   string     `json:"currency"`
}

type EventbriteVenue struct {
	Name    string                  `json:"name"`
	Address *EventbriteVenueAddress `json:"address"`
}

type EventbriteVenueAddress struct {
	LocalizedAddressDisplay string `json:"localized_address_display"`
}

type EventbriteCategory struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

type EventbriteLogo struct {
	URL string `json:"url"`
}

// FlexString 兼容上游字符串/数字两种写法（id、major_value 均出现过数字）
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
