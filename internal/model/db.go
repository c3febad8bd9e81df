package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StoredEvent 已导入的活动，(source, source_event_id) 唯一
type StoredEvent struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	EventUUID        string         `gorm:"column:event_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	Source           string         `gorm:"column:source;type:varchar(32);not null;uniqueIndex:uq_source_event;comment:活动源"`
	SourceEventID    string         `gorm:"column:source_event_id;type:varchar(128);not null;uniqueIndex:uq_source_event;comment:活动源原生ID"`
	Name             string         `gorm:"column:name;type:varchar(512);not null;comment:活动名称"`
	Description      string         `gorm:"column:description;type:text;comment:活动描述"`
	StartLocal       string         `gorm:"column:start_local;type:varchar(32);index;comment:开始时间（本地）"`
	StartTimezone    string         `gorm:"column:start_timezone;type:varchar(64);comment:开始时区"`
	EndLocal         string         `gorm:"column:end_local;type:varchar(32);comment:结束时间（本地）"`
	EndTimezone      string         `gorm:"column:end_timezone;type:varchar(64);comment:结束时区"`
	URL              string         `gorm:"column:url;type:varchar(1024);comment:活动链接"`
	IsFree           bool           `gorm:"column:is_free;type:boolean;default:false;comment:是否免费"`
	MinPriceValue    string         `gorm:"column:min_price_value;type:varchar(32);comment:最低票价"`
	MinPriceCurrency string         `gorm:"column:min_price_currency;type:varchar(8);comment:币种"`
	VenueName        string         `gorm:"column:venue_name;type:varchar(256);comment:场地名称"`
	VenueAddress     string         `gorm:"column:venue_address;type:varchar(512);comment:场地地址"`
	CategoryName     string         `gorm:"column:category_name;type:varchar(64);index;comment:类别"`
	LogoURL          string         `gorm:"column:logo_url;type:varchar(1024);comment:封面图"`
	Payload          datatypes.JSON `gorm:"column:payload;type:jsonb;comment:统一结构快照"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime;comment:更新时间"`
}

func (StoredEvent) TableName() string { return "events" }

// NewStoredEvent 统一结构 → 入库结构
func NewStoredEvent(source string, e NormalizedEvent) *StoredEvent {
	s := &StoredEvent{
		Source:        source,
		SourceEventID: e.ID,
		Name:          e.Name,
		Description:   e.Description,
		StartLocal:    e.Start.Local,
		StartTimezone: e.Start.Timezone,
		EndLocal:      e.End.Local,
		EndTimezone:   e.End.Timezone,
		URL:           e.URL,
		IsFree:        e.IsFree,
		CategoryName:  e.Category.Name,
		LogoURL:       e.LogoURL,
	}
	if e.MinTicketPrice != nil {
		s.MinPriceValue = e.MinTicketPrice.Value
		s.MinPriceCurrency = e.MinTicketPrice.Currency
	}
	if e.Venue != nil {
		s.VenueName = e.Venue.Name
		s.VenueAddress = e.Venue.Address
	}
	if b, err := json.Marshal(e); err == nil {
		s.Payload = b
	} else {
		s.Payload = datatypes.JSON("{}")
	}
	return s
}

// ToNormalized 入库结构 → 统一结构
func (s *StoredEvent) ToNormalized() NormalizedEvent {
	e := NormalizedEvent{
		ID:          s.SourceEventID,
		Name:        s.Name,
		Description: s.Description,
		Start:       EventTime{Local: s.StartLocal, Timezone: s.StartTimezone},
		End:         EventTime{Local: s.EndLocal, Timezone: s.EndTimezone},
		URL:         s.URL,
		IsFree:      s.IsFree,
		Category:    Category{Name: s.CategoryName},
		LogoURL:     s.LogoURL,
	}
	if s.MinPriceValue != "" || s.MinPriceCurrency != "" {
		e.MinTicketPrice = &TicketPrice{Value: s.MinPriceValue, Currency: s.MinPriceCurrency}
	}
	if s.VenueName != "" || s.VenueAddress != "" {
		e.Venue = &Venue{Name: s.VenueName, Address: s.VenueAddress}
	}
	return e
}
