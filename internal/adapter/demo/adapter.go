package demo

import (
	"context"
	"strings"

	"EventsFinder/internal/adapter"
	"EventsFinder/internal/config"
	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/model"

	"github.com/sirupsen/logrus"
)

const SourceName = "demo"

func init() {
	adapter.Register(SourceName, NewDemoAdapter)
}

// Adapter 内置示例活动，未接入真实 API 时用于演示
type Adapter struct {
	logger *logrus.Logger
}

func NewDemoAdapter(_ *config.SourceConfig, logger *logrus.Logger) interfaces.EventSource {
	return &Adapter{logger: logger}
}

func (d *Adapter) Name() string {
	return SourceName
}

// Search 只按类别、价格、关键词过滤，位置与日期条件不生效；不需要凭证
func (d *Adapter) Search(_ context.Context, filter model.SearchFilter, _ model.Credentials) model.PageResult {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	events := make([]model.NormalizedEvent, 0, len(catalogue))
	for _, e := range catalogue {
		if filter.Category != "" && filter.Category != model.CategoryAll && e.Category.Name != filter.Category {
			continue
		}
		if filter.Price == model.PriceFree && !e.IsFree {
			continue
		}
		if filter.Price == model.PricePaid && e.IsFree {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) {
			continue
		}
		events = append(events, copyEvent(e))
	}
	d.logger.WithField("count", len(events)).Debug("示例活动查询完成")
	return model.PageResult{Events: events, Pagination: model.SinglePage(len(events))}
}

// copyEvent 深拷贝指针字段，调用方修改不影响内置数据
func copyEvent(e model.NormalizedEvent) model.NormalizedEvent {
	if e.MinTicketPrice != nil {
		p := *e.MinTicketPrice
		e.MinTicketPrice = &p
	}
	if e.Venue != nil {
		v := *e.Venue
		e.Venue = &v
	}
	return e
}

var catalogue = []model.NormalizedEvent{
	{
		ID:             "1",
		Name:           "Tech Startup Networking Night",
		Description:    "Connect with fellow entrepreneurs and investors in the tech space. This event features keynote speakers, networking sessions, and startup pitches.",
		Start:          model.EventTime{Local: "2025-01-25T19:00:00", Timezone: "America/New_York"},
		End:            model.EventTime{Local: "2025-01-25T22:00:00", Timezone: "America/New_York"},
		URL:            "https://www.eventbrite.com/e/tech-startup-networking-example",
		IsFree:         false,
		MinTicketPrice: &model.TicketPrice{Value: "25", Currency: "USD"},
		Venue:          &model.Venue{Name: "WeWork Downtown", Address: "123 Main St, Downtown"},
		Category:       model.Category{Name: "Business & Professional"},
		LogoURL:        "https://images.unsplash.com/photo-1556761175-4b46a572b786?w=300&h=200&fit=crop",
	},
	{
		ID:             "2",
		Name:           "Jazz Live at Blue Note",
		Description:    "An evening of smooth jazz featuring local and touring musicians. Experience the best of contemporary and classic jazz.",
		Start:          model.EventTime{Local: "2025-01-26T20:00:00", Timezone: "America/New_York"},
		End:            model.EventTime{Local: "2025-01-26T23:00:00", Timezone: "America/New_York"},
		URL:            "https://www.eventbrite.com/e/jazz-live-example",
		IsFree:         false,
		MinTicketPrice: &model.TicketPrice{Value: "45", Currency: "USD"},
		Venue:          &model.Venue{Name: "Blue Note Jazz Club", Address: "456 Music Ave, Midtown"},
		Category:       model.Category{Name: "Music"},
		LogoURL:        "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=300&h=200&fit=crop",
	},
	{
		ID:          "3",
		Name:        "Free Yoga in the Park",
		Description: "Join us for a relaxing morning yoga session in the heart of the city. All skill levels welcome. Bring your own mat.",
		Start:       model.EventTime{Local: "2025-01-27T08:00:00", Timezone: "America/New_York"},
		End:         model.EventTime{Local: "2025-01-27T09:30:00", Timezone: "America/New_York"},
		URL:         "https://www.eventbrite.com/e/free-yoga-park-example",
		IsFree:      true,
		Venue:       &model.Venue{Name: "Central Park", Address: "Central Park, 59th St"},
		Category:    model.Category{Name: "Health & Wellness"},
		LogoURL:     "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=300&h=200&fit=crop",
	},
	{
		ID:          "4",
		Name:        "Art Gallery Opening Night",
		Description: "Celebrate the opening of our new contemporary art exhibition featuring local artists and their latest works.",
		Start:       model.EventTime{Local: "2025-01-28T18:00:00", Timezone: "America/New_York"},
		End:         model.EventTime{Local: "2025-01-28T21:00:00", Timezone: "America/New_York"},
		URL:         "https://www.eventbrite.com/e/art-gallery-opening-example",
		IsFree:      true,
		Venue:       &model.Venue{Name: "Modern Art Gallery", Address: "789 Art District, Downtown"},
		Category:    model.Category{Name: "Arts & Culture"},
		LogoURL:     "https://images.unsplash.com/photo-1460661419201-fd4cecdf8a8b?w=300&h=200&fit=crop",
	},
	{
		ID:          "5",
		Name:        "Food Truck Festival",
		Description: "Taste the best street food from around the city! Over 20 food trucks serving everything from tacos to ice cream.",
		Start:       model.EventTime{Local: "2025-01-29T11:00:00", Timezone: "America/New_York"},
		End:         model.EventTime{Local: "2025-01-29T20:00:00", Timezone: "America/New_York"},
		URL:         "https://www.eventbrite.com/e/food-truck-festival-example",
		IsFree:      true,
		Venue:       &model.Venue{Name: "City Plaza", Address: "City Plaza, Main Street"},
		Category:    model.Category{Name: "Food & Drink"},
		LogoURL:     "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=300&h=200&fit=crop",
	},
}
