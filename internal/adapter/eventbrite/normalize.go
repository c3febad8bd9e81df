package eventbrite

import "EventsFinder/internal/model"

// defaultCategory 上游未给类别时的兜底
const defaultCategory = "Other"

// Normalize 上游活动 → 统一结构，缺失字段一律取默认值
func Normalize(e model.EventbriteEvent) model.NormalizedEvent {
	out := model.NormalizedEvent{
		ID:       string(e.ID),
		URL:      e.URL,
		IsFree:   e.IsFree,
		Category: model.Category{Name: defaultCategory},
	}
	if e.Name != nil {
		out.Name = e.Name.Text
	}
	if e.Description != nil {
		out.Description = e.Description.Text
	}
	if e.Start != nil {
		out.Start = model.EventTime{Local: e.Start.Local, Timezone: e.Start.Timezone}
	}
	if e.End != nil {
		out.End = model.EventTime{Local: e.End.Local, Timezone: e.End.Timezone}
	}
	if e.TicketAvailability != nil && e.TicketAvailability.MinimumTicketPrice != nil {
		p := e.TicketAvailability.MinimumTicketPrice
		out.MinTicketPrice = &model.TicketPrice{Value: string(p.MajorValue), Currency: p.Currency}
	}
	if e.Venue != nil {
		v := &model.Venue{Name: e.Venue.Name}
		if e.Venue.Address != nil {
			v.Address = e.Venue.Address.LocalizedAddressDisplay
		}
		out.Venue = v
	}
	if e.Category != nil && e.Category.Name != "" {
		out.Category.Name = e.Category.Name
	}
	if e.Logo != nil {
		out.LogoURL = e.Logo.URL
	}
	return out
}
