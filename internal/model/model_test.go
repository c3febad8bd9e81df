package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	assert.Equal(t, PriceFree, ParsePriceFilter(" FREE "))
	assert.Equal(t, PricePaid, ParsePriceFilter("paid"))
	assert.Equal(t, PriceAll, ParsePriceFilter("cheap"))
	assert.Equal(t, PriceAll, ParsePriceFilter(""))

	assert.Equal(t, DateWeekend, ParseDateFilter("Weekend"))
	assert.Equal(t, DateThisMonth, ParseDateFilter("this_month"))
	assert.Equal(t, DateAll, ParseDateFilter("someday"))
}

func TestSearchFilterNormalize(t *testing.T) {
	f := SearchFilter{Query: "  jazz  "}.Normalize(30)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 30, f.PageSize)
	assert.Equal(t, PriceAll, f.Price)
	assert.Equal(t, DateAll, f.Date)
	assert.Equal(t, "jazz", f.Query)

	f = SearchFilter{Page: 3, PageSize: 5}.Normalize(0)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 5, f.PageSize)

	assert.Equal(t, 50, SearchFilter{}.Normalize(0).PageSize)
}

func TestSearchFilterLocation(t *testing.T) {
	lat, lng := 1.0, 2.0
	f := SearchFilter{Latitude: &lat, RadiusKm: 10, Category: "Music"}
	assert.False(t, f.HasLocation())

	f.Longitude = &lng
	assert.True(t, f.HasLocation())

	stripped := f.WithoutLocation()
	assert.False(t, stripped.HasLocation())
	assert.Zero(t, stripped.RadiusKm)
	assert.Equal(t, "Music", stripped.Category)
	assert.True(t, f.HasLocation())
}

func TestCredentialsEmpty(t *testing.T) {
	assert.True(t, Credentials{}.Empty())
	assert.False(t, Credentials{OAuthToken: "x"}.Empty())
	assert.False(t, Credentials{PrimaryToken: "x"}.Empty())
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12","b":12.50,"c":null}`), &v))
	assert.Equal(t, FlexString("12"), v.A)
	assert.Equal(t, FlexString("12.50"), v.B)
	assert.Empty(t, v.C)
	assert.Empty(t, v.D)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestEmptyResultJSON(t *testing.T) {
	b, err := json.Marshal(EmptyResult("none"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[],"pagination":{"page_number":1,"page_size":0,"page_count":1,"object_count":0,"has_more_items":false},"message":"none"}`, string(b))
}

func TestNormalizedEventOmitsMissingOptionals(t *testing.T) {
	b, err := json.Marshal(NormalizedEvent{ID: "1", Category: Category{Name: "Other"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "venue")
	assert.NotContains(t, string(b), "min_ticket_price")
	assert.NotContains(t, string(b), "logo_url")
}

func TestCategoryAndCityTables(t *testing.T) {
	id, ok := CategoryID("Sports & Fitness")
	require.True(t, ok)
	assert.Equal(t, "108", id)
	_, ok = CategoryID("all")
	assert.False(t, ok)

	cats := Categories()
	require.Len(t, cats, 7)
	assert.Equal(t, "101", cats[0].ID)
	assert.Equal(t, "110", cats[6].ID)

	cities := Cities()
	require.Len(t, cities, 6)
	assert.Equal(t, "austin", cities[0].Slug)
	c, ok := LookupCity("san-francisco")
	require.True(t, ok)
	assert.Equal(t, "CA", c.State)
	_, ok = LookupCity("paris")
	assert.False(t, ok)
}

func TestStoredEventConversion(t *testing.T) {
	e := NormalizedEvent{
		ID:             "9",
		Name:           "Gig",
		IsFree:         false,
		MinTicketPrice: &TicketPrice{Value: "5", Currency: "USD"},
		Category:       Category{Name: "Music"},
	}
	s := NewStoredEvent("eventbrite", e)
	assert.Equal(t, "9", s.SourceEventID)
	assert.Equal(t, "5", s.MinPriceValue)
	assert.Empty(t, s.VenueName)
	assert.Contains(t, string(s.Payload), `"name":"Gig"`)
	assert.Equal(t, e, s.ToNormalized())
}
