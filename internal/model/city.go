package model

import "sort"

// CityRadiusKm 城市查询固定半径
const CityRadiusKm = 25

// City 城市配置
type City struct {
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var cities = map[string]City{
	"new-york":      {Slug: "new-york", Name: "New York", State: "NY", Timezone: "America/New_York", Latitude: 40.7128, Longitude: -74.0060},
	"los-angeles":   {Slug: "los-angeles", Name: "Los Angeles", State: "CA", Timezone: "America/Los_Angeles", Latitude: 34.0522, Longitude: -118.2437},
	"chicago":       {Slug: "chicago", Name: "Chicago", State: "IL", Timezone: "America/Chicago", Latitude: 41.8781, Longitude: -87.6298},
	"miami":         {Slug: "miami", Name: "Miami", State: "FL", Timezone: "America/New_York", Latitude: 25.7617, Longitude: -80.1918},
	"san-francisco": {Slug: "san-francisco", Name: "San Francisco", State: "CA", Timezone: "America/Los_Angeles", Latitude: 37.7749, Longitude: -122.4194},
	"austin":        {Slug: "austin", Name: "Austin", State: "TX", Timezone: "America/Chicago", Latitude: 30.2672, Longitude: -97.7431},
}

// LookupCity 按 slug 查城市
func LookupCity(slug string) (City, bool) {
	c, ok := cities[slug]
	return c, ok
}

// Cities 按 slug 排序
func Cities() []City {
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
