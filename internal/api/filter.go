package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"EventsFinder/internal/model"

	"github.com/gin-gonic/gin"
)

// OAuthTokenHeader 单次请求携带的 OAuth token，优先于配置
const OAuthTokenHeader = "X-OAuth-Token"

// parseSearchFilter 从 query string 解析筛选条件
// ?lat=&lng=&radius=&category=&price=&date=&q=&page=&page_size=
func parseSearchFilter(c *gin.Context) (model.SearchFilter, error) {
	filter := model.SearchFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Price:    model.ParsePriceFilter(c.Query("price")),
		Date:     model.ParseDateFilter(c.Query("date")),
		Query:    c.Query("q"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	lat, err := parseCoordinate(c.Query("lat"), "lat", 90)
	if err != nil {
		return filter, err
	}
	lng, err := parseCoordinate(c.Query("lng"), "lng", 180)
	if err != nil {
		return filter, err
	}
	filter.Latitude, filter.Longitude = lat, lng

	if r := c.Query("radius"); r != "" {
		km, err := parseRadiusKm(r)
		if err != nil {
			return filter, err
		}
		filter.RadiusKm = km
	}
	return filter, nil
}

// parseCoordinate 空值返回 nil；非有限值或 |v| > limit 视为非法
func parseCoordinate(s, name string, limit float64) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return nil, fmt.Errorf("invalid %s: %q", name, s)
	}
	return &v, nil
}

// parseRadiusKm 支持 "25"、"25km"、"10mi"
func parseRadiusKm(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "km"):
		s = strings.TrimSuffix(s, "km")
	case strings.HasSuffix(s, "mi"):
		s = strings.TrimSuffix(s, "mi")
		factor = 1.609344
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("invalid radius: %q", s)
	}
	return v * factor, nil
}
