package api

import (
	"errors"
	"net/http"
	"strconv"

	"EventsFinder/internal/adapter"
	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/model"
	"EventsFinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventHandler 提供给前端的活动查询接口
type EventHandler struct {
	searchService *service.SearchService
	eventService  *service.EventService
	logger        *logrus.Logger
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(searchService *service.SearchService, eventService *service.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{
		searchService: searchService,
		eventService:  eventService,
		logger:        logger,
	}
}

// Search 活动查询，上游失败也返回 200 + message
// GET /api/events/search?source=eventbrite&lat=&lng=&radius=&category=&price=&date=&q=&page=1&page_size=50
func (h *EventHandler) Search(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source := c.Query("source")
	creds := h.searchService.CredentialsFor(source, c.GetHeader(OAuthTokenHeader))

	result, err := h.searchService.Search(c.Request.Context(), source, filter, creds)
	if err != nil {
		h.respondError(c, "Search failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchCity 按城市查询
// GET /api/events/city/:slug?category=&price=&date=&q=
func (h *EventHandler) SearchCity(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source := c.Query("source")
	creds := h.searchService.CredentialsFor(source, c.GetHeader(OAuthTokenHeader))

	result, err := h.searchService.SearchCity(c.Request.Context(), source, c.Param("slug"), filter, creds)
	if err != nil {
		h.respondError(c, "SearchCity failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListCategories GET /api/categories
func (h *EventHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": model.Categories()})
}

// ListCities GET /api/cities
func (h *EventHandler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": model.Cities()})
}

// ListSources GET /api/sources
func (h *EventHandler) ListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": h.searchService.Sources()})
}

// ListSaved 已导入活动列表
// GET /api/events?source=&category=&price=free&q=&page=1&page_size=20
func (h *EventHandler) ListSaved(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := interfaces.EventListFilter{
		Source:   c.Query("source"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	switch model.ParsePriceFilter(c.Query("price")) {
	case model.PriceFree:
		free := true
		filter.Free = &free
	case model.PricePaid:
		free := false
		filter.Free = &free
	}

	result, err := h.eventService.ListSaved(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.respondError(c, "ListSaved failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSaved 已导入活动详情 GET /api/events/:event_uuid
func (h *EventHandler) GetSaved(c *gin.Context) {
	eventUUID := c.Param("event_uuid")
	if eventUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_uuid is required"})
		return
	}
	result, err := h.eventService.GetSaved(c.Request.Context(), eventUUID)
	if err != nil {
		h.respondError(c, "GetSaved failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) respondError(c *gin.Context, msg string, err error) {
	h.logger.WithError(err).Error(msg)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// statusFor 业务错误 → HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCityNotFound),
		errors.Is(err, adapter.ErrSourceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
