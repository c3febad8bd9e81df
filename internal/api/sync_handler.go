package api

import (
	"net/http"

	"EventsFinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	syncService   *service.SyncService
	searchService *service.SearchService
	logger        *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, searchService *service.SearchService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService:   syncService,
		searchService: searchService,
		logger:        logger,
	}
}

// SyncSourceHandler 查询指定活动源并导入本地库
// @Summary 导入活动
// @Param source path string true "活动源名称（eventbrite/demo）"
// @Param city query string false "城市 slug"
// @Success 200 {object} service.SyncResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sync/source/{source} [post]
func (h *SyncHandler) SyncSourceHandler(c *gin.Context) {
	source := c.Param("source")
	filter, err := parseSearchFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if city := c.Query("city"); city != "" {
		if filter, err = service.WithCity(filter, city); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	creds := h.searchService.CredentialsFor(source, c.GetHeader(OAuthTokenHeader))

	result, err := h.syncService.SyncSource(c.Request.Context(), source, filter, creds)
	if err != nil {
		h.logger.Errorf("导入%s失败: %v", source, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
