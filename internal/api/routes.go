package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部业务路由
func RegisterRoutes(r gin.IRouter, events *EventHandler, sync *SyncHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 活动查询（给前端页面用）
	r.GET("/api/events/search", events.Search)
	r.GET("/api/events/city/:slug", events.SearchCity)
	r.GET("/api/categories", events.ListCategories)
	r.GET("/api/cities", events.ListCities)
	r.GET("/api/sources", events.ListSources)

	// 已导入活动
	r.GET("/api/events", events.ListSaved)
	r.GET("/api/events/:event_uuid", events.GetSaved)

	// 手动导入
	r.POST("/sync/source/:source", sync.SyncSourceHandler)
}
