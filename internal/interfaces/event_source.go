package interfaces

import (
	"context"

	"EventsFinder/internal/model"
)

// EventSource 所有活动源必须实现的核心接口
type EventSource interface {
	Name() string                                                                                  // 活动源名称
	Search(ctx context.Context, filter model.SearchFilter, creds model.Credentials) model.PageResult // 查询，失败时降级为空结果+提示，不返回错误
}

// EventRepository 已导入活动的数据库操作接口
type EventRepository interface {
	UpsertEvents(ctx context.Context, events []*model.StoredEvent) (int, error)
	ListEvents(ctx context.Context, filter EventListFilter, page, pageSize int) ([]*model.StoredEvent, int64, error)
	GetEventByUUID(ctx context.Context, eventUUID string) (*model.StoredEvent, error)
}

// EventListFilter 已导入活动列表筛选
type EventListFilter struct {
	Source   string
	Category string
	Free     *bool
	Query    string
}
