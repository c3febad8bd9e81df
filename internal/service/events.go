package service

import (
	"context"

	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/model"
)

// SavedEvent 已导入活动（带本地 UUID 与来源）
type SavedEvent struct {
	EventUUID string `json:"event_uuid"`
	Source    string `json:"source"`
	model.NormalizedEvent
}

// SavedEventList 列表返回
type SavedEventList struct {
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int64        `json:"total"`
	Items    []SavedEvent `json:"items"`
}

// EventService 已导入活动查询
type EventService struct {
	repo interfaces.EventRepository
}

func NewEventService(repo interfaces.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// ListSaved 分页查询已导入活动
func (s *EventService) ListSaved(ctx context.Context, filter interfaces.EventListFilter, page, pageSize int) (*SavedEventList, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	rows, total, err := s.repo.ListEvents(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := &SavedEventList{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    make([]SavedEvent, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, toSaved(r))
	}
	return out, nil
}

// GetSaved 按 event_uuid 查询
func (s *EventService) GetSaved(ctx context.Context, eventUUID string) (*SavedEvent, error) {
	row, err := s.repo.GetEventByUUID(ctx, eventUUID)
	if err != nil {
		return nil, err
	}
	saved := toSaved(row)
	return &saved, nil
}

func toSaved(r *model.StoredEvent) SavedEvent {
	return SavedEvent{
		EventUUID:       r.EventUUID,
		Source:          r.Source,
		NormalizedEvent: r.ToNormalized(),
	}
}
