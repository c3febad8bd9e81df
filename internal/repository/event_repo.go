package repository

import (
	"context"
	"fmt"
	"strings"

	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) interfaces.EventRepository {
	return &EventRepository{db: db}
}

// UpsertEvents 按 (source, source_event_id) 入库，已存在则更新内容，event_uuid 保持不变；
// 返回后 events 中的 ID 与 EventUUID 为库中实际值
func (r *EventRepository) UpsertEvents(ctx context.Context, events []*model.StoredEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	// 开启事务
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	saved := 0
	for i := range events {
		if events[i].SourceEventID == "" {
			continue // 无原生ID无法去重，跳过
		}
		if events[i].EventUUID == "" {
			events[i].EventUUID = uuid.NewString() // 生成全局唯一ID
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source"}, {Name: "source_event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "start_local", "start_timezone", "end_local", "end_timezone",
				"url", "is_free", "min_price_value", "min_price_currency", "venue_name", "venue_address",
				"category_name", "logo_url", "payload", "updated_at",
			}),
		}).Create(events[i]).Error
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("保存活动失败: %w, source_event_id: %s", err, events[i].SourceEventID)
		}
		// 冲突更新时库中保留原 event_uuid，回读以保持内存与库一致
		var stored model.StoredEvent
		if err := tx.Select("id", "event_uuid").
			Where("source = ? AND source_event_id = ?", events[i].Source, events[i].SourceEventID).
			Take(&stored).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("回读活动失败: %w, source_event_id: %s", err, events[i].SourceEventID)
		}
		events[i].ID = stored.ID
		events[i].EventUUID = stored.EventUUID
		saved++
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("提交事务失败: %w", err)
	}
	return saved, nil
}

// ListEvents 按过滤条件分页查询，按开始时间升序
func (r *EventRepository) ListEvents(ctx context.Context, filter interfaces.EventListFilter, page, pageSize int) ([]*model.StoredEvent, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.StoredEvent{})
	if filter.Source != "" {
		db = db.Where("source = ?", filter.Source)
	}
	if filter.Category != "" && filter.Category != model.CategoryAll {
		db = db.Where("category_name = ?", filter.Category)
	}
	if filter.Free != nil {
		db = db.Where("is_free = ?", *filter.Free)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []*model.StoredEvent
	if err := db.
		Order("start_local ASC").
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetEventByUUID 通过 event_uuid 获取活动
func (r *EventRepository) GetEventByUUID(ctx context.Context, eventUUID string) (*model.StoredEvent, error) {
	var event model.StoredEvent
	if err := r.db.WithContext(ctx).
		Where("event_uuid = ?", eventUUID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
