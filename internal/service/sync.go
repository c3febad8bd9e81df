package service

import (
	"context"
	"fmt"
	"time"

	"EventsFinder/internal/config"
	"EventsFinder/internal/interfaces"
	"EventsFinder/internal/metrics"
	"EventsFinder/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SyncResult 一次导入的汇总
type SyncResult struct {
	SyncID  string `json:"sync_id"`
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Saved   int    `json:"saved"`
	Message string `json:"message,omitempty"`
}

type SyncService struct {
	search *SearchService
	repo   interfaces.EventRepository
	cfg    config.SyncConfig
	logger *logrus.Logger
}

func NewSyncService(search *SearchService, repo interfaces.EventRepository, cfg config.SyncConfig, logger *logrus.Logger) *SyncService {
	return &SyncService{
		search: search,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// SyncSource 查询一次并把结果入库
func (s *SyncService) SyncSource(ctx context.Context, source string, filter model.SearchFilter, creds model.Credentials) (*SyncResult, error) {
	syncID := uuid.NewString()
	logger := s.logger.WithFields(logrus.Fields{"sync_id": syncID, "source": source})

	// 1. 查询
	result, err := s.search.Search(ctx, source, filter, creds)
	if err != nil {
		return nil, fmt.Errorf("%s查询失败: %w", source, err)
	}
	out := &SyncResult{
		SyncID:  syncID,
		Source:  source,
		Fetched: len(result.Events),
		Message: result.Message,
	}
	if len(result.Events) == 0 {
		logger.WithField("message", result.Message).Warn("未查询到可导入的活动")
		return out, nil
	}

	// 2. 转换为数据库模型
	stored := make([]*model.StoredEvent, 0, len(result.Events))
	for _, e := range result.Events {
		stored = append(stored, model.NewStoredEvent(source, e))
	}

	// 3. 入库
	saved, err := s.repo.UpsertEvents(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("%s入库失败: %w", source, err)
	}
	out.Saved = saved
	metrics.Synced(source, saved)
	logger.Infof("导入完成，查询%d条，入库%d条", out.Fetched, out.Saved)
	return out, nil
}

// Run 按 sync.interval 定时导入，interval 为 0 时直接返回；ctx 取消后退出
func (s *SyncService) Run(ctx context.Context) error {
	if s.cfg.Interval <= 0 {
		s.logger.Info("未配置定时导入，跳过")
		return nil
	}
	filter, err := DefaultSyncFilter(s.cfg.DefaultFilter)
	if err != nil {
		return fmt.Errorf("定时导入筛选条件无效: %w", err)
	}
	source := s.cfg.Source
	creds := s.search.CredentialsFor(source, "")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	s.logger.WithFields(logrus.Fields{"source": source, "interval": s.cfg.Interval}).Info("定时导入已启动")

	for {
		if _, err := s.SyncSource(ctx, source, filter, creds); err != nil {
			s.logger.WithError(err).Error("定时导入失败")
		}
		select {
		case <-ctx.Done():
			s.logger.Info("定时导入已停止")
			return nil
		case <-ticker.C:
		}
	}
}

// DefaultSyncFilter 配置 → 筛选条件
func DefaultSyncFilter(fc config.FilterConfig) (model.SearchFilter, error) {
	filter := model.SearchFilter{
		Category: fc.Category,
		Price:    model.ParsePriceFilter(fc.Price),
		Date:     model.ParseDateFilter(fc.Date),
		Query:    fc.Query,
		Page:     1,
		PageSize: fc.PageSize,
	}
	if fc.City != "" {
		return WithCity(filter, fc.City)
	}
	return filter, nil
}
