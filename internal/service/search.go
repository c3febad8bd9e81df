package service

import (
	"context"
	"errors"
	"fmt"

	"EventsFinder/internal/adapter"
	"EventsFinder/internal/config"
	"EventsFinder/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrCityNotFound 城市 slug 不在配置表中
var ErrCityNotFound = errors.New("城市不存在")

// SearchService 面向前端的活动查询服务
type SearchService struct {
	registry      *adapter.SourceRegistry
	cfg           *config.Config
	defaultSource string
	logger        *logrus.Logger
}

// NewSearchService 创建 SearchService
func NewSearchService(registry *adapter.SourceRegistry, cfg *config.Config, logger *logrus.Logger) *SearchService {
	defaultSource := cfg.Sync.Source
	if defaultSource == "" {
		defaultSource = "eventbrite"
	}
	return &SearchService{
		registry:      registry,
		cfg:           cfg,
		defaultSource: defaultSource,
		logger:        logger,
	}
}

// CredentialsFor 活动源配置中的凭证；oauthOverride 非空时替换配置中的 OAuth token
func (s *SearchService) CredentialsFor(source, oauthOverride string) model.Credentials {
	if source == "" {
		source = s.defaultSource
	}
	sc := s.cfg.Sources[source]
	creds := model.Credentials{PrimaryToken: sc.AuthToken, OAuthToken: sc.OAuthToken}
	if oauthOverride != "" {
		creds.OAuthToken = oauthOverride
	}
	return creds
}

// Search 在指定活动源上查询，source 为空时使用默认活动源
func (s *SearchService) Search(ctx context.Context, source string, filter model.SearchFilter, creds model.Credentials) (model.PageResult, error) {
	if source == "" {
		source = s.defaultSource
	}
	src, err := s.registry.Get(source)
	if err != nil {
		return model.PageResult{}, err
	}
	result := src.Search(ctx, filter, creds)
	if result.Events == nil {
		result.Events = []model.NormalizedEvent{}
	}
	s.logger.WithFields(logrus.Fields{
		"source":  source,
		"count":   len(result.Events),
		"message": result.Message,
	}).Info("活动查询完成")
	return result, nil
}

// SearchCity 用城市表中的经纬度与固定半径查询
func (s *SearchService) SearchCity(ctx context.Context, source, slug string, filter model.SearchFilter, creds model.Credentials) (model.PageResult, error) {
	filter, err := WithCity(filter, slug)
	if err != nil {
		return model.PageResult{}, err
	}
	return s.Search(ctx, source, filter, creds)
}

// Sources 已初始化的活动源
func (s *SearchService) Sources() []string {
	return s.registry.Names()
}

// WithCity 把城市位置写入筛选条件
func WithCity(filter model.SearchFilter, slug string) (model.SearchFilter, error) {
	city, ok := model.LookupCity(slug)
	if !ok {
		return filter, fmt.Errorf("%w: %s", ErrCityNotFound, slug)
	}
	lat, lng := city.Latitude, city.Longitude
	filter.Latitude = &lat
	filter.Longitude = &lng
	filter.RadiusKm = model.CityRadiusKm
	return filter, nil
}
