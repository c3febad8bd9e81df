package adapter

import (
	"errors"
	"fmt"
	"sort"

	"EventsFinder/internal/config"
	"EventsFinder/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// ErrSourceNotFound 请求的活动源未初始化
var ErrSourceNotFound = errors.New("活动源未初始化")

// SourceRegistry 按配置初始化好的活动源实例
type SourceRegistry struct {
	logger  *logrus.Logger
	sources map[string]interfaces.EventSource
}

// NewSourceRegistry 遍历配置中的活动源，匹配工厂函数创建实例
func NewSourceRegistry(cfg *config.Config, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		logger:  logger,
		sources: make(map[string]interfaces.EventSource),
	}
	logger.WithField("factories", ListFactories()).Info("已注册的活动源工厂函数")

	for name, sourceCfg := range cfg.Sources {
		factory, ok := GetFactory(name)
		if !ok {
			logger.WithField("source", name).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}
		sc := sourceCfg
		ins := factory(&sc, logger)
		if ins == nil {
			logger.WithField("source", name).Error("工厂函数返回nil实例")
			continue
		}
		if ins.Name() != name {
			logger.WithFields(logrus.Fields{
				"config_source":   name,
				"instance_source": ins.Name(),
			}).Error("活动源名称与配置不匹配")
			continue
		}
		r.sources[name] = ins
	}

	logger.WithField("sources", r.Names()).Info("活动源初始化完成")
	return r
}

// Add 直接注入实例（测试与手工装配使用）
func (r *SourceRegistry) Add(src interfaces.EventSource) {
	r.sources[src.Name()] = src
}

// Get 获取活动源实例
func (r *SourceRegistry) Get(name string) (interfaces.EventSource, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s（已初始化：%v）", ErrSourceNotFound, name, r.Names())
	}
	return src, nil
}

// Names 已初始化的活动源名称
func (r *SourceRegistry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
